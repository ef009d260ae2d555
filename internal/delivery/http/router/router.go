// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"faceid/internal/delivery/http/middleware"
	"faceid/internal/delivery/http/router/handler"
)

type RouterParams struct {
	fx.In

	IdentityHandler     *handler.IdentityHandler
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	identityHandler     *handler.IdentityHandler
	requestIDMiddleware *middleware.RequestIDMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		identityHandler:     params.IdentityHandler,
		requestIDMiddleware: params.RequestIDMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestIDMiddleware.Process)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	e.POST("/register-user", r.identityHandler.RegisterUser)
	e.POST("/verify-password", r.identityHandler.VerifyPassword)
	e.POST("/verify-face", r.identityHandler.VerifyFace)
	e.POST("/check-user", r.identityHandler.CheckUser)
}
