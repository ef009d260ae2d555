// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"faceid/internal/delivery/http/response"
	"faceid/internal/usecase"
)

// IdentityHandler holds dependencies for the identity verification handlers.
type IdentityHandler struct {
	uc     usecase.IdentityUsecase
	logger *slog.Logger
}

// NewIdentityHandler is the constructor for IdentityHandler, injected by Fx.
func NewIdentityHandler(uc usecase.IdentityUsecase, logger *slog.Logger) *IdentityHandler {
	return &IdentityHandler{
		uc:     uc,
		logger: logger,
	}
}

// RegisterUser handles POST /register-user.
func (h *IdentityHandler) RegisterUser(c echo.Context) error {
	input, err := bindAndValidate[usecase.RegisterUserInput](c)
	if err != nil {
		return err
	}

	output, err := h.uc.RegisterUser(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusCreated, output)
}

// VerifyPassword handles POST /verify-password.
func (h *IdentityHandler) VerifyPassword(c echo.Context) error {
	input, err := bindAndValidate[usecase.VerifyPasswordInput](c)
	if err != nil {
		return err
	}

	output, err := h.uc.VerifyPassword(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, output)
}

// VerifyFace handles POST /verify-face.
func (h *IdentityHandler) VerifyFace(c echo.Context) error {
	input, err := bindAndValidate[usecase.VerifyFaceInput](c)
	if err != nil {
		return err
	}

	output, err := h.uc.VerifyFace(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, output)
}

// CheckUser handles POST /check-user.
func (h *IdentityHandler) CheckUser(c echo.Context) error {
	input, err := bindAndValidate[usecase.CheckUserInput](c)
	if err != nil {
		return err
	}

	output, err := h.uc.CheckUser(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, output)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.JSON(c, http.StatusOK, map[string]string{"status": "ok"})
}

// bindAndValidate binds the JSON body into the usecase input and runs the
// request validator on it.
func bindAndValidate[T any](c echo.Context) (*T, error) {
	input := new(T)
	if err := c.Bind(input); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(input); err != nil {
		return nil, err
	}

	return input, nil
}
