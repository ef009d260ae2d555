// Package response defines the wire shapes of the JSON API.
package response

import "github.com/labstack/echo/v4"

// Detail is the error body for every failed request: a short human-readable
// reason, nothing else. Internal state and stack traces never appear here.
type Detail struct {
	Detail string `json:"detail"`
}

// JSON writes a successful payload with the given status code.
func JSON(c echo.Context, statusCode int, payload any) error {
	return c.JSON(statusCode, payload)
}

// Error writes a failure body in the {"detail": ...} shape.
func Error(c echo.Context, statusCode int, detail string) error {
	return c.JSON(statusCode, Detail{Detail: detail})
}
