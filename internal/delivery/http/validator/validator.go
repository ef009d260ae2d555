// Package validator wires go-playground/validator into echo.
package validator

import (
	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	domainerrors "faceid/internal/domain/errors"
)

// echoValidator adapts go-playground/validator to echo's Validator interface.
type echoValidator struct {
	validate *playground.Validate
}

// New constructs the request validator used by the HTTP server.
func New() echo.Validator {
	return &echoValidator{validate: playground.New()}
}

// Validate checks the bound request DTO against its validate tags. Failures
// surface as the domain validation error so the central error handler renders
// a 400 with a useful detail.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
