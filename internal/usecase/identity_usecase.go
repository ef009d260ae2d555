// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import "context"

// --- Input DTOs ---
// The inputs double as request bodies; the validate tags are enforced by the
// HTTP delivery before the usecase runs.

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	UserID   string `json:"userId" validate:"required"`
	Password string `json:"password" validate:"required"`
	// FaceImage is raw base64 or a data-URI; only the substring after the
	// last comma is treated as the payload.
	FaceImage string `json:"faceImage" validate:"required"`
}

// VerifyPasswordInput defines the data required to verify a password.
type VerifyPasswordInput struct {
	UserID   string `json:"userId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// VerifyFaceInput defines the data required to verify a face image.
type VerifyFaceInput struct {
	UserID    string `json:"userId" validate:"required"`
	FaceImage string `json:"faceImage" validate:"required"`
}

// CheckUserInput defines the data required to check registration status.
type CheckUserInput struct {
	UserID string `json:"userId" validate:"required"`
}

// --- Output DTOs ---

// RegisterOutput confirms a completed registration.
type RegisterOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// VerifyPasswordOutput reports whether the submitted password matched.
type VerifyPasswordOutput struct {
	Valid bool `json:"valid"`
}

// VerifyFaceOutput reports the biometric comparison result.
type VerifyFaceOutput struct {
	Verified bool    `json:"verified"`
	Distance float64 `json:"distance"`
}

// CheckUserOutput reports whether a user identifier is registered.
type CheckUserOutput struct {
	Exists bool `json:"exists"`
}

// IdentityUsecase defines the interface for identity verification operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type IdentityUsecase interface {
	RegisterUser(ctx context.Context, input *RegisterUserInput) (*RegisterOutput, error)
	VerifyPassword(ctx context.Context, input *VerifyPasswordInput) (*VerifyPasswordOutput, error)
	VerifyFace(ctx context.Context, input *VerifyFaceInput) (*VerifyFaceOutput, error)
	CheckUser(ctx context.Context, input *CheckUserInput) (*CheckUserOutput, error)
}
