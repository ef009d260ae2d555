// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"faceid/internal/domain/entity"
)

// ErrUserNotFound is returned when no user exists for the given identifier.
var ErrUserNotFound = errors.New("user not found")

// ErrUserExists is returned when an insert collides with an existing identifier.
var ErrUserExists = errors.New("user already exists")

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not a concrete store.
//
// Records are create-once, read-many: there is no update or delete.
type UserRepository interface {
	// Exists reports whether a user with the given identifier is registered.
	Exists(ctx context.Context, userID string) (bool, error)

	// Find retrieves a single user by identifier, or ErrUserNotFound.
	Find(ctx context.Context, userID string) (*entity.User, error)

	// Insert durably persists a fully-formed user record. It returns
	// ErrUserExists if the identifier is already taken; concurrent inserts
	// of the same identifier let exactly one caller succeed.
	Insert(ctx context.Context, user *entity.User) error
}
