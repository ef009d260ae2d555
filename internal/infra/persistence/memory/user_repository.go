// Package memory provides an in-memory UserRepository with the same
// semantics as the sqlite implementation. It backs tests and local
// experimentation; nothing persists across restarts.
package memory

import (
	"context"
	"sync"
	"time"

	"faceid/internal/domain/entity"
	"faceid/internal/domain/repository"
)

type userRepository struct {
	mu    sync.Mutex
	users map[string]entity.User
}

// NewUserRepository constructs an empty in-memory user store.
func NewUserRepository() repository.UserRepository {
	return &userRepository{users: make(map[string]entity.User)}
}

func (repo *userRepository) Exists(_ context.Context, userID string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	_, ok := repo.users[userID]

	return ok, nil
}

func (repo *userRepository) Find(_ context.Context, userID string) (*entity.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	// Copy out so callers cannot mutate stored state.
	encoding := make(entity.FaceEncoding, len(user.FaceEncoding))
	copy(encoding, user.FaceEncoding)
	user.FaceEncoding = encoding

	return &user, nil
}

func (repo *userRepository) Insert(_ context.Context, user *entity.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.users[user.UserID]; ok {
		return repository.ErrUserExists
	}

	stored := *user
	stored.CreatedAt = time.Now()
	encoding := make(entity.FaceEncoding, len(user.FaceEncoding))
	copy(encoding, user.FaceEncoding)
	stored.FaceEncoding = encoding

	repo.users[user.UserID] = stored
	user.CreatedAt = stored.CreatedAt

	return nil
}
