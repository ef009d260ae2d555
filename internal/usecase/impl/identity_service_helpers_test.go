package impl

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"faceid/internal/domain/entity"
	"faceid/internal/domain/repository"
	"faceid/internal/domain/service"
	"faceid/internal/infra/auth"
	"faceid/internal/infra/biometric"
	"faceid/internal/infra/persistence/memory"
	"faceid/internal/usecase"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeEncoder resolves image bytes to canned encodings. Unknown bytes behave
// like an image without a detectable face.
type fakeEncoder struct {
	encodings map[string]entity.FaceEncoding
	lastInput []byte
}

func (e *fakeEncoder) Extract(_ context.Context, image []byte) (entity.FaceEncoding, error) {
	e.lastInput = image
	if encoding, ok := e.encodings[string(image)]; ok {
		return encoding, nil
	}

	return nil, service.ErrFaceNotDetected
}

// identityFixtures holds all test dependencies for identity service tests.
type identityFixtures struct {
	service  usecase.IdentityUsecase
	userRepo repository.UserRepository
	encoder  *fakeEncoder
}

func newTestIdentityService() identityFixtures {
	encoder := &fakeEncoder{encodings: map[string]entity.FaceEncoding{
		"face-alice": paddedEncoding(0.0),
		"face-near":  paddedEncoding(0.1),
		"face-far":   paddedEncoding(2.0),
	}}
	userRepo := memory.NewUserRepository()

	service := NewIdentityService(IdentityServiceParams{
		UserRepo: userRepo,
		Hasher:   auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		Encoder:  encoder,
		Matcher:  biometric.NewEuclideanMatcher(),
		Logger:   newDiscardLogger(),
	})

	return identityFixtures{
		service:  service,
		userRepo: userRepo,
		encoder:  encoder,
	}
}

// paddedEncoding builds a full-length encoding whose first component carries
// the whole distance from the zero vector.
func paddedEncoding(first float64) entity.FaceEncoding {
	encoding := make(entity.FaceEncoding, entity.EncodingDimensions)
	encoding[0] = first

	return encoding
}

func b64Image(content string) string {
	return base64.StdEncoding.EncodeToString([]byte(content))
}

// failingInsertRepo reports every id as unregistered but rejects all inserts,
// simulating losing the check-then-insert race.
type failingInsertRepo struct {
	repository.UserRepository
}

func (r *failingInsertRepo) Exists(context.Context, string) (bool, error) {
	return false, nil
}

func (r *failingInsertRepo) Insert(context.Context, *entity.User) error {
	return repository.ErrUserExists
}
