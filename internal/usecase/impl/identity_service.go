// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"

	"go.uber.org/fx"

	deliverycontext "faceid/internal/delivery/context"
	"faceid/internal/domain/entity"
	domainerrors "faceid/internal/domain/errors"
	"faceid/internal/domain/repository"
	"faceid/internal/domain/service"
	"faceid/internal/errors"
	"faceid/internal/usecase"
)

// identityService implements the IdentityUsecase interface.
type identityService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	encoder  service.FaceEncoder
	matcher  service.FaceMatcher
	logger   *slog.Logger
}

// IdentityServiceParams holds dependencies for identityService, injected by Fx.
type IdentityServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Encoder  service.FaceEncoder
	Matcher  service.FaceMatcher
	Logger   *slog.Logger
}

// NewIdentityService is the constructor for identityService. It receives all dependencies as interfaces.
func NewIdentityService(params IdentityServiceParams) usecase.IdentityUsecase {
	return &identityService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		encoder:  params.Encoder,
		matcher:  params.Matcher,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *identityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterUser orchestrates the registration flow: conflict check, face
// extraction, password hashing, then a single atomic insert. The insert is the
// only write and runs last, so a failed registration leaves no partial state.
func (srv *identityService) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting user registration", slog.String("userID", input.UserID))

	exists, err := srv.userRepo.Exists(ctx, input.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check user existence during registration")
	}
	if exists {
		srv.log(ctx).Warn("Registration rejected, user already exists", slog.String("userID", input.UserID))

		return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("user id already registered")
	}

	encoding, err := srv.extractEncoding(ctx, input.FaceImage)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	newUser := &entity.User{
		UserID:       input.UserID,
		PasswordHash: hashedPassword,
		FaceEncoding: encoding,
	}

	if err := srv.userRepo.Insert(ctx, newUser); err != nil {
		// Two registrations may race past the existence check; the store's
		// uniqueness guarantee decides the winner.
		if errors.Is(err, repository.ErrUserExists) {
			srv.log(ctx).Warn("Registration lost insert race", slog.String("userID", input.UserID))

			return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("user id already registered")
		}

		return nil, errors.Wrap(err, "failed to insert user during registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.String("userID", newUser.UserID))

	return &usecase.RegisterOutput{Success: true, Message: "User registered"}, nil
}

// VerifyPassword checks a submitted password against the stored hash.
// A wrong password is a valid=false result, not an error.
func (srv *identityService) VerifyPassword(ctx context.Context, input *usecase.VerifyPasswordInput) (*usecase.VerifyPasswordOutput, error) {
	user, err := srv.findUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	valid := srv.hasher.Check(input.Password, user.PasswordHash)

	srv.log(ctx).Debug("Password verification completed",
		slog.String("userID", input.UserID), slog.Bool("valid", valid))

	return &usecase.VerifyPasswordOutput{Valid: valid}, nil
}

// VerifyFace extracts an encoding from the submitted image and compares it
// against the stored one. A distant face is a verified=false result, not an
// error; only an unusable image fails the request.
func (srv *identityService) VerifyFace(ctx context.Context, input *usecase.VerifyFaceInput) (*usecase.VerifyFaceOutput, error) {
	user, err := srv.findUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	candidate, err := srv.extractEncoding(ctx, input.FaceImage)
	if err != nil {
		return nil, err
	}

	verified, distance := srv.matcher.Match(user.FaceEncoding, candidate)

	srv.log(ctx).Debug("Face verification completed",
		slog.String("userID", input.UserID),
		slog.Bool("verified", verified),
		slog.Float64("distance", distance))

	return &usecase.VerifyFaceOutput{Verified: verified, Distance: distance}, nil
}

// CheckUser reports registration status; it never fails for unknown users.
func (srv *identityService) CheckUser(ctx context.Context, input *usecase.CheckUserInput) (*usecase.CheckUserOutput, error) {
	exists, err := srv.userRepo.Exists(ctx, input.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check user existence")
	}

	return &usecase.CheckUserOutput{Exists: exists}, nil
}

func (srv *identityService) findUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := srv.userRepo.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("unknown user id")
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	return user, nil
}

// extractEncoding decodes the transport payload and runs the face encoder.
// A payload that cannot be base64-decoded is treated the same as an image
// without a detectable face.
func (srv *identityService) extractEncoding(ctx context.Context, faceImage string) (entity.FaceEncoding, error) {
	imageBytes, err := decodeFaceImage(faceImage)
	if err != nil {
		srv.log(ctx).Debug("Face image payload decode failed", slog.Any("error", err))

		return nil, domainerrors.ErrFaceNotDetected.WrapMessage("undecodable face image payload")
	}

	encoding, err := srv.encoder.Extract(ctx, imageBytes)
	if err != nil {
		if errors.Is(err, service.ErrFaceNotDetected) {
			return nil, domainerrors.ErrFaceNotDetected.WrapMessage("no detectable face in image")
		}

		return nil, errors.Wrap(err, "failed to extract face encoding")
	}

	return encoding, nil
}

// decodeFaceImage strips any data-URI prefix and decodes the base64 payload.
// Everything before the last comma, including a MIME-type prefix, is discarded.
func decodeFaceImage(faceImage string) ([]byte, error) {
	payload := faceImage
	if idx := strings.LastIndex(faceImage, ","); idx >= 0 {
		payload = faceImage[idx+1:]
	}
	payload = strings.TrimSpace(payload)

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err == nil {
		return decoded, nil
	}

	// Tolerate payloads sent without padding.
	decoded, rawErr := base64.RawStdEncoding.DecodeString(payload)
	if rawErr != nil {
		return nil, errors.Wrap(err, "decode base64 payload")
	}

	return decoded, nil
}
