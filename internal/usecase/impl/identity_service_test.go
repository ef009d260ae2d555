package impl

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	domainerrors "faceid/internal/domain/errors"
	"faceid/internal/errors"
	"faceid/internal/infra/auth"
	"faceid/internal/infra/biometric"
	"faceid/internal/usecase"
)

func requireAppError(t *testing.T, err error, httpCode int) {
	t.Helper()

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr), "expected an AppError, got: %v", err)
	assert.Equal(t, httpCode, appErr.HTTPCode())
}

func TestIdentityService_RegisterUser_Success(t *testing.T) {
	fixtures := newTestIdentityService()
	ctx := context.Background()

	output, err := fixtures.service.RegisterUser(ctx, &usecase.RegisterUserInput{
		UserID:    "alice",
		Password:  "p1",
		FaceImage: b64Image("face-alice"),
	})

	require.NoError(t, err)
	assert.True(t, output.Success)
	assert.Equal(t, "User registered", output.Message)

	user, err := fixtures.userRepo.Find(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "p1", user.PasswordHash)
	assert.Len(t, user.FaceEncoding, 128)
}

func TestIdentityService_RegisterUser_DataURIPrefixStripped(t *testing.T) {
	fixtures := newTestIdentityService()

	_, err := fixtures.service.RegisterUser(context.Background(), &usecase.RegisterUserInput{
		UserID:    "alice",
		Password:  "p1",
		FaceImage: "data:image/jpeg;base64," + b64Image("face-alice"),
	})

	require.NoError(t, err)
	assert.Equal(t, []byte("face-alice"), fixtures.encoder.lastInput)
}

func TestIdentityService_RegisterUser_Duplicate(t *testing.T) {
	fixtures := newTestIdentityService()
	ctx := context.Background()

	_, err := fixtures.service.RegisterUser(ctx, &usecase.RegisterUserInput{
		UserID:    "alice",
		Password:  "p1",
		FaceImage: b64Image("face-alice"),
	})
	require.NoError(t, err)

	// Second attempt with a different password and image still conflicts
	// and must not mutate the stored record.
	_, err = fixtures.service.RegisterUser(ctx, &usecase.RegisterUserInput{
		UserID:    "alice",
		Password:  "other",
		FaceImage: b64Image("face-far"),
	})
	requireAppError(t, err, http.StatusConflict)

	valid, err := fixtures.service.VerifyPassword(ctx, &usecase.VerifyPasswordInput{
		UserID:   "alice",
		Password: "p1",
	})
	require.NoError(t, err)
	assert.True(t, valid.Valid)
}

func TestIdentityService_RegisterUser_NoFaceDetected(t *testing.T) {
	fixtures := newTestIdentityService()
	ctx := context.Background()

	_, err := fixtures.service.RegisterUser(ctx, &usecase.RegisterUserInput{
		UserID:    "alice",
		Password:  "p1",
		FaceImage: b64Image("landscape-without-a-face"),
	})
	requireAppError(t, err, http.StatusBadRequest)

	// Nothing was persisted.
	exists, err := fixtures.userRepo.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestIdentityService_RegisterUser_UndecodablePayload(t *testing.T) {
	fixtures := newTestIdentityService()

	_, err := fixtures.service.RegisterUser(context.Background(), &usecase.RegisterUserInput{
		UserID:    "alice",
		Password:  "p1",
		FaceImage: "%%% not base64 %%%",
	})

	requireAppError(t, err, http.StatusBadRequest)
	assert.Nil(t, fixtures.encoder.lastInput, "encoder must not run on an undecodable payload")
}

func TestIdentityService_RegisterUser_LostInsertRace(t *testing.T) {
	fixtures := newTestIdentityService()

	service := NewIdentityService(IdentityServiceParams{
		UserRepo: &failingInsertRepo{},
		Hasher:   auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		Encoder:  fixtures.encoder,
		Matcher:  biometric.NewEuclideanMatcher(),
		Logger:   newDiscardLogger(),
	})

	_, err := service.RegisterUser(context.Background(), &usecase.RegisterUserInput{
		UserID:    "alice",
		Password:  "p1",
		FaceImage: b64Image("face-alice"),
	})

	requireAppError(t, err, http.StatusConflict)
}

func TestIdentityService_VerifyPassword(t *testing.T) {
	fixtures := newTestIdentityService()
	ctx := context.Background()

	_, err := fixtures.service.RegisterUser(ctx, &usecase.RegisterUserInput{
		UserID:    "alice",
		Password:  "p1",
		FaceImage: b64Image("face-alice"),
	})
	require.NoError(t, err)

	output, err := fixtures.service.VerifyPassword(ctx, &usecase.VerifyPasswordInput{
		UserID:   "alice",
		Password: "p1",
	})
	require.NoError(t, err)
	assert.True(t, output.Valid)

	output, err = fixtures.service.VerifyPassword(ctx, &usecase.VerifyPasswordInput{
		UserID:   "alice",
		Password: "wrong",
	})
	require.NoError(t, err)
	assert.False(t, output.Valid)
}

func TestIdentityService_VerifyPassword_UnknownUser(t *testing.T) {
	fixtures := newTestIdentityService()

	_, err := fixtures.service.VerifyPassword(context.Background(), &usecase.VerifyPasswordInput{
		UserID:   "ghost",
		Password: "p1",
	})

	requireAppError(t, err, http.StatusNotFound)
}

func TestIdentityService_VerifyFace(t *testing.T) {
	fixtures := newTestIdentityService()
	ctx := context.Background()

	_, err := fixtures.service.RegisterUser(ctx, &usecase.RegisterUserInput{
		UserID:    "alice",
		Password:  "p1",
		FaceImage: b64Image("face-alice"),
	})
	require.NoError(t, err)

	// Same image: exact match at distance zero.
	output, err := fixtures.service.VerifyFace(ctx, &usecase.VerifyFaceInput{
		UserID:    "alice",
		FaceImage: b64Image("face-alice"),
	})
	require.NoError(t, err)
	assert.True(t, output.Verified)
	assert.Equal(t, 0.0, output.Distance)

	// Nearby encoding: still within the threshold.
	output, err = fixtures.service.VerifyFace(ctx, &usecase.VerifyFaceInput{
		UserID:    "alice",
		FaceImage: b64Image("face-near"),
	})
	require.NoError(t, err)
	assert.True(t, output.Verified)

	// Unrelated face: rejected with a distance beyond the threshold.
	output, err = fixtures.service.VerifyFace(ctx, &usecase.VerifyFaceInput{
		UserID:    "alice",
		FaceImage: b64Image("face-far"),
	})
	require.NoError(t, err)
	assert.False(t, output.Verified)
	assert.Greater(t, output.Distance, 0.5)
}

func TestIdentityService_VerifyFace_UnknownUser(t *testing.T) {
	fixtures := newTestIdentityService()

	_, err := fixtures.service.VerifyFace(context.Background(), &usecase.VerifyFaceInput{
		UserID:    "ghost",
		FaceImage: b64Image("face-alice"),
	})

	requireAppError(t, err, http.StatusNotFound)
}

func TestIdentityService_VerifyFace_NoFaceDetected(t *testing.T) {
	fixtures := newTestIdentityService()
	ctx := context.Background()

	_, err := fixtures.service.RegisterUser(ctx, &usecase.RegisterUserInput{
		UserID:    "alice",
		Password:  "p1",
		FaceImage: b64Image("face-alice"),
	})
	require.NoError(t, err)

	_, err = fixtures.service.VerifyFace(ctx, &usecase.VerifyFaceInput{
		UserID:    "alice",
		FaceImage: b64Image("landscape-without-a-face"),
	})

	requireAppError(t, err, http.StatusBadRequest)
}

func TestIdentityService_CheckUser(t *testing.T) {
	fixtures := newTestIdentityService()
	ctx := context.Background()

	output, err := fixtures.service.CheckUser(ctx, &usecase.CheckUserInput{UserID: "alice"})
	require.NoError(t, err)
	assert.False(t, output.Exists)

	_, err = fixtures.service.RegisterUser(ctx, &usecase.RegisterUserInput{
		UserID:    "alice",
		Password:  "p1",
		FaceImage: b64Image("face-alice"),
	})
	require.NoError(t, err)

	output, err = fixtures.service.CheckUser(ctx, &usecase.CheckUserInput{UserID: "alice"})
	require.NoError(t, err)
	assert.True(t, output.Exists)
}

func TestDecodeFaceImage(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{
			name:  "raw base64",
			input: b64Image("hello"),
			want:  []byte("hello"),
		},
		{
			name:  "data uri",
			input: "data:image/png;base64," + b64Image("hello"),
			want:  []byte("hello"),
		},
		{
			name:  "only the substring after the last comma counts",
			input: "a,b," + b64Image("hello"),
			want:  []byte("hello"),
		},
		{
			name:  "unpadded payload",
			input: "aGVsbG8",
			want:  []byte("hello"),
		},
		{
			name:    "not base64",
			input:   "%%%",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeFaceImage(tt.input)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
