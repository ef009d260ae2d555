package sqlite

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"faceid/internal/domain/entity"
	domainerrors "faceid/internal/domain/errors"
	"faceid/internal/domain/repository"
	"faceid/internal/infra/persistence/model"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Exists reports whether a user with the given identifier is registered.
func (repo *userRepository) Exists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to check user existence")
	}

	return count > 0, nil
}

// Find retrieves a single user by identifier.
func (repo *userRepository) Find(ctx context.Context, userID string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&userM).Error
	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user")
	}

	return toUserDomain(&userM)
}

// Insert durably persists a fully-formed user record in a single INSERT.
// The unique index on user_id serializes concurrent registrations of the same
// identifier: exactly one insert succeeds, the rest map to ErrUserExists.
func (repo *userRepository) Insert(ctx context.Context, user *entity.User) error {
	userM, err := fromUserDomain(user)
	if err != nil {
		return errors.Wrap(err, "failed to map user for persistence")
	}

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrUserExists
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to insert user")
	}

	user.CreatedAt = userM.CreatedAt

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) (*entity.User, error) {
	encoding, err := entity.DecodeFaceEncoding(data.FaceEncoding)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt face encoding for user %s", data.UserID)
	}

	return &entity.User{
		UserID:       data.UserID,
		PasswordHash: data.PasswordHash,
		FaceEncoding: encoding,
		CreatedAt:    data.CreatedAt,
	}, nil
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) (*model.UserModel, error) {
	encoded, err := data.FaceEncoding.EncodeText()
	if err != nil {
		return nil, err
	}

	return &model.UserModel{
		UserID:       data.UserID,
		PasswordHash: data.PasswordHash,
		FaceEncoding: encoded,
	}, nil
}
