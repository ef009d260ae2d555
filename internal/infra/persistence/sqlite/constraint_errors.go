package sqlite

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// isUniqueConstraintViolation reports whether err came from the unique index
// on users.user_id. GORM's error translation covers most cases; the message
// check catches driver errors that bypass translation.
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "unique constraint failed") ||
		strings.Contains(errMsg, "constraint failed: users.user_id")
}
