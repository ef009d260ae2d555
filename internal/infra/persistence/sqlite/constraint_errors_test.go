package sqlite

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueConstraintViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "gorm translated duplicate key",
			err:  gorm.ErrDuplicatedKey,
			want: true,
		},
		{
			name: "wrapped duplicate key",
			err:  errors.Wrap(gorm.ErrDuplicatedKey, "insert failed"),
			want: true,
		},
		{
			name: "raw sqlite unique message",
			err:  errors.New("UNIQUE constraint failed: users.user_id"),
			want: true,
		},
		{
			name: "unrelated error",
			err:  errors.New("database is locked"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueConstraintViolation(tt.err))
		})
	}
}
