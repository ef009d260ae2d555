// Package model holds the GORM persistence models.
package model

import "time"

// UserModel mirrors the 'users' table. The face encoding is stored as JSON
// text so the row stays a single self-contained record.
type UserModel struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	UserID       string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:text;not null"`
	FaceEncoding string `gorm:"type:text;not null"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
