// Package entity contains the core business objects of the project.
package entity

import "time"

// User represents one registered identity. A user is only ever created
// fully formed: identifier, password hash and face encoding are persisted
// together, and never updated afterwards.
type User struct {
	UserID       string       // Caller-chosen unique identifier, immutable once created.
	PasswordHash string       // Salted bcrypt hash. Never holds a plaintext password.
	FaceEncoding FaceEncoding // 128-d facial feature vector captured at registration.
	CreatedAt    time.Time    // Timestamp of when this user account was created.
}
