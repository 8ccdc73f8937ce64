// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Authentication represents a single login credential bound to an account.
// Only email/password credentials exist in this system.
type Authentication struct {
	ID           uuid.UUID // The unique ID for this specific authentication record.
	UserID       uuid.UUID // Links this credential to the User it belongs to.
	Email        string    // The login email this credential answers to.
	PasswordHash string    // The bcrypt-hashed password.
	CreatedAt    time.Time // Timestamp of when this credential was created.
}

// RefreshToken represents a long-lived, authorized session.
// It is used to obtain a new access token after the old one expires, without credentials.
type RefreshToken struct {
	ID        uuid.UUID // The unique ID for this specific refresh token record.
	UserID    uuid.UUID // Links this session to the User it belongs to.
	TokenHash string    // SHA-256 hash of the raw refresh token for secure comparison.
	ExpiresAt time.Time // The exact time when this refresh token becomes invalid.
	CreatedAt time.Time // Timestamp of when this session was created.
}
