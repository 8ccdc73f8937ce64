// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"trolley/internal/domain/entity"
)

// ErrAuthNotFound is returned when an authentication credential is not found.
var ErrAuthNotFound = errors.New("authentication credential not found")

// AuthRepository defines the standard operations for credential persistence.
type AuthRepository interface {
	// CreateAuthentication persists a new email/password credential.
	CreateAuthentication(ctx context.Context, auth *entity.Authentication) error

	// FindAuthenticationByEmail retrieves a credential by its login email.
	FindAuthenticationByEmail(ctx context.Context, email string) (*entity.Authentication, error)
}
