// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core account entity, representing a unique person in the system.
// Each account carries exactly one role from the closed role set; customers register
// themselves as clients, back-office roles are provisioned out of band.
type User struct {
	ID        uuid.UUID // The unique identifier for the account.
	Email     string    // The primary contact email, used as the login identifier.
	Name      string    // The display name.
	Role      Role      // The single role of this account (client, admin, kitchen, courier).
	CreatedAt time.Time // Timestamp of when this account was created.
	UpdatedAt time.Time // Timestamp of the last modification to this account.
}

// Identity is the authenticated-session view of an account, as carried by access tokens.
// Role stays a raw string here: unrecognized values must fail closed at the access gate
// rather than being coerced or rejected earlier.
type Identity struct {
	UserID uuid.UUID // The account the session belongs to.
	Role   string    // The raw role claim from the session token.
}
