// Package entity contains the core business objects of the project.
package entity

import (
	"slices"
	"strings"
)

// Role represents the type of role an account can have in the system.
type Role string

const (
	// RoleClient indicates a regular storefront customer.
	RoleClient Role = "client"
	// RoleAdmin indicates a back-office administrator.
	RoleAdmin Role = "admin"
	// RoleKitchen indicates kitchen staff handling incoming orders.
	RoleKitchen Role = "kitchen"
	// RoleCourier indicates a delivery courier.
	RoleCourier Role = "courier"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleAdmin, RoleKitchen, RoleCourier:
		return true
	default:
		return false
	}
}

// Matches reports whether the raw role string names this role. Comparison is
// case-insensitive so that token claims survive casing drift.
func (r Role) Matches(raw string) bool {
	return strings.EqualFold(string(r), raw)
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ContainsMatch reports whether any role in the slice matches the raw role string,
// case-insensitively. An unrecognized string matches nothing.
func (rs Roles) ContainsMatch(raw string) bool {
	for _, r := range rs {
		if r.Matches(raw) {
			return true
		}
	}

	return false
}

// ToStrings converts Roles to []string for JWT compatibility.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}
