// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"trolley/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrDishNotFound is a domain-specific error returned when a dish is not found.
var ErrDishNotFound = errors.New("dish not found")

// CatalogRepository defines the read and write operations for the menu catalog.
// The cart draws the price data it snapshots from here.
type CatalogRepository interface {
	// FindDishByID retrieves a single dish together with its modifiers.
	FindDishByID(ctx context.Context, id uuid.UUID) (*entity.Dish, error)

	// ListDishes retrieves all currently available dishes with their modifiers.
	ListDishes(ctx context.Context) ([]*entity.Dish, error)

	// CreateDish persists a new dish and its modifiers.
	CreateDish(ctx context.Context, dish *entity.Dish) error
}
