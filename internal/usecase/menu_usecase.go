package usecase

import (
	"context"

	"trolley/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateModifierInput describes one modifier of a new dish. PriceDelta is in cents.
type CreateModifierInput struct {
	Name       string `json:"name" validate:"required"`
	PriceDelta int64  `json:"price_delta" validate:"gte=0"`
}

// CreateDishInput carries a back-office request to add a dish to the menu.
type CreateDishInput struct {
	CategoryID  uuid.UUID             `json:"category_id" validate:"required"`
	Name        string                `json:"name" validate:"required"`
	Description string                `json:"description"`
	BasePrice   int64                 `json:"base_price" validate:"gte=0"`
	Available   bool                  `json:"available"`
	Modifiers   []CreateModifierInput `json:"modifiers" validate:"dive"`
}

// MenuUsecase exposes the storefront menu and its back-office management.
type MenuUsecase interface {
	// ListMenu returns all available dishes with their modifiers.
	ListMenu(ctx context.Context) ([]*entity.Dish, error)

	// CreateDish adds a new dish to the catalog.
	CreateDish(ctx context.Context, input *CreateDishInput) (*entity.Dish, error)
}
