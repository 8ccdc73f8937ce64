// Package usecase defines the application-facing interfaces and their data contracts.
package usecase

import (
	"context"

	"trolley/internal/domain/entity"

	"github.com/google/uuid"
)

// AddItemInput carries one add-to-cart request. ModifierIDs must all belong to the dish.
type AddItemInput struct {
	DishID      uuid.UUID   `json:"dish_id" validate:"required"`
	ModifierIDs []uuid.UUID `json:"modifier_ids"`
	Quantity    int         `json:"quantity"`
}

// CartUsecase owns the shopping cart of each customer: every mutation goes through
// here, keeps the cart invariants, and persists a full snapshot before returning.
// All operations return the resulting cart state.
type CartUsecase interface {
	// GetCart returns the current cart, restoring it from the last snapshot on first access.
	GetCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// AddItem adds a dish with the chosen modifiers, merging with an existing line
	// when the exact combination is already in the cart.
	AddItem(ctx context.Context, userID uuid.UUID, input *AddItemInput) (*entity.Cart, error)

	// RemoveItem removes a cart line; removing an absent line is a successful no-op.
	RemoveItem(ctx context.Context, userID uuid.UUID, itemID string) (*entity.Cart, error)

	// UpdateQuantity sets a line's quantity to an absolute value; zero or below removes it.
	UpdateQuantity(ctx context.Context, userID uuid.UUID, itemID string, quantity int) (*entity.Cart, error)

	// ClearCart resets the cart to the empty initial state.
	ClearCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// SetDeliveryType switches between delivery and pickup; other values are rejected.
	SetDeliveryType(ctx context.Context, userID uuid.UUID, deliveryType string) (*entity.Cart, error)

	// ApplyPromoCode validates the code against the promo service and, on success,
	// applies the code and its discount atomically. The only externally-fallible
	// cart operation: any validation failure leaves the cart unchanged.
	ApplyPromoCode(ctx context.Context, userID uuid.UUID, code string) (*entity.Cart, error)

	// RemovePromoCode clears the promo code and resets the discount to zero.
	RemovePromoCode(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)
}
