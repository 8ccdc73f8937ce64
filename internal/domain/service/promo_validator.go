package service

import (
	"context"

	"github.com/pkg/errors"
)

// Domain-specific errors for promo code validation.
var (
	// ErrPromoCodeNotFound is returned when the promo service does not know the code.
	ErrPromoCodeNotFound = errors.New("promo code not found")
	// ErrPromoCodeExpired is returned when the promo code exists but is no longer valid.
	ErrPromoCodeExpired = errors.New("promo code expired")
)

// PromoGrant is the successful result of validating a promo code.
type PromoGrant struct {
	Code            string // The normalized code the grant answers to.
	DiscountPercent int    // Discount in whole percent, within [0, 100].
}

// PromoValidator checks promo codes against the remote promo service. This is the
// only external dependency of the cart: any failure here leaves the cart unchanged.
type PromoValidator interface {
	// ValidateCode validates an uppercase-normalized promo code and returns the
	// discount it grants. Returns ErrPromoCodeNotFound or ErrPromoCodeExpired for
	// the respective rejections; any other error is a transport-level failure.
	ValidateCode(ctx context.Context, code string) (*PromoGrant, error)
}
