// Package entity contains the core business objects of the project.
package entity

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// DeliveryType represents how an order leaves the store.
type DeliveryType string

const (
	// DeliveryTypeDelivery indicates courier delivery to the customer address.
	DeliveryTypeDelivery DeliveryType = "delivery"
	// DeliveryTypePickup indicates the customer collects the order in store.
	DeliveryTypePickup DeliveryType = "pickup"

	// DefaultDeliveryType is the delivery type of a freshly created cart.
	DefaultDeliveryType = DeliveryTypeDelivery
)

// String returns the string representation of the DeliveryType.
func (t DeliveryType) String() string {
	return string(t)
}

// IsValid checks if the DeliveryType is a valid value.
func (t DeliveryType) IsValid() bool {
	switch t {
	case DeliveryTypeDelivery, DeliveryTypePickup:
		return true
	default:
		return false
	}
}

// CartModifier is the point-in-time snapshot of a dish modifier attached to a cart line.
// PriceDelta is in minor currency units (cents) and is zero or positive.
type CartModifier struct {
	ModifierID uuid.UUID // The catalog modifier this snapshot was taken from.
	Name       string    // Display name at the time the line was created.
	PriceDelta int64     // Price added on top of the dish base price, in cents.
}

// CartLineItem is one line of the shopping cart. Its ID is a deterministic function of
// the dish and the chosen modifier set, so two additions of the same combination collapse
// into one line with a summed quantity. Prices are snapshots taken when the line was
// created; later catalog price changes do not reprice existing lines.
type CartLineItem struct {
	ID            string         // Composite identity key, see LineItemID.
	DishID        uuid.UUID      // The underlying catalog dish.
	Name          string         // Dish display name at the time of first add.
	UnitBasePrice int64          // Price of the dish alone, in cents.
	Modifiers     []CartModifier // Chosen modifiers, in the order the customer picked them.
	UnitPrice     int64          // UnitBasePrice plus the sum of all modifier deltas.
	Quantity      int            // Always >= 1 while the line exists.
}

// LineTotal returns the line's contribution to the cart subtotal.
func (li CartLineItem) LineTotal() int64 {
	return li.UnitPrice * int64(li.Quantity)
}

// LineItemID derives the composite identity key for a dish and modifier combination.
// Modifier order does not matter: the IDs are sorted before joining.
func LineItemID(dishID uuid.UUID, modifierIDs []uuid.UUID) string {
	if len(modifierIDs) == 0 {
		return dishID.String()
	}

	ids := make([]string, len(modifierIDs))
	for i, id := range modifierIDs {
		ids[i] = id.String()
	}
	sort.Strings(ids)

	return dishID.String() + ":" + strings.Join(ids, "+")
}

// Cart is the full shopping-cart state of one customer. Totals are never stored; they are
// recomputed from Items and DiscountPercent on every read.
type Cart struct {
	Items           []CartLineItem // Keyed by CartLineItem.ID; order is display order only.
	DeliveryType    DeliveryType   // delivery or pickup.
	PromoCode       string         // Uppercase-normalized promo code, empty when none applied.
	DiscountPercent int            // In [0, 100]; non-zero only while PromoCode is set.
}

// NewCart returns the empty initial cart state.
func NewCart() *Cart {
	return &Cart{DeliveryType: DefaultDeliveryType}
}

// Clone returns a deep copy so transitions can replace state without aliasing.
func (c *Cart) Clone() *Cart {
	cloned := &Cart{
		Items:           make([]CartLineItem, len(c.Items)),
		DeliveryType:    c.DeliveryType,
		PromoCode:       c.PromoCode,
		DiscountPercent: c.DiscountPercent,
	}
	for i, item := range c.Items {
		item.Modifiers = append([]CartModifier(nil), item.Modifiers...)
		cloned.Items[i] = item
	}

	return cloned
}

// ItemsCount returns the sum of all line quantities.
func (c *Cart) ItemsCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}

	return count
}

// Subtotal returns the sum of all line totals before any discount, in cents.
func (c *Cart) Subtotal() int64 {
	var subtotal int64
	for _, item := range c.Items {
		subtotal += item.LineTotal()
	}

	return subtotal
}

// DiscountAmount returns the promo discount applied to the subtotal, in cents.
func (c *Cart) DiscountAmount() int64 {
	return c.Subtotal() * int64(c.DiscountPercent) / 100
}

// Total returns the payable amount, in cents. Never negative.
func (c *Cart) Total() int64 {
	total := c.Subtotal() - c.DiscountAmount()
	if total < 0 {
		return 0
	}

	return total
}

// FindItem returns the line with the given composite ID, or nil when absent.
func (c *Cart) FindItem(itemID string) *CartLineItem {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}

	return nil
}

// IsInCart reports whether the exact dish and modifier combination is already a cart line.
func (c *Cart) IsInCart(dishID uuid.UUID, modifierIDs []uuid.UUID) bool {
	return c.FindItem(LineItemID(dishID, modifierIDs)) != nil
}

// ItemQuantity returns the quantity of the exact dish and modifier combination,
// or zero when the combination is not in the cart.
func (c *Cart) ItemQuantity(dishID uuid.UUID, modifierIDs []uuid.UUID) int {
	item := c.FindItem(LineItemID(dishID, modifierIDs))
	if item == nil {
		return 0
	}

	return item.Quantity
}
