package entity

import (
	"time"

	"github.com/google/uuid"
)

// Dish is a menu item offered by the store. BasePrice is in minor currency units (cents).
type Dish struct {
	ID          uuid.UUID  // The unique identifier of the dish.
	CategoryID  uuid.UUID  // The menu category this dish belongs to.
	Name        string     // Display name shown on the storefront.
	Description string     // Optional longer description.
	BasePrice   int64      // Price of the dish without modifiers, in cents.
	Available   bool       // Whether the dish can currently be ordered.
	Modifiers   []Modifier // Modifiers that may be attached to this dish.
	CreatedAt   time.Time  // Timestamp of when the dish was created.
	UpdatedAt   time.Time  // Timestamp of the last modification.
}

// FindModifier returns the dish modifier with the given ID, or nil when the
// modifier does not belong to this dish.
func (d *Dish) FindModifier(modifierID uuid.UUID) *Modifier {
	for i := range d.Modifiers {
		if d.Modifiers[i].ID == modifierID {
			return &d.Modifiers[i]
		}
	}

	return nil
}

// Modifier is an optional addition to a dish (extra cheese, large size, ...).
type Modifier struct {
	ID         uuid.UUID // The unique identifier of the modifier.
	DishID     uuid.UUID // The dish this modifier belongs to.
	Name       string    // Display name shown on the storefront.
	PriceDelta int64     // Price added on top of the dish base price, in cents. Zero or positive.
}

// Category groups dishes on the storefront menu.
type Category struct {
	ID   uuid.UUID
	Name string
}
