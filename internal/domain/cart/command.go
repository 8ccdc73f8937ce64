// Package cart holds the pure state-transition core of the shopping cart.
//
// Every mutation of a cart is expressed as a tagged Command handled by a single
// transition function. Apply never mutates the state it is given: it returns a
// replacement state, so callers observe either the old cart or the new cart and
// never an intermediate one.
package cart

import (
	"strconv"
	"strings"

	"trolley/internal/domain/entity"
	domainerrors "trolley/internal/domain/errors"

	"github.com/google/uuid"
)

// Command is one cart mutation. The concrete variants below are the only
// implementations.
type Command interface {
	isCommand()
}

// AddItem adds a dish with the chosen modifiers to the cart. When the exact
// combination is already a cart line, the quantities are summed and the existing
// price snapshot is kept; otherwise a new line is created priced from the dish.
type AddItem struct {
	Dish      *entity.Dish
	Modifiers []entity.Modifier
	Quantity  int
}

// RemoveItem removes the line with the given composite ID. Removing an absent
// line is a successful no-op.
type RemoveItem struct {
	ItemID string
}

// UpdateQuantity sets the line's quantity to an absolute value. A value of zero
// or below removes the line. Updating an absent line is a successful no-op.
type UpdateQuantity struct {
	ItemID   string
	Quantity int
}

// SetDeliveryType switches between delivery and pickup.
type SetDeliveryType struct {
	Type entity.DeliveryType
}

// ApplyPromo commits an already-validated promo code and its discount percent.
// The pair is always set together so the cart never holds a discount without a
// code or vice versa; a percent outside [1,100] is rejected for the same reason.
type ApplyPromo struct {
	Code            string
	DiscountPercent int
}

// RemovePromo clears the promo code and resets the discount to zero.
type RemovePromo struct{}

// Clear resets the cart to the empty initial state.
type Clear struct{}

func (AddItem) isCommand()         {}
func (RemoveItem) isCommand()      {}
func (UpdateQuantity) isCommand()  {}
func (SetDeliveryType) isCommand() {}
func (ApplyPromo) isCommand()      {}
func (RemovePromo) isCommand()     {}
func (Clear) isCommand()           {}

// Apply runs a single command against the given state and returns the replacement
// state. On error the returned state is the input state, unchanged.
func Apply(state *entity.Cart, cmd Command) (*entity.Cart, error) {
	switch c := cmd.(type) {
	case AddItem:
		return applyAddItem(state, c), nil
	case RemoveItem:
		return applyRemoveItem(state, c.ItemID), nil
	case UpdateQuantity:
		if c.Quantity <= 0 {
			return applyRemoveItem(state, c.ItemID), nil
		}

		return applyUpdateQuantity(state, c), nil
	case SetDeliveryType:
		if !c.Type.IsValid() {
			return state, domainerrors.ErrInvalidDeliveryType.WithDetails("delivery type: " + c.Type.String())
		}
		next := state.Clone()
		next.DeliveryType = c.Type

		return next, nil
	case ApplyPromo:
		code := NormalizePromoCode(c.Code)
		if code == "" {
			return state, domainerrors.ErrEmptyPromoCode
		}
		// A discount outside [1,100] would leave a code set with no discount (or a
		// negative total); such a grant is rejected and the cart stays unchanged.
		if c.DiscountPercent < 1 || c.DiscountPercent > 100 {
			return state, domainerrors.ErrInvalidPromoDiscount.WithDetails(
				"discount percent: " + strconv.Itoa(c.DiscountPercent))
		}
		next := state.Clone()
		next.PromoCode = code
		next.DiscountPercent = c.DiscountPercent

		return next, nil
	case RemovePromo:
		next := state.Clone()
		next.PromoCode = ""
		next.DiscountPercent = 0

		return next, nil
	case Clear:
		return entity.NewCart(), nil
	default:
		return state, domainerrors.ErrInternalError.WithDetails("unknown cart command")
	}
}

// NormalizePromoCode trims surrounding whitespace and uppercases the code.
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func applyAddItem(state *entity.Cart, c AddItem) *entity.Cart {
	quantity := c.Quantity
	if quantity < 1 {
		quantity = 1
	}

	modifierIDs := make([]uuid.UUID, len(c.Modifiers))
	for i, m := range c.Modifiers {
		modifierIDs[i] = m.ID
	}
	itemID := entity.LineItemID(c.Dish.ID, modifierIDs)

	next := state.Clone()
	if existing := next.FindItem(itemID); existing != nil {
		// Same dish and modifier set: sum quantities, keep the original price snapshot.
		existing.Quantity += quantity

		return next
	}

	unitPrice := c.Dish.BasePrice
	modifiers := make([]entity.CartModifier, len(c.Modifiers))
	for i, m := range c.Modifiers {
		modifiers[i] = entity.CartModifier{
			ModifierID: m.ID,
			Name:       m.Name,
			PriceDelta: m.PriceDelta,
		}
		unitPrice += m.PriceDelta
	}

	next.Items = append(next.Items, entity.CartLineItem{
		ID:            itemID,
		DishID:        c.Dish.ID,
		Name:          c.Dish.Name,
		UnitBasePrice: c.Dish.BasePrice,
		Modifiers:     modifiers,
		UnitPrice:     unitPrice,
		Quantity:      quantity,
	})

	return next
}

func applyRemoveItem(state *entity.Cart, itemID string) *entity.Cart {
	next := state.Clone()
	for i := range next.Items {
		if next.Items[i].ID == itemID {
			next.Items = append(next.Items[:i], next.Items[i+1:]...)

			break
		}
	}

	return next
}

func applyUpdateQuantity(state *entity.Cart, c UpdateQuantity) *entity.Cart {
	next := state.Clone()
	if item := next.FindItem(c.ItemID); item != nil {
		item.Quantity = c.Quantity
	}

	return next
}
