package cart

import (
	"testing"

	"trolley/internal/domain/entity"
	domainerrors "trolley/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func margherita() *entity.Dish {
	return &entity.Dish{
		ID:        uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Name:      "Margherita",
		BasePrice: 1500,
		Available: true,
	}
}

func extraCheese() entity.Modifier {
	return entity.Modifier{
		ID:         uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		Name:       "Extra cheese",
		PriceDelta: 200,
	}
}

func TestApply_AddItemCreatesPricedLine(t *testing.T) {
	t.Parallel()

	state := entity.NewCart()
	next, err := Apply(state, AddItem{Dish: margherita(), Modifiers: []entity.Modifier{extraCheese()}, Quantity: 2})
	require.NoError(t, err)

	require.Len(t, next.Items, 1)
	line := next.Items[0]
	assert.Equal(t, int64(1500), line.UnitBasePrice)
	assert.Equal(t, int64(1700), line.UnitPrice)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, int64(3400), next.Subtotal())

	// The input state is never mutated.
	assert.Empty(t, state.Items)
}

func TestApply_AddItemMergesSameCombination(t *testing.T) {
	t.Parallel()

	state := entity.NewCart()
	state, err := Apply(state, AddItem{Dish: margherita(), Modifiers: []entity.Modifier{extraCheese()}, Quantity: 1})
	require.NoError(t, err)

	// Same dish, same modifier set: quantities sum into one line.
	state, err = Apply(state, AddItem{Dish: margherita(), Modifiers: []entity.Modifier{extraCheese()}, Quantity: 3})
	require.NoError(t, err)

	require.Len(t, state.Items, 1)
	assert.Equal(t, 4, state.Items[0].Quantity)
}

func TestApply_AddItemDistinctModifierSetIsNewLine(t *testing.T) {
	t.Parallel()

	state := entity.NewCart()
	state, err := Apply(state, AddItem{Dish: margherita(), Quantity: 1})
	require.NoError(t, err)

	state, err = Apply(state, AddItem{Dish: margherita(), Modifiers: []entity.Modifier{extraCheese()}, Quantity: 1})
	require.NoError(t, err)

	assert.Len(t, state.Items, 2)
}

func TestApply_MergeKeepsOriginalPriceSnapshot(t *testing.T) {
	t.Parallel()

	state := entity.NewCart()
	state, err := Apply(state, AddItem{Dish: margherita(), Quantity: 1})
	require.NoError(t, err)

	// The dish got more expensive between the two adds.
	repriced := margherita()
	repriced.BasePrice = 9999
	state, err = Apply(state, AddItem{Dish: repriced, Quantity: 1})
	require.NoError(t, err)

	require.Len(t, state.Items, 1)
	assert.Equal(t, int64(1500), state.Items[0].UnitPrice)
	assert.Equal(t, 2, state.Items[0].Quantity)
}

func TestApply_AddItemQuantityFloorsAtOne(t *testing.T) {
	t.Parallel()

	state, err := Apply(entity.NewCart(), AddItem{Dish: margherita(), Quantity: 0})
	require.NoError(t, err)

	require.Len(t, state.Items, 1)
	assert.Equal(t, 1, state.Items[0].Quantity)
}

func TestApply_RemoveItem(t *testing.T) {
	t.Parallel()

	state, err := Apply(entity.NewCart(), AddItem{Dish: margherita(), Quantity: 1})
	require.NoError(t, err)
	itemID := state.Items[0].ID

	state, err = Apply(state, RemoveItem{ItemID: itemID})
	require.NoError(t, err)
	assert.Empty(t, state.Items)

	// Removing an absent line is a successful no-op.
	state, err = Apply(state, RemoveItem{ItemID: itemID})
	require.NoError(t, err)
	assert.Empty(t, state.Items)
}

func TestApply_UpdateQuantity(t *testing.T) {
	t.Parallel()

	state, err := Apply(entity.NewCart(), AddItem{Dish: margherita(), Quantity: 1})
	require.NoError(t, err)
	itemID := state.Items[0].ID

	state, err = Apply(state, UpdateQuantity{ItemID: itemID, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, state.Items[0].Quantity)

	// Zero or below removes the line.
	state, err = Apply(state, UpdateQuantity{ItemID: itemID, Quantity: 0})
	require.NoError(t, err)
	assert.Empty(t, state.Items)

	// Updating an absent line is a successful no-op.
	state, err = Apply(state, UpdateQuantity{ItemID: "missing", Quantity: 3})
	require.NoError(t, err)
	assert.Empty(t, state.Items)
}

func TestApply_SetDeliveryType(t *testing.T) {
	t.Parallel()

	state, err := Apply(entity.NewCart(), SetDeliveryType{Type: entity.DeliveryTypePickup})
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryTypePickup, state.DeliveryType)

	before := state
	state, err = Apply(state, SetDeliveryType{Type: "drone"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidDeliveryType)
	assert.Same(t, before, state, "failed command returns the input state")
}

func TestApply_Promo(t *testing.T) {
	t.Parallel()

	state, err := Apply(entity.NewCart(), ApplyPromo{Code: "  welcome10 ", DiscountPercent: 10})
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", state.PromoCode)
	assert.Equal(t, 10, state.DiscountPercent)

	state, err = Apply(state, RemovePromo{})
	require.NoError(t, err)
	assert.Empty(t, state.PromoCode)
	assert.Zero(t, state.DiscountPercent)

	_, err = Apply(state, ApplyPromo{Code: "   "})
	require.ErrorIs(t, err, domainerrors.ErrEmptyPromoCode)
}

func TestApply_PromoRejectsOutOfRangeDiscount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		percent int
		wantErr bool
	}{
		{name: "zero percent rejected", percent: 0, wantErr: true},
		{name: "negative rejected", percent: -5, wantErr: true},
		{name: "above hundred rejected", percent: 101, wantErr: true},
		{name: "one percent accepted", percent: 1},
		{name: "full discount accepted", percent: 100},
		{name: "in range accepted", percent: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			state, err := Apply(entity.NewCart(), ApplyPromo{Code: "SALE", DiscountPercent: tt.percent})
			if tt.wantErr {
				require.ErrorIs(t, err, domainerrors.ErrInvalidPromoDiscount)
				// A rejected grant leaves no trace: no code without a discount.
				assert.Empty(t, state.PromoCode)
				assert.Zero(t, state.DiscountPercent)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, "SALE", state.PromoCode)
			assert.Equal(t, tt.percent, state.DiscountPercent)
		})
	}
}

func TestApply_ClearResetsEverything(t *testing.T) {
	t.Parallel()

	state, err := Apply(entity.NewCart(), AddItem{Dish: margherita(), Quantity: 2})
	require.NoError(t, err)
	state, err = Apply(state, SetDeliveryType{Type: entity.DeliveryTypePickup})
	require.NoError(t, err)
	state, err = Apply(state, ApplyPromo{Code: "SALE", DiscountPercent: 20})
	require.NoError(t, err)

	state, err = Apply(state, Clear{})
	require.NoError(t, err)

	assert.Empty(t, state.Items)
	assert.Equal(t, entity.DefaultDeliveryType, state.DeliveryType)
	assert.Empty(t, state.PromoCode)
	assert.Zero(t, state.DiscountPercent)
}

func TestNormalizePromoCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "WELCOME10", NormalizePromoCode(" welcome10 "))
	assert.Equal(t, "", NormalizePromoCode("   "))
}
