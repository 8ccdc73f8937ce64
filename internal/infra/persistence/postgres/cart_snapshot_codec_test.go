package postgres

import (
	"testing"

	"trolley/internal/domain/entity"
	"trolley/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartSnapshotCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	dishID := uuid.New()
	modifierID := uuid.New()
	state := &entity.Cart{
		Items: []entity.CartLineItem{
			{
				ID:            entity.LineItemID(dishID, []uuid.UUID{modifierID}),
				DishID:        dishID,
				Name:          "牛肉麵",
				UnitBasePrice: 15000,
				Modifiers: []entity.CartModifier{
					{ModifierID: modifierID, Name: "加大", PriceDelta: 2000},
				},
				UnitPrice: 17000,
				Quantity:  2,
			},
		},
		DeliveryType:    entity.DeliveryTypePickup,
		PromoCode:       "WELCOME10",
		DiscountPercent: 10,
	}

	payload, err := encodeCartSnapshot(state)
	require.NoError(t, err)

	restored, err := decodeCartSnapshot(payload)
	require.NoError(t, err)

	assert.Equal(t, state, restored)
	assert.Equal(t, state.Total(), restored.Total())
}

func TestCartSnapshotCodec_CorruptPayload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload []byte
	}{
		{name: "truncated json", payload: []byte(`{"Items":[{"ID":"a"`)},
		{name: "not json at all", payload: []byte("\x00\x01garbage")},
		{name: "wrong shape", payload: []byte(`{"Items":"not an array"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			state, err := decodeCartSnapshot(tt.payload)
			require.ErrorIs(t, err, repository.ErrCartSnapshotCorrupt)
			assert.Nil(t, state)
		})
	}
}

func TestCartSnapshotCodec_MissingDeliveryTypeGetsDefault(t *testing.T) {
	t.Parallel()

	state, err := decodeCartSnapshot([]byte(`{"Items":null,"PromoCode":"","DiscountPercent":0}`))
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultDeliveryType, state.DeliveryType)
}
