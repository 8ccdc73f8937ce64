package impl

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"

	"trolley/internal/domain/entity"
	"trolley/internal/domain/repository"
	"trolley/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeSnapshotRepo is an in-memory CartSnapshotRepository that records every save.
// Snapshots are stored as JSON payloads so every save and restore runs the same
// codec the gorm repository uses, not a shortcut around it.
type fakeSnapshotRepo struct {
	mu        sync.Mutex
	payloads  map[uuid.UUID][]byte
	revisions map[uuid.UUID]int64
	saves     []int64

	findErr error
	saveErr error
}

func newFakeSnapshotRepo() *fakeSnapshotRepo {
	return &fakeSnapshotRepo{
		payloads:  make(map[uuid.UUID][]byte),
		revisions: make(map[uuid.UUID]int64),
	}
}

// seed plants a snapshot the way a previous session's save would have stored it.
func (f *fakeSnapshotRepo) seed(t *testing.T, userID uuid.UUID, state *entity.Cart, revision int64) {
	t.Helper()

	payload, err := json.Marshal(state)
	require.NoError(t, err)
	f.seedRaw(userID, payload, revision)
}

// seedRaw plants an arbitrary stored payload, parseable or not.
func (f *fakeSnapshotRepo) seedRaw(userID uuid.UUID, payload []byte, revision int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.payloads[userID] = payload
	f.revisions[userID] = revision
}

func (f *fakeSnapshotRepo) SaveCartSnapshot(_ context.Context, userID uuid.UUID, state *entity.Cart, revision int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saveErr != nil {
		return f.saveErr
	}

	payload, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "failed to encode cart snapshot")
	}

	f.payloads[userID] = payload
	f.revisions[userID] = revision
	f.saves = append(f.saves, revision)

	return nil
}

func (f *fakeSnapshotRepo) FindCartSnapshot(_ context.Context, userID uuid.UUID) (*entity.Cart, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findErr != nil {
		return nil, 0, f.findErr
	}

	payload, ok := f.payloads[userID]
	if !ok {
		return nil, 0, repository.ErrCartSnapshotNotFound
	}

	state := &entity.Cart{}
	if err := json.Unmarshal(payload, state); err != nil {
		return nil, 0, errors.Wrap(repository.ErrCartSnapshotCorrupt, err.Error())
	}
	if state.DeliveryType == "" {
		state.DeliveryType = entity.DefaultDeliveryType
	}

	return state, f.revisions[userID], nil
}

func (f *fakeSnapshotRepo) savedRevisions() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]int64, len(f.saves))
	copy(out, f.saves)

	return out
}

// fakeCatalogRepo serves dishes from a fixed map.
type fakeCatalogRepo struct {
	dishes map[uuid.UUID]*entity.Dish
}

func newFakeCatalogRepo(dishes ...*entity.Dish) *fakeCatalogRepo {
	repo := &fakeCatalogRepo{dishes: make(map[uuid.UUID]*entity.Dish)}
	for _, dish := range dishes {
		repo.dishes[dish.ID] = dish
	}

	return repo
}

func (f *fakeCatalogRepo) FindDishByID(_ context.Context, id uuid.UUID) (*entity.Dish, error) {
	dish, ok := f.dishes[id]
	if !ok {
		return nil, repository.ErrDishNotFound
	}

	return dish, nil
}

func (f *fakeCatalogRepo) ListDishes(_ context.Context) ([]*entity.Dish, error) {
	out := make([]*entity.Dish, 0, len(f.dishes))
	for _, dish := range f.dishes {
		out = append(out, dish)
	}

	return out, nil
}

func (f *fakeCatalogRepo) CreateDish(_ context.Context, dish *entity.Dish) error {
	if dish.ID == uuid.Nil {
		dish.ID = uuid.New()
	}
	f.dishes[dish.ID] = dish

	return nil
}

// fakePromoValidator answers with a fixed grant or error, optionally blocking until
// released so tests can interleave other cart operations with the validation.
type fakePromoValidator struct {
	grant   *service.PromoGrant
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakePromoValidator) ValidateCode(_ context.Context, code string) (*service.PromoGrant, error) {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.grant != nil {
		return f.grant, nil
	}

	return &service.PromoGrant{Code: code, DiscountPercent: 10}, nil
}

// promoValidatorFunc adapts a closure to the PromoValidator interface.
type promoValidatorFunc func(ctx context.Context, code string) (*service.PromoGrant, error)

func (f promoValidatorFunc) ValidateCode(ctx context.Context, code string) (*service.PromoGrant, error) {
	return f(ctx, code)
}

// fakeEventPublisher records every published event.
type fakeEventPublisher struct {
	mu     sync.Mutex
	events []*service.CartEvent
	err    error
}

func (f *fakeEventPublisher) PublishCartEvent(_ context.Context, event *service.CartEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)

	return nil
}

func (f *fakeEventPublisher) Close() error { return nil }

func (f *fakeEventPublisher) published() []*service.CartEvent {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*service.CartEvent, len(f.events))
	copy(out, f.events)

	return out
}

// fakeMetrics counts recorded operations and promo outcomes by label.
type fakeMetrics struct {
	mu         sync.Mutex
	operations map[string]int
	promo      map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{operations: make(map[string]int), promo: make(map[string]int)}
}

func (f *fakeMetrics) RecordCartOperation(operation string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.operations[operation]++
}

func (f *fakeMetrics) RecordPromoValidation(result string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.promo[result]++
}

func (f *fakeMetrics) promoCount(result string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.promo[result]
}

// testDish builds an available dish with one modifier for cart tests.
func testDish(basePrice int64, modifierDelta int64) *entity.Dish {
	dishID := uuid.New()

	return &entity.Dish{
		ID:        dishID,
		Name:      "牛肉麵",
		BasePrice: basePrice,
		Available: true,
		Modifiers: []entity.Modifier{
			{ID: uuid.New(), DishID: dishID, Name: "加大", PriceDelta: modifierDelta},
		},
	}
}
