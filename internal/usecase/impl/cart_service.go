// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"sync"

	deliverycontext "trolley/internal/delivery/context"
	"trolley/internal/domain/cart"
	"trolley/internal/domain/entity"
	domainerrors "trolley/internal/domain/errors"
	"trolley/internal/domain/repository"
	"trolley/internal/domain/service"
	"trolley/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface. It keeps one handle per customer:
// a mutex, the in-memory cart state, a monotonic snapshot revision and a promo token.
// All synchronous mutations run to completion under the handle lock, so state
// transitions are atomic with respect to each other; ApplyPromoCode is the only
// operation that releases the lock mid-flight (while awaiting the promo service)
// and it re-checks the promo token before committing.
type cartService struct {
	snapshotRepo repository.CartSnapshotRepository
	catalogRepo  repository.CatalogRepository
	validator    service.PromoValidator
	events       service.CartEventPublisher
	metrics      service.CartMetrics
	logger       *slog.Logger

	mu      sync.Mutex
	handles map[uuid.UUID]*cartHandle
}

// cartHandle is the owned, mutable cart state of one customer.
type cartHandle struct {
	mu       sync.Mutex
	loaded   bool
	state    *entity.Cart
	revision int64
	// promoToken invalidates in-flight promo validations. It is bumped at the start
	// of every apply attempt and by RemovePromoCode and ClearCart, so a stale
	// response can never overwrite a newer promo state.
	promoToken uint64
}

// CartServiceParams holds dependencies for the cart service, injected by Fx.
type CartServiceParams struct {
	fx.In

	SnapshotRepo repository.CartSnapshotRepository
	CatalogRepo  repository.CatalogRepository
	Validator    service.PromoValidator
	Events       service.CartEventPublisher
	Metrics      service.CartMetrics
	Logger       *slog.Logger
}

// NewCartService creates a new cart service instance.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		snapshotRepo: params.SnapshotRepo,
		catalogRepo:  params.CatalogRepo,
		validator:    params.Validator,
		events:       params.Events,
		metrics:      params.Metrics,
		logger:       params.Logger,
		handles:      make(map[uuid.UUID]*cartHandle),
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// handle returns the cart handle for a customer, creating it on first use.
func (srv *cartService) handle(userID uuid.UUID) *cartHandle {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	h, ok := srv.handles[userID]
	if !ok {
		h = &cartHandle{state: entity.NewCart()}
		srv.handles[userID] = h
	}

	return h
}

// ensureLoaded restores the cart from its last persisted snapshot on first access.
// A missing snapshot starts the empty cart; a corrupt snapshot is discarded with a
// warning and also starts empty, never failing the operation. Must be called with
// the handle lock held.
func (srv *cartService) ensureLoaded(ctx context.Context, userID uuid.UUID, h *cartHandle) error {
	if h.loaded {
		return nil
	}

	state, revision, err := srv.snapshotRepo.FindCartSnapshot(ctx, userID)
	switch {
	case err == nil:
		h.state = state
		h.revision = revision
	case errors.Is(err, repository.ErrCartSnapshotNotFound):
		h.state = entity.NewCart()
	case errors.Is(err, repository.ErrCartSnapshotCorrupt):
		srv.log(ctx).Warn("Discarding corrupt cart snapshot",
			slog.Any("user_id", userID),
		)
		h.state = entity.NewCart()
	default:
		return errors.Wrap(err, "failed to load cart snapshot")
	}

	h.loaded = true

	return nil
}

// persist writes the full cart state under the next revision. Writes happen
// synchronously under the handle lock, so a later state's snapshot can never be
// overtaken by an earlier one; the repository enforces the same ordering again
// through the revision guard. Persistence failures are logged, not surfaced: the
// in-memory cart remains the source of truth for the session.
func (srv *cartService) persist(ctx context.Context, userID uuid.UUID, h *cartHandle) {
	h.revision++
	if err := srv.snapshotRepo.SaveCartSnapshot(ctx, userID, h.state, h.revision); err != nil {
		srv.log(ctx).Error("Failed to persist cart snapshot",
			slog.Any("user_id", userID),
			slog.Int64("revision", h.revision),
			slog.Any("error", err),
		)
	}
}

// mutate applies a single command under the handle lock, persists the result and
// records the operation counter.
func (srv *cartService) mutate(ctx context.Context, userID uuid.UUID, operation string, cmd cart.Command) (*entity.Cart, error) {
	h := srv.handle(userID)
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := srv.ensureLoaded(ctx, userID, h); err != nil {
		return nil, err
	}

	next, err := cart.Apply(h.state, cmd)
	if err != nil {
		return nil, err
	}

	h.state = next
	srv.persist(ctx, userID, h)
	srv.metrics.RecordCartOperation(operation)

	return next, nil
}

// GetCart returns the current cart, restoring it from the last snapshot on first access.
func (srv *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	h := srv.handle(userID)
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := srv.ensureLoaded(ctx, userID, h); err != nil {
		return nil, err
	}

	return h.state, nil
}

// AddItem resolves the dish and modifiers from the catalog and adds the combination
// to the cart. The dish price is snapshotted at this moment: re-adding the same
// combination later only increments the quantity of the existing line.
func (srv *cartService) AddItem(ctx context.Context, userID uuid.UUID, input *usecase.AddItemInput) (*entity.Cart, error) {
	dish, err := srv.catalogRepo.FindDishByID(ctx, input.DishID)
	if err != nil {
		if errors.Is(err, repository.ErrDishNotFound) {
			return nil, domainerrors.ErrDishNotFound
		}

		return nil, errors.Wrap(err, "failed to find dish")
	}
	if !dish.Available {
		return nil, domainerrors.ErrDishUnavailable
	}

	modifiers := make([]entity.Modifier, 0, len(input.ModifierIDs))
	for _, modifierID := range input.ModifierIDs {
		modifier := dish.FindModifier(modifierID)
		if modifier == nil {
			return nil, domainerrors.ErrModifierNotFound.WithDetails("modifier: " + modifierID.String())
		}
		modifiers = append(modifiers, *modifier)
	}

	state, err := srv.mutate(ctx, userID, "add_item", cart.AddItem{
		Dish:      dish,
		Modifiers: modifiers,
		Quantity:  input.Quantity,
	})
	if err != nil {
		return nil, err
	}

	srv.publishEvent(ctx, service.CartEventItemAdded, userID, state)

	return state, nil
}

// RemoveItem removes a cart line; removing an absent line is a successful no-op.
func (srv *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, itemID string) (*entity.Cart, error) {
	return srv.mutate(ctx, userID, "remove_item", cart.RemoveItem{ItemID: itemID})
}

// UpdateQuantity sets a line's quantity to an absolute value; zero or below removes it.
func (srv *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, itemID string, quantity int) (*entity.Cart, error) {
	return srv.mutate(ctx, userID, "update_quantity", cart.UpdateQuantity{ItemID: itemID, Quantity: quantity})
}

// ClearCart resets the cart to the empty initial state and invalidates any promo
// validation still in flight.
func (srv *cartService) ClearCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	h := srv.handle(userID)
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := srv.ensureLoaded(ctx, userID, h); err != nil {
		return nil, err
	}

	next, err := cart.Apply(h.state, cart.Clear{})
	if err != nil {
		return nil, err
	}

	h.state = next
	h.promoToken++
	srv.persist(ctx, userID, h)
	srv.metrics.RecordCartOperation("clear_cart")
	srv.publishEvent(ctx, service.CartEventCleared, userID, next)

	return next, nil
}

// SetDeliveryType switches between delivery and pickup; other values are rejected
// with the state unchanged.
func (srv *cartService) SetDeliveryType(ctx context.Context, userID uuid.UUID, deliveryType string) (*entity.Cart, error) {
	return srv.mutate(ctx, userID, "set_delivery_type", cart.SetDeliveryType{Type: entity.DeliveryType(deliveryType)})
}

// ApplyPromoCode validates the code against the promo service and applies the
// resulting discount. The handle lock is released while the validation is in
// flight; the promo token captured before the call guards the commit, so a
// response that was superseded by a newer apply, a removal or a clear is dropped
// without touching the cart.
func (srv *cartService) ApplyPromoCode(ctx context.Context, userID uuid.UUID, code string) (*entity.Cart, error) {
	normalized := cart.NormalizePromoCode(code)
	if normalized == "" {
		return nil, domainerrors.ErrEmptyPromoCode
	}

	h := srv.handle(userID)
	h.mu.Lock()
	if err := srv.ensureLoaded(ctx, userID, h); err != nil {
		h.mu.Unlock()

		return nil, err
	}
	h.promoToken++
	token := h.promoToken
	h.mu.Unlock()

	grant, err := srv.validator.ValidateCode(ctx, normalized)
	if err != nil {
		return nil, srv.promoFailure(ctx, normalized, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.promoToken != token {
		srv.log(ctx).Info("Dropping superseded promo validation",
			slog.Any("user_id", userID),
			slog.String("code", normalized),
		)
		srv.metrics.RecordPromoValidation(service.PromoValidationSuperseded)

		return nil, domainerrors.ErrPromoSuperseded
	}

	next, err := cart.Apply(h.state, cart.ApplyPromo{Code: normalized, DiscountPercent: grant.DiscountPercent})
	if err != nil {
		// A grant the transition refuses (discount outside [1,100]) is a rejection.
		srv.log(ctx).Warn("Rejecting unusable promo grant",
			slog.String("code", normalized),
			slog.Int("discount_percent", grant.DiscountPercent),
		)
		srv.metrics.RecordPromoValidation(service.PromoValidationRejected)

		return nil, err
	}

	h.state = next
	srv.persist(ctx, userID, h)
	srv.metrics.RecordCartOperation("apply_promo_code")
	srv.metrics.RecordPromoValidation(service.PromoValidationAccepted)
	srv.publishEvent(ctx, service.CartEventPromoApplied, userID, next)

	return next, nil
}

// promoFailure maps validator errors to user-facing ones. The cart is untouched in
// every case.
func (srv *cartService) promoFailure(ctx context.Context, code string, err error) error {
	switch {
	case errors.Is(err, service.ErrPromoCodeNotFound):
		srv.metrics.RecordPromoValidation(service.PromoValidationRejected)

		return domainerrors.ErrPromoCodeNotFound
	case errors.Is(err, service.ErrPromoCodeExpired):
		srv.metrics.RecordPromoValidation(service.PromoValidationRejected)

		return domainerrors.ErrPromoCodeExpired
	default:
		srv.log(ctx).Error("Promo validation failed",
			slog.String("code", code),
			slog.Any("error", err),
		)
		srv.metrics.RecordPromoValidation(service.PromoValidationFailed)

		return domainerrors.ErrPromoValidationFailed
	}
}

// RemovePromoCode clears the promo code and discount and invalidates any promo
// validation still in flight.
func (srv *cartService) RemovePromoCode(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	h := srv.handle(userID)
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := srv.ensureLoaded(ctx, userID, h); err != nil {
		return nil, err
	}

	next, err := cart.Apply(h.state, cart.RemovePromo{})
	if err != nil {
		return nil, err
	}

	h.state = next
	h.promoToken++
	srv.persist(ctx, userID, h)
	srv.metrics.RecordCartOperation("remove_promo_code")

	return next, nil
}

// publishEvent sends a cart activity event; failures are logged and never surfaced,
// the cart operation has already succeeded.
func (srv *cartService) publishEvent(ctx context.Context, eventType string, userID uuid.UUID, state *entity.Cart) {
	event := &service.CartEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		EventType:  eventType,
		UserID:     userID.String(),
		ItemsCount: state.ItemsCount(),
		Subtotal:   state.Subtotal(),
		Total:      state.Total(),
		PromoCode:  state.PromoCode,
	}

	if err := srv.events.PublishCartEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish cart event",
			slog.String("event_type", eventType),
			slog.Any("user_id", userID),
			slog.Any("error", err),
		)
	}
}
