package service

import (
	"context"
)

// Cart event types published for back-office consumers.
const (
	CartEventItemAdded    = "item_added"
	CartEventCleared      = "cart_cleared"
	CartEventPromoApplied = "promo_applied"
)

// CartEvent describes one notable cart activity for async consumers
// (dashboards, analytics). Amounts are in minor currency units.
type CartEvent struct {
	RequestID  string `json:"request_id,omitempty"` // For distributed tracing
	EventType  string `json:"event_type"`
	UserID     string `json:"user_id"`
	ItemsCount int    `json:"items_count"`
	Subtotal   int64  `json:"subtotal"`
	Total      int64  `json:"total"`
	PromoCode  string `json:"promo_code,omitempty"`
}

// CartEventPublisher defines the interface for publishing cart events to a message queue.
type CartEventPublisher interface {
	// PublishCartEvent publishes a cart activity event for async processing.
	PublishCartEvent(ctx context.Context, event *CartEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
