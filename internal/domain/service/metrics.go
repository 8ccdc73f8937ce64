package service

// Metric label values for promo validation outcomes.
const (
	PromoValidationAccepted   = "accepted"
	PromoValidationRejected   = "rejected"
	PromoValidationFailed     = "failed"
	PromoValidationSuperseded = "superseded"
)

// CartMetrics records operational counters for cart activity. Implementations
// must be safe for concurrent use.
type CartMetrics interface {
	// RecordCartOperation counts one completed cart mutation, labeled by operation name.
	RecordCartOperation(operation string)

	// RecordPromoValidation counts one promo validation attempt, labeled by outcome.
	RecordPromoValidation(result string)
}
