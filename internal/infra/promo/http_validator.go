// Package promo implements promo code validation against the promotions service.
package promo

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"trolley/config"
	"trolley/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultValidationTimeout = 10 * time.Second

// httpValidator implements PromoValidator by calling the promotions service
// over HTTP.
type httpValidator struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// validateRequest is the request body sent to the promotions service.
type validateRequest struct {
	Code string `json:"code"`
}

// validateResponse is the success response body of the promotions service.
type validateResponse struct {
	Code            string `json:"code"`
	DiscountPercent int    `json:"discountPercent"`
}

// NewHTTPValidator creates a promo validator backed by the configured
// promotions service endpoint.
func NewHTTPValidator(cfg *config.Config, logger *slog.Logger) service.PromoValidator {
	timeout := defaultValidationTimeout
	if cfg.Promo.Timeout > 0 {
		timeout = cfg.Promo.Timeout
	}

	return &httpValidator{
		endpoint: cfg.Promo.Endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// ValidateCode asks the promotions service whether the code grants a discount.
// 404 and 410 from the service map to the unknown/expired sentinels; every other
// failure is reported as-is for the caller to classify.
func (v *httpValidator) ValidateCode(ctx context.Context, code string) (*service.PromoGrant, error) {
	body, err := json.Marshal(validateRequest{Code: code})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call promotions service")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, service.ErrPromoCodeNotFound
	case http.StatusGone:
		return nil, service.ErrPromoCodeExpired
	default:
		return nil, errors.Errorf("promotions service returned status %d", resp.StatusCode)
	}

	var grant validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&grant); err != nil {
		return nil, errors.Wrap(err, "failed to decode promotions service response")
	}

	v.logger.Debug("Promo code validated",
		slog.String("code", code),
		slog.Int("discount_percent", grant.DiscountPercent),
	)

	return &service.PromoGrant{Code: code, DiscountPercent: grant.DiscountPercent}, nil
}
