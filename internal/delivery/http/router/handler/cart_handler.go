package handler

import (
	"log/slog"
	"net/http"

	"trolley/internal/delivery/http/middleware"
	"trolley/internal/delivery/http/response"
	"trolley/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler holds dependencies for cart-related handlers. All routes operate on
// the authenticated caller's own cart; admins read other carts via the admin route.
type CartHandler struct {
	uc     usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetCart returns the caller's current cart.
func (h *CartHandler) GetCart(c echo.Context) error {
	state, err := h.uc.GetCart(c.Request().Context(), middleware.IdentityFromContext(c).UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "")
}

// AddItem adds a dish/modifier combination to the caller's cart.
func (h *CartHandler) AddItem(c echo.Context) error {
	var input *usecase.AddItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	state, err := h.uc.AddItem(c.Request().Context(), middleware.IdentityFromContext(c).UserID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "Item added to cart")
}

// RemoveItem removes one cart line by its item ID.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	state, err := h.uc.RemoveItem(c.Request().Context(), middleware.IdentityFromContext(c).UserID, c.Param("itemID"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "Item removed from cart")
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity sets a cart line's quantity to an absolute value.
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	var input updateQuantityRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid quantity input")
	}

	state, err := h.uc.UpdateQuantity(c.Request().Context(), middleware.IdentityFromContext(c).UserID, c.Param("itemID"), input.Quantity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "Quantity updated")
}

// ClearCart resets the caller's cart to its initial state.
func (h *CartHandler) ClearCart(c echo.Context) error {
	state, err := h.uc.ClearCart(c.Request().Context(), middleware.IdentityFromContext(c).UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "Cart cleared")
}

type setDeliveryTypeRequest struct {
	DeliveryType string `json:"delivery_type" validate:"required"`
}

// SetDeliveryType switches the cart between delivery and pickup.
func (h *CartHandler) SetDeliveryType(c echo.Context) error {
	var input setDeliveryTypeRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid delivery type input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	state, err := h.uc.SetDeliveryType(c.Request().Context(), middleware.IdentityFromContext(c).UserID, input.DeliveryType)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "Delivery type updated")
}

type applyPromoRequest struct {
	Code string `json:"code" validate:"required"`
}

// ApplyPromoCode validates a promo code and applies its discount to the cart.
func (h *CartHandler) ApplyPromoCode(c echo.Context) error {
	var input applyPromoRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid promo code input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	state, err := h.uc.ApplyPromoCode(c.Request().Context(), middleware.IdentityFromContext(c).UserID, input.Code)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "Promo code applied")
}

// RemovePromoCode clears the promo code and its discount from the cart.
func (h *CartHandler) RemovePromoCode(c echo.Context) error {
	state, err := h.uc.RemovePromoCode(c.Request().Context(), middleware.IdentityFromContext(c).UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "Promo code removed")
}

// GetUserCart lets back-office staff inspect any customer's cart.
func (h *CartHandler) GetUserCart(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		return response.BadRequest(c, "INVALID_USER_ID", "Invalid user ID")
	}

	state, err := h.uc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "")
}
