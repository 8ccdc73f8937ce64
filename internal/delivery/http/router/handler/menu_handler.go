package handler

import (
	"log/slog"
	"net/http"

	"trolley/internal/delivery/http/response"
	"trolley/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MenuHandler holds dependencies for menu handlers.
type MenuHandler struct {
	uc     usecase.MenuUsecase
	logger *slog.Logger
}

// NewMenuHandler is the constructor for MenuHandler, injected by Fx.
func NewMenuHandler(uc usecase.MenuUsecase, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListMenu returns all available dishes with their modifiers.
func (h *MenuHandler) ListMenu(c echo.Context) error {
	dishes, err := h.uc.ListMenu(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dishes, "")
}

// CreateDish adds a new dish to the catalog.
func (h *MenuHandler) CreateDish(c echo.Context) error {
	var input *usecase.CreateDishInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid dish input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	dish, err := h.uc.CreateDish(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, dish, "Dish created")
}
