package impl

import (
	"context"
	"log/slog"

	deliverycontext "trolley/internal/delivery/context"
	"trolley/internal/domain/entity"
	"trolley/internal/domain/repository"
	"trolley/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// menuService implements the MenuUsecase interface.
type menuService struct {
	catalogRepo repository.CatalogRepository
	logger      *slog.Logger
}

// MenuServiceParams holds dependencies for the menu service, injected by Fx.
type MenuServiceParams struct {
	fx.In

	CatalogRepo repository.CatalogRepository
	Logger      *slog.Logger
}

// NewMenuService creates a new menu service instance.
func NewMenuService(params MenuServiceParams) usecase.MenuUsecase {
	return &menuService{
		catalogRepo: params.CatalogRepo,
		logger:      params.Logger,
	}
}

func (srv *menuService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListMenu returns all available dishes with their modifiers.
func (srv *menuService) ListMenu(ctx context.Context) ([]*entity.Dish, error) {
	dishes, err := srv.catalogRepo.ListDishes(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list dishes")
	}

	return dishes, nil
}

// CreateDish adds a new dish and its modifiers to the catalog.
func (srv *menuService) CreateDish(ctx context.Context, input *usecase.CreateDishInput) (*entity.Dish, error) {
	dish := &entity.Dish{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		BasePrice:   input.BasePrice,
		Available:   input.Available,
		Modifiers:   make([]entity.Modifier, 0, len(input.Modifiers)),
	}
	for _, modifier := range input.Modifiers {
		dish.Modifiers = append(dish.Modifiers, entity.Modifier{
			Name:       modifier.Name,
			PriceDelta: modifier.PriceDelta,
		})
	}

	if err := srv.catalogRepo.CreateDish(ctx, dish); err != nil {
		srv.log(ctx).Error("Failed to create dish", slog.String("name", input.Name), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create dish")
	}

	srv.log(ctx).Info("Dish created", slog.Any("dishID", dish.ID), slog.String("name", dish.Name))

	return dish, nil
}
