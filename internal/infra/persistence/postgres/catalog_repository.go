package postgres

import (
	"context"

	"trolley/internal/domain/entity"
	domainerrors "trolley/internal/domain/errors"
	"trolley/internal/domain/repository"
	"trolley/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// catalogRepository implements the repository.CatalogRepository interface.
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository is the constructor for catalogRepository.
func NewCatalogRepository(db *gorm.DB) repository.CatalogRepository {
	return &catalogRepository{
		db: db,
	}
}

// FindDishByID retrieves a single dish together with its modifiers.
func (repo *catalogRepository) FindDishByID(ctx context.Context, id uuid.UUID) (*entity.Dish, error) {
	var dishM model.DishModel

	if err := repo.db.WithContext(ctx).
		Preload("Modifiers").
		Where("id = ?", id).
		First(&dishM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDishNotFound
		}

		return nil, errors.Wrap(err, "failed to find dish by ID")
	}

	return toDishDomain(&dishM), nil
}

// ListDishes retrieves all currently available dishes with their modifiers.
func (repo *catalogRepository) ListDishes(ctx context.Context) ([]*entity.Dish, error) {
	var dishModels []*model.DishModel

	if err := repo.db.WithContext(ctx).
		Preload("Modifiers").
		Where("available = ?", true).
		Order("name ASC").
		Find(&dishModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list dishes")
	}

	dishes := make([]*entity.Dish, 0, len(dishModels))
	for _, dishM := range dishModels {
		dishes = append(dishes, toDishDomain(dishM))
	}

	return dishes, nil
}

// CreateDish persists a new dish and its modifiers.
func (repo *catalogRepository) CreateDish(ctx context.Context, dish *entity.Dish) error {
	dishM := fromDishDomain(dish)

	if err := repo.db.WithContext(ctx).Create(dishM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDishAlreadyExists
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid category reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create dish")
	}

	// Propagate generated identifiers back to the entity.
	dish.ID = dishM.ID
	dish.CreatedAt = dishM.CreatedAt
	dish.UpdatedAt = dishM.UpdatedAt
	for i := range dishM.Modifiers {
		dish.Modifiers[i].ID = dishM.Modifiers[i].ID
		dish.Modifiers[i].DishID = dishM.Modifiers[i].DishID
	}

	return nil
}

// toDishDomain converts the GORM model and its modifiers to the domain entity.
func toDishDomain(dishM *model.DishModel) *entity.Dish {
	dish := &entity.Dish{
		ID:          dishM.ID,
		CategoryID:  dishM.CategoryID,
		Name:        dishM.Name,
		Description: dishM.Description,
		BasePrice:   dishM.BasePrice,
		Available:   dishM.Available,
		Modifiers:   make([]entity.Modifier, 0, len(dishM.Modifiers)),
		CreatedAt:   dishM.CreatedAt,
		UpdatedAt:   dishM.UpdatedAt,
	}
	for _, modifierM := range dishM.Modifiers {
		dish.Modifiers = append(dish.Modifiers, entity.Modifier{
			ID:         modifierM.ID,
			DishID:     modifierM.DishID,
			Name:       modifierM.Name,
			PriceDelta: modifierM.PriceDelta,
		})
	}

	return dish
}

// fromDishDomain converts a domain dish to its GORM model, modifiers included.
func fromDishDomain(dish *entity.Dish) *model.DishModel {
	dishM := &model.DishModel{
		ID:          dish.ID,
		CategoryID:  dish.CategoryID,
		Name:        dish.Name,
		Description: dish.Description,
		BasePrice:   dish.BasePrice,
		Available:   dish.Available,
		Modifiers:   make([]model.DishModifierModel, 0, len(dish.Modifiers)),
	}
	for _, modifier := range dish.Modifiers {
		dishM.Modifiers = append(dishM.Modifiers, model.DishModifierModel{
			ID:         modifier.ID,
			DishID:     modifier.DishID,
			Name:       modifier.Name,
			PriceDelta: modifier.PriceDelta,
		})
	}

	return dishM
}
