package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryModel is the GORM-specific struct for the 'categories' table.
type CategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name      string    `gorm:"type:varchar(255);not null"`
	SortOrder int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// DishModel is the GORM-specific struct for the 'dishes' table.
type DishModel struct {
	ID          uuid.UUID           `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CategoryID  uuid.UUID           `gorm:"type:uuid;not null;index"`
	Name        string              `gorm:"type:varchar(255);not null"`
	Description string              `gorm:"type:text"`
	BasePrice   int64               `gorm:"not null"`
	Available   bool                `gorm:"not null;default:true"`
	Modifiers   []DishModifierModel `gorm:"foreignKey:DishID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (DishModel) TableName() string {
	return "dishes"
}

// DishModifierModel is the GORM-specific struct for the 'dish_modifiers' table.
// PriceDelta is in cents and added to the dish base price when selected.
type DishModifierModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	DishID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(255);not null"`
	PriceDelta int64     `gorm:"not null;default:0"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (DishModifierModel) TableName() string {
	return "dish_modifiers"
}
