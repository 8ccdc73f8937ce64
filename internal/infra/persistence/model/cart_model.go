package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CartSnapshotModel is the GORM-specific struct for the 'cart_snapshots' table.
// The full cart state is stored as one JSON document per customer; Revision is a
// monotonic counter that rejects out-of-order writes.
type CartSnapshotModel struct {
	UserID    uuid.UUID      `gorm:"type:uuid;primary_key"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	Revision  int64          `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartSnapshotModel) TableName() string {
	return "cart_snapshots"
}
