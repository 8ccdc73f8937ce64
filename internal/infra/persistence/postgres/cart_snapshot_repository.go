package postgres

import (
	"context"
	"encoding/json"
	"time"

	"trolley/internal/domain/entity"
	"trolley/internal/domain/repository"
	"trolley/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cartSnapshotRepository implements the repository.CartSnapshotRepository interface.
// One row per customer holds the full cart state as a JSON document.
type cartSnapshotRepository struct {
	db *gorm.DB
}

// NewCartSnapshotRepository is the constructor for cartSnapshotRepository.
func NewCartSnapshotRepository(db *gorm.DB) repository.CartSnapshotRepository {
	return &cartSnapshotRepository{
		db: db,
	}
}

// SaveCartSnapshot upserts the cart state under the given revision. The conflict
// update only applies when the stored revision is lower, so a delayed write can
// never overwrite a newer snapshot even across processes.
func (repo *cartSnapshotRepository) SaveCartSnapshot(ctx context.Context, userID uuid.UUID, state *entity.Cart, revision int64) error {
	payload, err := encodeCartSnapshot(state)
	if err != nil {
		return err
	}

	snapshot := &model.CartSnapshotModel{
		UserID:    userID,
		Payload:   payload,
		Revision:  revision,
		UpdatedAt: time.Now(),
	}

	result := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"payload":    snapshot.Payload,
				"revision":   snapshot.Revision,
				"updated_at": snapshot.UpdatedAt,
			}),
			Where: clause.Where{
				Exprs: []clause.Expression{
					clause.Lt{Column: clause.Column{Table: "cart_snapshots", Name: "revision"}, Value: revision},
				},
			},
		}).
		Create(snapshot)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to save cart snapshot")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartSnapshotStale
	}

	return nil
}

// FindCartSnapshot loads the cart state and its revision. A decode failure is
// reported as ErrCartSnapshotCorrupt so the caller can discard the row.
func (repo *cartSnapshotRepository) FindCartSnapshot(ctx context.Context, userID uuid.UUID) (*entity.Cart, int64, error) {
	var snapshot model.CartSnapshotModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&snapshot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, repository.ErrCartSnapshotNotFound
		}

		return nil, 0, errors.Wrap(err, "failed to find cart snapshot")
	}

	state, err := decodeCartSnapshot(snapshot.Payload)
	if err != nil {
		return nil, 0, err
	}

	return state, snapshot.Revision, nil
}

// encodeCartSnapshot serializes the full cart state into the jsonb payload column.
func encodeCartSnapshot(state *entity.Cart) ([]byte, error) {
	payload, err := json.Marshal(state)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode cart snapshot")
	}

	return payload, nil
}

// decodeCartSnapshot restores the cart state from a stored payload. An undecodable
// payload is reported as ErrCartSnapshotCorrupt; rows written before the delivery
// type existed get the default patched in.
func decodeCartSnapshot(payload []byte) (*entity.Cart, error) {
	state := &entity.Cart{}
	if err := json.Unmarshal(payload, state); err != nil {
		return nil, errors.Wrap(repository.ErrCartSnapshotCorrupt, err.Error())
	}
	if state.DeliveryType == "" {
		state.DeliveryType = entity.DefaultDeliveryType
	}

	return state, nil
}
