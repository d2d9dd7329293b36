// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/integration/persistence/model"
)

// occurrenceCommitter implements the adapter.OccurrenceCommitter interface.
type occurrenceCommitter struct {
	db *gorm.DB
}

// NewOccurrenceCommitter creates a new occurrence committer instance.
func NewOccurrenceCommitter(db *gorm.DB) adapter.OccurrenceCommitter {
	return &occurrenceCommitter{
		db: db,
	}
}

// Commit advances the schedule and records the transaction atomically.
// The schedule row is claimed first with a compare-and-set on next_due_date,
// so a concurrent writer that already advanced it makes this call a no-op.
func (c *occurrenceCommitter) Commit(
	ctx context.Context,
	schedule *entity.RecurringSchedule,
	previousDueDate time.Time,
	txn *entity.Transaction,
) (bool, error) {
	inserted := false

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.RecurringScheduleModel{}).
			Where("id = ? AND next_due_date = ? AND is_active = ?", schedule.ID, previousDueDate, true).
			Updates(map[string]interface{}{
				"next_due_date":       schedule.NextDueDate,
				"last_generated_date": schedule.LastGeneratedDate,
				"is_active":           schedule.IsActive,
				"updated_at":          schedule.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrScheduleConflict
		}

		if txn == nil {
			return nil
		}

		result = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "occurrence_key"}},
			DoNothing: true,
		}).Create(model.TransactionFromEntity(txn))
		if result.Error != nil {
			return result.Error
		}
		inserted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	return inserted, nil
}
