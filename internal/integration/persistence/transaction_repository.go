// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
// Returns domainerror.ErrDuplicateOccurrence when the occurrence key is taken.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return domainerror.ErrDuplicateOccurrence
		}
		return result.Error
	}
	return nil
}

// FindByRecurringSchedule retrieves the transactions generated by a schedule, newest first.
func (r *transactionRepository) FindByRecurringSchedule(ctx context.Context, scheduleID uuid.UUID) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("recurring_schedule_id = ?", scheduleID).
		Order("date DESC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntity()
	}
	return transactions, nil
}

// ExistsByOccurrenceKey checks if an occurrence has already been recorded.
func (r *transactionRepository) ExistsByOccurrenceKey(ctx context.Context, key string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Unscoped().
		Where("occurrence_key = ?", key).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// isDuplicateKey recognises unique violations from both supported drivers,
// whether or not gorm translated them.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
