// Package recurring contains recurring schedule use cases.
package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
)

// ListScheduleTransactionsInput represents the input for listing generated transactions.
type ListScheduleTransactionsInput struct {
	ScheduleID uuid.UUID
	UserID     uuid.UUID
}

// ListScheduleTransactionsOutput represents the generated transaction history of a schedule.
type ListScheduleTransactionsOutput struct {
	Transactions []*entity.Transaction
}

// ListScheduleTransactionsUseCase lists the transactions a schedule has generated.
type ListScheduleTransactionsUseCase struct {
	scheduleRepo    adapter.RecurringScheduleRepository
	transactionRepo adapter.TransactionRepository
}

// NewListScheduleTransactionsUseCase creates a new ListScheduleTransactionsUseCase instance.
func NewListScheduleTransactionsUseCase(
	scheduleRepo adapter.RecurringScheduleRepository,
	transactionRepo adapter.TransactionRepository,
) *ListScheduleTransactionsUseCase {
	return &ListScheduleTransactionsUseCase{
		scheduleRepo:    scheduleRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute lists the history after checking ownership.
func (uc *ListScheduleTransactionsUseCase) Execute(
	ctx context.Context,
	input ListScheduleTransactionsInput,
) (*ListScheduleTransactionsOutput, error) {
	if _, err := findOwnedSchedule(ctx, uc.scheduleRepo, input.ScheduleID, input.UserID); err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.FindByRecurringSchedule(ctx, input.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule transactions: %w", err)
	}
	if transactions == nil {
		transactions = []*entity.Transaction{}
	}

	return &ListScheduleTransactionsOutput{
		Transactions: transactions,
	}, nil
}
