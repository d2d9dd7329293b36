package recurring

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/domain/valueobject"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

// newSchedule builds an active expense schedule due on next.
func newSchedule(cadence valueobject.Cadence, next time.Time) *entity.RecurringSchedule {
	s := entity.NewRecurringSchedule(
		uuid.New(),
		decimal.RequireFromString("15.99"),
		"Streaming",
		"Subscriptions",
		entity.TransactionTypeExpense,
		"checking",
		cadence,
		next,
		nil,
	)
	s.NextDueDate = next
	return s
}

// memoryStore implements the schedule repository, the transaction repository
// and the occurrence committer over maps.
type memoryStore struct {
	mu           sync.Mutex
	schedules    map[uuid.UUID]*entity.RecurringSchedule
	transactions map[string]*entity.Transaction
	commitErr    error
}

func newMemoryStore(schedules ...*entity.RecurringSchedule) *memoryStore {
	m := &memoryStore{
		schedules:    map[uuid.UUID]*entity.RecurringSchedule{},
		transactions: map[string]*entity.Transaction{},
	}
	for _, s := range schedules {
		m.schedules[s.ID] = s.Clone()
	}
	return m
}

func (m *memoryStore) Create(_ context.Context, s *entity.RecurringSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules[s.ID] = s.Clone()
	return nil
}

func (m *memoryStore) FindByID(_ context.Context, id uuid.UUID) (*entity.RecurringSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.schedules[id]
	if !ok {
		return nil, domainerror.ErrRecurringScheduleNotFound
	}
	return s.Clone(), nil
}

func (m *memoryStore) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.RecurringSchedule, error) {
	return m.filter(func(s *entity.RecurringSchedule) bool { return s.UserID == userID }), nil
}

func (m *memoryStore) FindActiveByUserID(_ context.Context, userID uuid.UUID) ([]*entity.RecurringSchedule, error) {
	return m.filter(func(s *entity.RecurringSchedule) bool { return s.UserID == userID && s.IsActive }), nil
}

func (m *memoryStore) FindAllActive(_ context.Context) ([]*entity.RecurringSchedule, error) {
	return m.filter(func(s *entity.RecurringSchedule) bool { return s.IsActive }), nil
}

func (m *memoryStore) Update(_ context.Context, s *entity.RecurringSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.schedules[s.ID]; !ok {
		return domainerror.ErrRecurringScheduleNotFound
	}
	m.schedules[s.ID] = s.Clone()
	return nil
}

func (m *memoryStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.schedules, id)
	return nil
}

func (m *memoryStore) Commit(
	_ context.Context,
	s *entity.RecurringSchedule,
	previousDueDate time.Time,
	txn *entity.Transaction,
) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.commitErr != nil {
		return false, m.commitErr
	}

	stored, ok := m.schedules[s.ID]
	if !ok || !stored.NextDueDate.Equal(previousDueDate) {
		return false, domainerror.ErrScheduleConflict
	}
	m.schedules[s.ID] = s.Clone()

	if txn == nil {
		return false, nil
	}
	if _, exists := m.transactions[*txn.OccurrenceKey]; exists {
		return false, nil
	}
	m.transactions[*txn.OccurrenceKey] = txn
	return true, nil
}

// transactionView exposes the stored transactions as a transaction repository.
type transactionView struct {
	*memoryStore
}

func (v transactionView) Create(_ context.Context, txn *entity.Transaction) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.transactions[*txn.OccurrenceKey] = txn
	return nil
}

func (v transactionView) ExistsByOccurrenceKey(_ context.Context, key string) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.transactions[key]
	return ok, nil
}

func (v transactionView) FindByRecurringSchedule(_ context.Context, scheduleID uuid.UUID) ([]*entity.Transaction, error) {
	m := v.memoryStore
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Transaction
	for _, t := range m.transactions {
		if t.RecurringScheduleID != nil && *t.RecurringScheduleID == scheduleID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *memoryStore) filter(keep func(*entity.RecurringSchedule) bool) []*entity.RecurringSchedule {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.RecurringSchedule
	for _, s := range m.schedules {
		if keep(s) {
			out = append(out, s.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

func (m *memoryStore) stored(id uuid.UUID) *entity.RecurringSchedule {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.schedules[id]
}
