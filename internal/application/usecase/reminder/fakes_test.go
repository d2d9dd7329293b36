package reminder

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
)

type scheduleStub struct {
	schedules []*entity.RecurringSchedule
	err       error
}

func (s *scheduleStub) Create(context.Context, *entity.RecurringSchedule) error { return nil }

func (s *scheduleStub) FindByID(context.Context, uuid.UUID) (*entity.RecurringSchedule, error) {
	return nil, domainerror.ErrRecurringScheduleNotFound
}

func (s *scheduleStub) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringSchedule, error) {
	return s.FindActiveByUserID(ctx, userID)
}

func (s *scheduleStub) FindActiveByUserID(_ context.Context, userID uuid.UUID) ([]*entity.RecurringSchedule, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.RecurringSchedule
	for _, sc := range s.schedules {
		if sc.UserID == userID && sc.IsActive {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (s *scheduleStub) FindAllActive(context.Context) ([]*entity.RecurringSchedule, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.RecurringSchedule
	for _, sc := range s.schedules {
		if sc.IsActive {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (s *scheduleStub) Update(context.Context, *entity.RecurringSchedule) error { return nil }

func (s *scheduleStub) Delete(context.Context, uuid.UUID) error { return nil }

type configStub struct {
	mu      sync.Mutex
	configs map[uuid.UUID]*entity.ReminderConfig
}

func newConfigStub(configs ...*entity.ReminderConfig) *configStub {
	c := &configStub{configs: map[uuid.UUID]*entity.ReminderConfig{}}
	for _, cfg := range configs {
		c.configs[cfg.UserID] = cfg
	}
	return c
}

func (c *configStub) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.ReminderConfig, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cfg, ok := c.configs[userID]
	if !ok {
		return nil, domainerror.ErrReminderConfigNotFound
	}
	copied := *cfg
	return &copied, nil
}

func (c *configStub) Save(_ context.Context, cfg *entity.ReminderConfig) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *cfg
	c.configs[cfg.UserID] = &copied
	return nil
}

type deliveryStub struct {
	mu         sync.Mutex
	deliveries []*entity.ReminderDelivery
	lastLimit  int
}

func (d *deliveryStub) Create(_ context.Context, delivery *entity.ReminderDelivery) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deliveries = append(d.deliveries, delivery)
	return nil
}

func (d *deliveryStub) FindByUserID(_ context.Context, userID uuid.UUID, limit int) ([]*entity.ReminderDelivery, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastLimit = limit
	var out []*entity.ReminderDelivery
	for _, del := range d.deliveries {
		if del.UserID == userID {
			out = append(out, del)
		}
	}
	return out, nil
}

type ledgerStub struct {
	mu   sync.Mutex
	keys map[string]bool
	err  error
}

func (l *ledgerStub) MarkIfAbsent(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return false, l.err
	}
	if l.keys == nil {
		l.keys = map[string]bool{}
	}
	if l.keys[key] {
		return false, nil
	}
	l.keys[key] = true
	return true, nil
}

type senderStub struct {
	mu   sync.Mutex
	sent []adapter.PushMessage
	err  error
}

func (s *senderStub) Send(_ context.Context, msg adapter.PushMessage) (*adapter.PushResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.sent = append(s.sent, msg)
	return &adapter.PushResult{ProviderID: "msg-" + msg.Data["scheduleId"]}, nil
}

var errSendFailed = errors.New("provider rejected message")
