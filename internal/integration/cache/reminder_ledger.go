// Package cache implements the reminder ledger.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/recurring/internal/application/adapter"
)

// RedisReminderLedger stores notified reminder keys in Redis with a TTL.
type RedisReminderLedger struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisReminderLedger creates a new RedisReminderLedger.
func NewRedisReminderLedger(client *redis.Client, ttl time.Duration) *RedisReminderLedger {
	return &RedisReminderLedger{
		client: client,
		ttl:    ttl,
	}
}

// MarkIfAbsent sets key with SETNX and reports whether it was newly set.
func (l *RedisReminderLedger) MarkIfAbsent(ctx context.Context, key string) (bool, error) {
	return l.client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), l.ttl).Result()
}

// MemoryReminderLedger keeps notified reminder keys in process memory.
// Entries expire after the TTL; the ledger is lost on restart.
type MemoryReminderLedger struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]time.Time
}

// NewMemoryReminderLedger creates a new MemoryReminderLedger.
func NewMemoryReminderLedger(ttl time.Duration) *MemoryReminderLedger {
	return &MemoryReminderLedger{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]time.Time),
	}
}

// MarkIfAbsent records key and reports whether it was newly recorded.
func (l *MemoryReminderLedger) MarkIfAbsent(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, expiresAt := range l.entries {
		if !now.Before(expiresAt) {
			delete(l.entries, k)
		}
	}

	if _, exists := l.entries[key]; exists {
		return false, nil
	}
	l.entries[key] = now.Add(l.ttl)
	return true, nil
}

// Ensure implementations satisfy the interface.
var (
	_ adapter.ReminderLedger = (*RedisReminderLedger)(nil)
	_ adapter.ReminderLedger = (*MemoryReminderLedger)(nil)
)
