package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisReminderLedger(t *testing.T) {
	ctx := context.Background()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ledger := NewRedisReminderLedger(client, 8*24*time.Hour)
	key := "reminder:abc:2024-05-13:3"

	t.Run("first mark is new", func(t *testing.T) {
		isNew, err := ledger.MarkIfAbsent(ctx, key)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !isNew {
			t.Error("expected key to be new")
		}
	})

	t.Run("second mark is not new", func(t *testing.T) {
		isNew, err := ledger.MarkIfAbsent(ctx, key)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if isNew {
			t.Error("expected key to already exist")
		}
	})

	t.Run("key carries the ttl", func(t *testing.T) {
		if ttl := server.TTL(key); ttl != 8*24*time.Hour {
			t.Errorf("expected ttl 192h, got %s", ttl)
		}
	})

	t.Run("key is new again after expiry", func(t *testing.T) {
		server.FastForward(9 * 24 * time.Hour)

		isNew, err := ledger.MarkIfAbsent(ctx, key)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !isNew {
			t.Error("expected expired key to be new")
		}
	})

	t.Run("unreachable redis returns error", func(t *testing.T) {
		server.Close()

		if _, err := ledger.MarkIfAbsent(ctx, "reminder:other"); err == nil {
			t.Error("expected error")
		}
	})
}

func TestMemoryReminderLedger(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryReminderLedger(time.Hour)
	now := time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC)
	ledger.now = func() time.Time { return now }

	if isNew, _ := ledger.MarkIfAbsent(ctx, "k"); !isNew {
		t.Error("expected first mark to be new")
	}
	if isNew, _ := ledger.MarkIfAbsent(ctx, "k"); isNew {
		t.Error("expected second mark to be a repeat")
	}

	now = now.Add(2 * time.Hour)
	if isNew, _ := ledger.MarkIfAbsent(ctx, "k"); !isNew {
		t.Error("expected mark after expiry to be new")
	}
}
