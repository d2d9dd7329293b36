package db

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/config"
	"github.com/finance-tracker/recurring/internal/integration/persistence/model"
)

func TestNewConnection(t *testing.T) {
	t.Run("sqlite in memory", func(t *testing.T) {
		database, err := NewConnection(&config.DatabaseConfig{
			Driver:          DriverSQLite,
			URL:             fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
			MaxOpenConns:    5,
			MaxIdleConns:    1,
			ConnMaxLifetime: time.Minute,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer func() { _ = database.Close() }()

		if !database.HealthCheck() {
			t.Error("expected healthy database")
		}
		if err := database.AutoMigrate(model.AllModels()...); err != nil {
			t.Errorf("expected migrations to succeed, got %v", err)
		}
		if !database.DB().Migrator().HasTable("recurring_schedules") {
			t.Error("expected recurring_schedules table")
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		if _, err := NewConnection(&config.DatabaseConfig{Driver: "oracle"}); err == nil {
			t.Error("expected error for unsupported driver")
		}
	})
}
