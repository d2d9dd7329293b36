// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/finance-tracker/recurring/config"
	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/application/usecase/recurring"
	"github.com/finance-tracker/recurring/internal/application/usecase/reminder"
	"github.com/finance-tracker/recurring/internal/infra/cache"
	"github.com/finance-tracker/recurring/internal/infra/server/router"
	"github.com/finance-tracker/recurring/internal/integration/adapters"
	reminderledger "github.com/finance-tracker/recurring/internal/integration/cache"
	"github.com/finance-tracker/recurring/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/recurring/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/recurring/internal/integration/persistence"
	"github.com/finance-tracker/recurring/internal/integration/scheduler"
)

// Injector holds all application dependencies.
type Injector struct {
	Config             *config.Config
	DB                 *gorm.DB
	Router             *router.Router
	DueWorker          *scheduler.DueWorker
	ReminderWorker     *scheduler.ReminderWorker
	LimiterCleanup     *scheduler.CleanupWorker
	TriggerRateLimiter *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisConn may be nil, in which case reminders are deduplicated in process.
func NewInjector(
	cfg *config.Config,
	db *gorm.DB,
	redisConn *cache.Redis,
	sender adapter.PushSender,
) (*Injector, error) {
	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler timezone %q: %w", cfg.Scheduler.Timezone, err)
	}

	// Create repositories
	scheduleRepo := persistence.NewRecurringScheduleRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	committer := persistence.NewOccurrenceCommitter(db)
	configRepo := persistence.NewReminderConfigRepository(db)
	deliveryRepo := persistence.NewReminderDeliveryRepository(db)

	// Create adapters/services
	var ledger adapter.ReminderLedger
	if redisConn != nil {
		ledger = reminderledger.NewRedisReminderLedger(redisConn.Client(), cfg.Scheduler.ReminderLedgerTTL)
	} else {
		ledger = reminderledger.NewMemoryReminderLedger(cfg.Scheduler.ReminderLedgerTTL)
	}
	tokenValidator := adapters.NewTokenValidator(cfg.JWT.Secret, cfg.JWT.Issuer)

	// Create recurring use cases
	listSchedulesUseCase := recurring.NewListSchedulesUseCase(scheduleRepo)
	createScheduleUseCase := recurring.NewCreateScheduleUseCase(scheduleRepo)
	getScheduleUseCase := recurring.NewGetScheduleUseCase(scheduleRepo)
	updateScheduleUseCase := recurring.NewUpdateScheduleUseCase(scheduleRepo)
	setScheduleActiveUseCase := recurring.NewSetScheduleActiveUseCase(scheduleRepo)
	deleteScheduleUseCase := recurring.NewDeleteScheduleUseCase(scheduleRepo)
	listUpcomingUseCase := recurring.NewListUpcomingUseCase(scheduleRepo).InLocation(loc)
	applyDueProcessingUseCase := recurring.NewApplyDueProcessingUseCase(scheduleRepo, committer).InLocation(loc)
	listScheduleTransactionsUseCase := recurring.NewListScheduleTransactionsUseCase(scheduleRepo, transactionRepo)

	// Create reminder use cases
	getConfigUseCase := reminder.NewGetConfigUseCase(configRepo)
	updateConfigUseCase := reminder.NewUpdateConfigUseCase(configRepo)
	checkRemindersUseCase := reminder.NewCheckRemindersUseCase(scheduleRepo, configRepo, deliveryRepo, ledger, sender).InLocation(loc)
	listDeliveriesUseCase := reminder.NewListDeliveriesUseCase(deliveryRepo)

	// Create workers, both on the same calendar
	dueWorker := scheduler.NewDueWorker(applyDueProcessingUseCase, cfg.Scheduler.DueCheckInterval, loc)
	reminderWorker, err := scheduler.NewReminderWorker(
		checkRemindersUseCase,
		cfg.Scheduler.ReminderSchedule,
		loc,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder worker: %w", err)
	}

	// Create controllers
	var redisHealthChecker func() bool
	if redisConn != nil {
		redisHealthChecker = redisConn.HealthCheck
	}
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, redisHealthChecker)

	recurringController := controller.NewRecurringController(
		listSchedulesUseCase,
		createScheduleUseCase,
		getScheduleUseCase,
		updateScheduleUseCase,
		setScheduleActiveUseCase,
		deleteScheduleUseCase,
		listUpcomingUseCase,
		applyDueProcessingUseCase,
		listScheduleTransactionsUseCase,
	)

	reminderController := controller.NewReminderController(
		getConfigUseCase,
		updateConfigUseCase,
		checkRemindersUseCase,
		listDeliveriesUseCase,
	)

	// Create middleware
	triggerRateLimiter := middleware.NewRateLimiter(cfg.RateLimit.TriggersPerMinute, cfg.RateLimit.Burst)
	authMiddleware := middleware.NewAuthMiddleware(tokenValidator)

	cleanupInterval := cfg.RateLimit.CleanupInterval
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}
	limiterCleanup := scheduler.NewCleanupWorker("trigger-rate-limiter", triggerRateLimiter, cleanupInterval)

	// Create router
	r := router.NewRouter(healthController, recurringController, reminderController, triggerRateLimiter, authMiddleware)

	return &Injector{
		Config:             cfg,
		DB:                 db,
		Router:             r,
		DueWorker:          dueWorker,
		ReminderWorker:     reminderWorker,
		LimiterCleanup:     limiterCleanup,
		TriggerRateLimiter: triggerRateLimiter,
	}, nil
}
