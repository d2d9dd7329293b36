package push

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
)

// LogSender writes reminders to the structured log instead of delivering them.
// It is used when no push provider is configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a sender that logs through logger, or slog.Default when nil.
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

// Send implements the adapter.PushSender interface.
func (s *LogSender) Send(ctx context.Context, message adapter.PushMessage) (*adapter.PushResult, error) {
	s.logger.InfoContext(ctx, "Reminder notification",
		"target", message.Target,
		"title", message.Title,
		"body", message.Body,
		"scheduleID", message.Data["scheduleId"],
		"dueDate", message.Data["dueDate"],
	)
	return &adapter.PushResult{ProviderID: "log-" + uuid.NewString()}, nil
}

var _ adapter.PushSender = (*LogSender)(nil)
