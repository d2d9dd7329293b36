// Package push delivers reminder notifications.
package push

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/resend/resend-go/v2"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/integration/push/templates"
)

// ResendSender implements the adapter.PushSender interface by e-mailing the
// reminder through Resend. The target is the recipient address.
type ResendSender struct {
	client    *resend.Client
	renderer  *templates.Renderer
	fromName  string
	fromEmail string
}

// NewResendSender creates a new Resend-backed sender.
func NewResendSender(apiKey, fromName, fromEmail string, renderer *templates.Renderer) *ResendSender {
	return &ResendSender{
		client:    resend.NewClient(apiKey),
		renderer:  renderer,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// Send renders the reminder and sends it via Resend.
func (s *ResendSender) Send(ctx context.Context, message adapter.PushMessage) (*adapter.PushResult, error) {
	if strings.TrimSpace(message.Target) == "" {
		return nil, domainerror.NewPushError(
			domainerror.ErrCodeMissingPushTarget,
			"no delivery target configured",
			domainerror.ErrMissingPushTarget,
		)
	}

	html, text, err := s.renderer.RenderBillReminder(templates.BillReminderData{
		Title:        message.Title,
		Body:         message.Body,
		Amount:       message.Data["amount"],
		DueDate:      message.Data["dueDate"],
		Category:     message.Data["category"],
		DaysUntilDue: message.Data["daysUntilDue"],
	})
	if err != nil {
		return nil, domainerror.NewPushError(
			domainerror.ErrCodeInvalidPushTemplate,
			"failed to render reminder",
			err,
		)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail),
		To:      []string{message.Target},
		Subject: message.Title,
		Html:    html,
		Text:    text,
		Tags: []resend.Tag{
			{Name: "category", Value: "bill_reminder"},
		},
	}

	resp, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		if isPermanentError(err) {
			return nil, domainerror.NewPushError(
				domainerror.ErrCodePermanentPushFailure,
				"permanent delivery failure",
				err,
			)
		}
		return nil, domainerror.NewPushError(
			domainerror.ErrCodeTemporaryPushFailure,
			"temporary delivery failure",
			err,
		)
	}

	return &adapter.PushResult{
		ProviderID: resp.Id,
	}, nil
}

// isPermanentError reports provider errors that would fail again unchanged:
// 401, 403 and 422 responses. Rate limits and 5xx are temporary.
func isPermanentError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	permanentPatterns := []string{
		"401",
		"403",
		"422",
		"unauthorized",
		"forbidden",
		"validation",
		"invalid",
		"bad request",
	}

	for _, pattern := range permanentPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

// MockSender records notifications instead of delivering them.
type MockSender struct {
	mu         sync.Mutex
	Sent       []adapter.PushMessage
	ShouldFail bool
	FailError  error
}

// NewMockSender creates a new mock sender.
func NewMockSender() *MockSender {
	return &MockSender{
		Sent: make([]adapter.PushMessage, 0),
	}
}

// Send implements the adapter.PushSender interface for testing.
func (m *MockSender) Send(_ context.Context, message adapter.PushMessage) (*adapter.PushResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ShouldFail {
		return nil, domainerror.NewPushError(
			domainerror.ErrCodePushSendFailed,
			"mock delivery failure",
			m.FailError,
		)
	}

	m.Sent = append(m.Sent, message)

	return &adapter.PushResult{
		ProviderID: fmt.Sprintf("mock-%d", len(m.Sent)),
	}, nil
}

// Messages returns a copy of the recorded notifications.
func (m *MockSender) Messages() []adapter.PushMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]adapter.PushMessage(nil), m.Sent...)
}

// SetFailure configures the mock to fail with the given error.
func (m *MockSender) SetFailure(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ShouldFail = true
	m.FailError = err
}

// Reset clears all sent notifications and failure configuration.
func (m *MockSender) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = make([]adapter.PushMessage, 0)
	m.ShouldFail = false
	m.FailError = nil
}

// Ensure implementations satisfy interfaces.
var (
	_ adapter.PushSender = (*ResendSender)(nil)
	_ adapter.PushSender = (*MockSender)(nil)
)
