// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// PushMessage represents a notification handed to the delivery transport.
type PushMessage struct {
	Target string
	Title  string
	Body   string
	Data   map[string]string
}

// PushResult represents the transport's acknowledgement.
type PushResult struct {
	ProviderID string
}

// PushSender defines the interface for delivering notifications via an external provider.
type PushSender interface {
	// Send delivers one notification. Delivery is best effort.
	Send(ctx context.Context, message PushMessage) (*PushResult, error)
}
