package notify

import "context"

// NoopNotifier discards every message. Used when no channel is configured so
// callers never need a nil check.
type NoopNotifier struct{}

// NewNoopNotifier creates a notifier that does nothing
func NewNoopNotifier() Notifier {
	return &NoopNotifier{}
}

// Send discards the message
func (n *NoopNotifier) Send(ctx context.Context, message string) error {
	return nil
}
