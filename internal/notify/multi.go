package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// MultiNotifier fans a message out to several channels. Delivery succeeds if
// at least one channel accepts the message; individual failures are logged.
type MultiNotifier struct {
	notifiers []Notifier
	logger    *slog.Logger
}

// NewMultiNotifier creates a notifier that fans out to all given channels
func NewMultiNotifier(logger *slog.Logger, notifiers ...Notifier) Notifier {
	return &MultiNotifier{
		notifiers: notifiers,
		logger:    logger,
	}
}

// Send delivers the message to every channel
func (n *MultiNotifier) Send(ctx context.Context, message string) error {
	if len(n.notifiers) == 0 {
		return nil
	}

	successCount := 0
	var failures []string

	for _, notifier := range n.notifiers {
		if err := notifier.Send(ctx, message); err != nil {
			n.logger.Error("notifier failed", "error", err)
			failures = append(failures, err.Error())
			continue
		}
		successCount++
	}

	if successCount == 0 && len(failures) > 0 {
		return fmt.Errorf("all notifiers failed: %s", strings.Join(failures, ", "))
	}
	return nil
}
