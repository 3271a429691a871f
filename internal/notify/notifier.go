// Package notify delivers operational notifications over the channels
// configured at startup. Channels are independent; a message is considered
// delivered when at least one channel accepts it.
package notify

import "context"

// Notifier sends a plain-text message over one channel
type Notifier interface {
	Send(ctx context.Context, message string) error
}
