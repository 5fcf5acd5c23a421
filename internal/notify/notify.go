package notify

import "context"

// Notifier delivers a rendered booking summary to an external channel.
// Implementations are best-effort: callers log failures and move on.
type Notifier interface {
	BookingCreated(ctx context.Context, text string) error
}

// Noop is used when no notification channel is configured.
type Noop struct{}

func (Noop) BookingCreated(ctx context.Context, text string) error {
	return nil
}
