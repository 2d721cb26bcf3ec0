// Package budget watches spending against configured per-category limits and
// raises alerts when a newly added expense pushes a category over its limit.
package budget

import (
	"context"

	"gitlab.com/budgetku/budget-tracker/internal/logger"
)

// Notifier delivers a system-level alert. Delivery is fire-and-forget,
// best-effort; a failed delivery never fails the write that triggered it.
type Notifier interface {
	Show(ctx context.Context, title, message string)
}

// LogNotifier writes alerts to the application log. It is the fallback when
// no external delivery channel is configured.
type LogNotifier struct{}

// Show implements Notifier.
func (LogNotifier) Show(_ context.Context, title, message string) {
	logger.Log.Warn().Str("title", title).Msg(message)
}
