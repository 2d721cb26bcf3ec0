package budget

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/budgetku/budget-tracker/internal/aggregate"
	"gitlab.com/budgetku/budget-tracker/internal/logger"
	"gitlab.com/budgetku/budget-tracker/internal/models"
	"gitlab.com/budgetku/budget-tracker/internal/store"
)

// AlertTitle is the title of every persisted budget alert.
const AlertTitle = "Budget exceeded"

// Monitor checks spending against configured limits after each transaction
// write. It keeps no state between checks: the category total is recomputed
// from the authoritative post-write transaction set every time, so an
// over-budget category re-alerts on every further qualifying expense.
type Monitor struct {
	store    store.Store
	notifier Notifier
	now      func() time.Time
}

// NewMonitor creates a monitor. A nil notifier falls back to LogNotifier.
func NewMonitor(st store.Store, notifier Notifier) *Monitor {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Monitor{store: st, notifier: notifier, now: time.Now}
}

// CheckTransaction runs the threshold check for a just-added transaction.
// It must be called after the write has been persisted; deletions never
// trigger a check. Income never alerts.
func (m *Monitor) CheckTransaction(ctx context.Context, tx models.Transaction) error {
	if tx.Type != models.TypeExpense {
		return nil
	}

	budgets, err := m.store.Budgets(ctx, tx.UserID)
	if err != nil {
		return fmt.Errorf("failed to load budgets: %w", err)
	}
	limit, ok := budgets[tx.Category]
	if !ok || limit.IsZero() {
		return nil
	}

	list, err := m.store.Transactions(ctx, tx.UserID)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	newTotal := aggregate.ExpenseBreakdown(list)[tx.Category]
	if !newTotal.GreaterThan(limit) {
		return nil
	}

	message := fmt.Sprintf("Your %s spending of %s has exceeded the budget of %s.",
		tx.Category, newTotal.StringFixed(2), limit.StringFixed(2))

	notification := &models.Notification{
		UserID:  tx.UserID,
		Title:   AlertTitle,
		Message: message,
		Date:    m.now().UnixMilli(),
	}
	if err := m.store.SaveNotification(ctx, notification); err != nil {
		return fmt.Errorf("failed to persist budget alert: %w", err)
	}

	m.notifier.Show(ctx, AlertTitle, message)

	logger.Log.Info().
		Str("user_hash", logger.HashUserID(tx.UserID)).
		Str("category", tx.Category).
		Str("limit", limit.StringFixed(2)).
		Str("total", newTotal.StringFixed(2)).
		Msg("Budget alert raised")
	return nil
}
