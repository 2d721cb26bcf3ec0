package gateway

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/budgetku/budget-tracker/internal/budget"
	"gitlab.com/budgetku/budget-tracker/internal/models"
	"gitlab.com/budgetku/budget-tracker/internal/settings"
	"gitlab.com/budgetku/budget-tracker/internal/store"
)

type countingNotifier struct {
	mu    sync.Mutex
	count int
}

func (c *countingNotifier) Show(_ context.Context, _, _ string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
}

func (c *countingNotifier) shown() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

func setupGateway(t *testing.T) (*Gateway, *store.Memory, *countingNotifier) {
	t.Helper()
	st := store.NewMemory()
	set, err := settings.Open(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { set.Close() })

	notifier := &countingNotifier{}
	return New(st, set, budget.NewMonitor(st, notifier)), st, notifier
}

func TestAddTransaction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("persists with assigned id and date", func(t *testing.T) {
		t.Parallel()
		g, st, _ := setupGateway(t)

		tx, err := g.AddTransaction(ctx, "u1", "Groceries", decimal.NewFromInt(120), models.TypeExpense, "Food")
		require.NoError(t, err)
		require.NotEmpty(t, tx.ID)
		require.NotZero(t, tx.Date)

		list, err := st.Transactions(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, tx.ID, list[0].ID)
	})

	t.Run("rejects empty user id before any write", func(t *testing.T) {
		t.Parallel()
		g, st, _ := setupGateway(t)

		_, err := g.AddTransaction(ctx, "", "Groceries", decimal.NewFromInt(120), models.TypeExpense, "Food")
		require.ErrorIs(t, err, ErrEmptyUserID)

		list, err := st.Transactions(ctx, "u1")
		require.NoError(t, err)
		require.Empty(t, list)
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		t.Parallel()
		g, _, _ := setupGateway(t)

		_, err := g.AddTransaction(ctx, "u1", "", decimal.NewFromInt(-5), models.TypeExpense, "Food")
		require.ErrorIs(t, err, ErrNegativeAmount)
	})

	t.Run("rejects unknown transaction types", func(t *testing.T) {
		t.Parallel()
		g, _, _ := setupGateway(t)

		_, err := g.AddTransaction(ctx, "u1", "", decimal.NewFromInt(5), "TRANSFER", "Food")
		require.ErrorIs(t, err, ErrInvalidType)
	})

	t.Run("empty title is allowed", func(t *testing.T) {
		t.Parallel()
		g, _, _ := setupGateway(t)

		_, err := g.AddTransaction(ctx, "u1", "", decimal.NewFromInt(5), models.TypeExpense, "Food")
		require.NoError(t, err)
	})

	t.Run("unknown category is stored verbatim", func(t *testing.T) {
		t.Parallel()
		g, st, _ := setupGateway(t)

		_, err := g.AddTransaction(ctx, "u1", "", decimal.NewFromInt(5), models.TypeExpense, "Crypto")
		require.NoError(t, err)

		list, err := st.Transactions(ctx, "u1")
		require.NoError(t, err)
		require.Equal(t, "Crypto", list[0].Category)
	})
}

func TestAddTransactionTriggersBudgetCheck(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	g, st, notifier := setupGateway(t)

	require.NoError(t, st.SetBudget(ctx, "u1", "Food", decimal.NewFromInt(50000)))

	_, err := g.AddTransaction(ctx, "u1", "", decimal.NewFromInt(40000), models.TypeExpense, "Food")
	require.NoError(t, err)
	require.Zero(t, notifier.shown())

	_, err = g.AddTransaction(ctx, "u1", "", decimal.NewFromInt(20000), models.TypeExpense, "Food")
	require.NoError(t, err)
	require.Equal(t, 1, notifier.shown())
}

func TestDeleteTransaction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("removes the record", func(t *testing.T) {
		t.Parallel()
		g, st, _ := setupGateway(t)

		tx, err := g.AddTransaction(ctx, "u1", "", decimal.NewFromInt(10), models.TypeExpense, "Food")
		require.NoError(t, err)
		require.NoError(t, g.DeleteTransaction(ctx, tx))

		list, err := st.Transactions(ctx, "u1")
		require.NoError(t, err)
		require.Empty(t, list)
	})

	t.Run("absent record is a no-op", func(t *testing.T) {
		t.Parallel()
		g, _, _ := setupGateway(t)
		require.NoError(t, g.DeleteTransaction(ctx, models.Transaction{UserID: "u1", ID: "nope"}))
	})

	t.Run("never triggers a budget check", func(t *testing.T) {
		t.Parallel()
		g, st, notifier := setupGateway(t)

		require.NoError(t, st.SetBudget(ctx, "u1", "Food", decimal.NewFromInt(100)))
		tx, err := g.AddTransaction(ctx, "u1", "", decimal.NewFromInt(500), models.TypeExpense, "Food")
		require.NoError(t, err)
		require.Equal(t, 1, notifier.shown())

		require.NoError(t, g.DeleteTransaction(ctx, tx))
		require.Equal(t, 1, notifier.shown())
	})
}

func TestSetBudget(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("stores the limit", func(t *testing.T) {
		t.Parallel()
		g, st, _ := setupGateway(t)

		require.NoError(t, g.SetBudget(ctx, "u1", "Food", decimal.NewFromInt(300)))
		budgets, err := st.Budgets(ctx, "u1")
		require.NoError(t, err)
		require.True(t, decimal.NewFromInt(300).Equal(budgets["Food"]))
	})

	t.Run("rejects negative limits", func(t *testing.T) {
		t.Parallel()
		g, _, _ := setupGateway(t)
		require.ErrorIs(t, g.SetBudget(ctx, "u1", "Food", decimal.NewFromInt(-1)), ErrNegativeAmount)
	})

	t.Run("zero limit is stored, distinct from absent", func(t *testing.T) {
		t.Parallel()
		g, st, _ := setupGateway(t)

		require.NoError(t, g.SetBudget(ctx, "u1", "Food", decimal.Zero))
		budgets, err := st.Budgets(ctx, "u1")
		require.NoError(t, err)
		limit, ok := budgets["Food"]
		require.True(t, ok)
		require.True(t, limit.IsZero())
		_, ok = budgets["Transport"]
		require.False(t, ok)
	})
}

func TestSetDailyLimit(t *testing.T) {
	t.Parallel()

	g, _, _ := setupGateway(t)
	require.NoError(t, g.SetDailyLimit("u1", decimal.NewFromInt(750)))
	require.ErrorIs(t, g.SetDailyLimit("u1", decimal.NewFromInt(-10)), ErrNegativeAmount)
}
