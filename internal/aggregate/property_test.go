package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/budgetku/budget-tracker/internal/models"
	"pgregory.net/rapid"
)

// transactionGen draws arbitrary transactions spread around the trend window.
func transactionGen(now time.Time) *rapid.Generator[models.Transaction] {
	return rapid.Custom(func(t *rapid.T) models.Transaction {
		typ := rapid.SampledFrom([]models.TransactionType{
			models.TypeIncome, models.TypeExpense,
		}).Draw(t, "type")

		categories := models.ExpenseCategories
		if typ == models.TypeIncome {
			categories = models.IncomeCategories
		}

		cents := rapid.Int64Range(0, 10_000_000).Draw(t, "cents")
		offsetDays := rapid.IntRange(-90, 1).Draw(t, "offsetDays")

		return models.Transaction{
			UserID:   "u1",
			Amount:   decimal.New(cents, -2),
			Type:     typ,
			Category: rapid.SampledFrom(categories).Draw(t, "category"),
			Date:     now.AddDate(0, 0, offsetDays).UnixMilli(),
		}
	})
}

func TestBalanceIdentity(t *testing.T) {
	now := time.Now()
	rapid.Check(t, func(t *rapid.T) {
		list := rapid.SliceOfN(transactionGen(now), 0, 50).Draw(t, "list")
		require.True(t, TotalBalance(list).Equal(TotalIncome(list).Sub(TotalExpense(list))))
	})
}

func TestBreakdownSumsMatchTotals(t *testing.T) {
	now := time.Now()
	rapid.Check(t, func(t *rapid.T) {
		list := rapid.SliceOfN(transactionGen(now), 0, 50).Draw(t, "list")

		expenseSum := decimal.Zero
		for _, v := range ExpenseBreakdown(list) {
			expenseSum = expenseSum.Add(v)
		}
		incomeSum := decimal.Zero
		for _, v := range IncomeBreakdown(list) {
			incomeSum = incomeSum.Add(v)
		}

		require.True(t, expenseSum.Equal(TotalExpense(list)))
		require.True(t, incomeSum.Equal(TotalIncome(list)))
	})
}

func TestDerivedViewsAreIdempotent(t *testing.T) {
	now := time.Now()
	rapid.Check(t, func(t *rapid.T) {
		list := rapid.SliceOfN(transactionGen(now), 0, 50).Draw(t, "list")

		require.True(t, TotalBalance(list).Equal(TotalBalance(list)))
		require.Equal(t, TrendPercent(list, now), TrendPercent(list, now))

		h1 := BalanceHistory(list, now)
		h2 := BalanceHistory(list, now)
		require.Len(t, h2, len(h1))
		for i := range h1 {
			require.True(t, h1[i].Equal(h2[i]))
		}
	})
}

func TestHistoryEndsAtCurrentBalance(t *testing.T) {
	now := time.Now()
	rapid.Check(t, func(t *rapid.T) {
		list := rapid.SliceOfN(transactionGen(now), 1, 50).Draw(t, "list")

		history := BalanceHistory(list, now)
		require.NotEmpty(t, history)
		require.True(t, history[len(history)-1].Equal(TotalBalance(list)))
	})
}
