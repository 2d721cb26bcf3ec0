package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/budgetku/budget-tracker/internal/models"
)

// TrendWindow is how far back the balance history and trend comparison reach.
const TrendWindow = 30 * 24 * time.Hour

// BalanceHistory returns the running-balance series for charting, scoped to
// roughly the last 30 days.
//
// The full list is sorted by date (stable, so equal-date entries keep their
// snapshot order) and folded into running balances. The returned slice starts
// one point before the first transaction inside the window, anchoring the
// chart at the balance just prior to the window. A list whose transactions are
// all older than the window yields a single point at the current balance; an
// empty list yields an empty history.
func BalanceHistory(list []models.Transaction, now time.Time) []decimal.Decimal {
	if len(list) == 0 {
		return nil
	}

	sorted := sortedByDate(list)
	balances := runningBalances(sorted)

	cutoff := now.Add(-TrendWindow).UnixMilli()
	first := firstRecentIndex(sorted, cutoff)
	if first < 0 {
		return []decimal.Decimal{balances[len(balances)-1]}
	}
	start := first - 1
	if start < 0 {
		start = 0
	}
	out := make([]decimal.Decimal, len(balances)-start)
	copy(out, balances[start:])
	return out
}

// TrendPercent compares the current balance against the balance as of 30
// days ago, as a percentage.
//
// With a zero past balance the trend is 100 when the current balance is
// positive and 0 otherwise, which also covers the empty list.
func TrendPercent(list []models.Transaction, now time.Time) float64 {
	cutoff := now.Add(-TrendWindow).UnixMilli()

	past := decimal.Zero
	current := decimal.Zero
	for _, tx := range list {
		signed := tx.Signed()
		current = current.Add(signed)
		if tx.Date < cutoff {
			past = past.Add(signed)
		}
	}

	if past.IsZero() {
		if current.IsPositive() {
			return 100
		}
		return 0
	}
	return current.Sub(past).Div(past).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

func sortedByDate(list []models.Transaction) []models.Transaction {
	sorted := make([]models.Transaction, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return sorted
}

func runningBalances(sorted []models.Transaction) []decimal.Decimal {
	balances := make([]decimal.Decimal, len(sorted))
	running := decimal.Zero
	for i, tx := range sorted {
		running = running.Add(tx.Signed())
		balances[i] = running
	}
	return balances
}

// firstRecentIndex returns the smallest index in the date-sorted list whose
// date is on or after cutoff, or -1 when none is.
func firstRecentIndex(sorted []models.Transaction, cutoff int64) int {
	for i, tx := range sorted {
		if tx.Date >= cutoff {
			return i
		}
	}
	return -1
}
