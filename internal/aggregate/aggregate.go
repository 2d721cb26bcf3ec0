// Package aggregate derives all computed views from a transaction snapshot.
//
// Every function here is a pure function of its inputs: the current full
// transaction list plus, where relevant, a reference time. Nothing is cached
// between calls, so recomputing on every delivered snapshot always yields
// results identical to a from-scratch computation.
package aggregate

import (
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/budgetku/budget-tracker/internal/models"
)

// TotalIncome sums the amounts of all income transactions.
func TotalIncome(list []models.Transaction) decimal.Decimal {
	return sumByType(list, models.TypeIncome)
}

// TotalExpense sums the amounts of all expense transactions.
func TotalExpense(list []models.Transaction) decimal.Decimal {
	return sumByType(list, models.TypeExpense)
}

// TotalBalance is total income minus total expense.
func TotalBalance(list []models.Transaction) decimal.Decimal {
	return TotalIncome(list).Sub(TotalExpense(list))
}

// ExpenseBreakdown groups expense amounts by category. Categories with no
// expense transactions are absent from the map, not present with zero.
func ExpenseBreakdown(list []models.Transaction) map[string]decimal.Decimal {
	return breakdownByType(list, models.TypeExpense)
}

// IncomeBreakdown groups income amounts by category.
func IncomeBreakdown(list []models.Transaction) map[string]decimal.Decimal {
	return breakdownByType(list, models.TypeIncome)
}

// DailyExpense sums expense amounts dated within the local calendar day
// containing now, midnight to midnight inclusive.
func DailyExpense(list []models.Transaction, now time.Time) decimal.Decimal {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startMs := start.UnixMilli()
	endMs := start.AddDate(0, 0, 1).UnixMilli() - 1

	total := decimal.Zero
	for _, tx := range list {
		if tx.Type == models.TypeExpense && tx.Date >= startMs && tx.Date <= endMs {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

func sumByType(list []models.Transaction, typ models.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range list {
		if tx.Type == typ {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

func breakdownByType(list []models.Transaction, typ models.TransactionType) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range list {
		if tx.Type != typ {
			continue
		}
		if existing, ok := totals[tx.Category]; ok {
			totals[tx.Category] = existing.Add(tx.Amount)
		} else {
			totals[tx.Category] = tx.Amount
		}
	}
	return totals
}
