//go:build ignore
// +build ignore

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/budgetku/budget-tracker/internal/aggregate"
	"gitlab.com/budgetku/budget-tracker/internal/chart"
	"gitlab.com/budgetku/budget-tracker/internal/models"
)

func main() {
	now := time.Now()
	day := func(daysAgo int) int64 {
		return now.AddDate(0, 0, -daysAgo).UnixMilli()
	}

	transactions := []models.Transaction{
		{Amount: decimal.NewFromInt(3000), Type: models.TypeIncome, Category: "Salary", Date: day(40)},
		{Amount: decimal.NewFromFloat(150.50), Type: models.TypeExpense, Category: "Food", Date: day(25)},
		{Amount: decimal.NewFromFloat(60.00), Type: models.TypeExpense, Category: "Transport", Date: day(18)},
		{Amount: decimal.NewFromFloat(130.50), Type: models.TypeExpense, Category: "Social Life", Date: day(10)},
		{Amount: decimal.NewFromFloat(120.00), Type: models.TypeExpense, Category: "Household", Date: day(3)},
	}

	history := aggregate.BalanceHistory(transactions, now)
	lineData, err := chart.BalanceHistory(history, "Balance - Last 30 Days")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile("balance.png", lineData, 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	pieData, err := chart.Breakdown(aggregate.ExpenseBreakdown(transactions), "Expenses by Category")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile("breakdown.png", pieData, 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✓ Created balance.png and breakdown.png")
}
