// Package models defines the domain entities for the budget tracker.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

// Valid reports whether the type is one of the known values.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single income or expense record.
//
// Amount is always a non-negative magnitude; the sign is carried by Type.
// ID is assigned by the store on first persist and is empty before that.
// Date is milliseconds since the Unix epoch.
type Transaction struct {
	ID       string
	UserID   string
	Title    string
	Amount   decimal.Decimal
	Type     TransactionType
	Category string
	Date     int64
}

// Signed returns the amount with the sign implied by the transaction type:
// positive for income, negative for expense.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Time converts the epoch-millisecond date to a time.Time.
func (t Transaction) Time() time.Time {
	return time.UnixMilli(t.Date)
}

// Notification is a persisted budget alert. Notifications are created only
// by the budget threshold monitor, never directly by callers.
type Notification struct {
	ID      string
	UserID  string
	Title   string
	Message string
	Date    int64
	IsRead  bool
}
