package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestTransactionType(t *testing.T) {
	t.Parallel()

	t.Run("income and expense are valid", func(t *testing.T) {
		t.Parallel()
		require.True(t, TypeIncome.Valid())
		require.True(t, TypeExpense.Valid())
	})

	t.Run("other values are invalid", func(t *testing.T) {
		t.Parallel()
		require.False(t, TransactionType("").Valid())
		require.False(t, TransactionType("TRANSFER").Valid())
	})
}

func TestTransactionSigned(t *testing.T) {
	t.Parallel()

	t.Run("income keeps positive sign", func(t *testing.T) {
		t.Parallel()
		tx := Transaction{Amount: decimal.NewFromInt(150), Type: TypeIncome}
		require.True(t, decimal.NewFromInt(150).Equal(tx.Signed()))
	})

	t.Run("expense is negated", func(t *testing.T) {
		t.Parallel()
		tx := Transaction{Amount: decimal.NewFromInt(150), Type: TypeExpense}
		require.True(t, decimal.NewFromInt(-150).Equal(tx.Signed()))
	})

	t.Run("zero amount stays zero either way", func(t *testing.T) {
		t.Parallel()
		in := Transaction{Amount: decimal.Zero, Type: TypeIncome}
		out := Transaction{Amount: decimal.Zero, Type: TypeExpense}
		require.True(t, in.Signed().IsZero())
		require.True(t, out.Signed().IsZero())
	})
}

func TestTransactionTime(t *testing.T) {
	t.Parallel()

	now := time.Now().Truncate(time.Millisecond)
	tx := Transaction{Date: now.UnixMilli()}
	require.True(t, now.Equal(tx.Time()))
}

func TestDisplayCategory(t *testing.T) {
	t.Parallel()

	t.Run("known expense category maps to itself", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "Food", DisplayCategory("Food"))
		require.Equal(t, "Social Life", DisplayCategory("Social Life"))
	})

	t.Run("known income category maps to itself", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "Salary", DisplayCategory("Salary"))
		require.Equal(t, "Petty cash", DisplayCategory("Petty cash"))
	})

	t.Run("unknown category falls back to Other", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, CategoryOther, DisplayCategory("Crypto"))
		require.Equal(t, CategoryOther, DisplayCategory(""))
	})

	t.Run("fallback does not rewrite the stored value", func(t *testing.T) {
		t.Parallel()
		tx := Transaction{Category: "Crypto"}
		require.Equal(t, "Crypto", tx.Category)
		require.Equal(t, CategoryOther, DisplayCategory(tx.Category))
	})
}

func TestKnownCategory(t *testing.T) {
	t.Parallel()

	for _, c := range ExpenseCategories {
		require.True(t, KnownCategory(c), c)
	}
	for _, c := range IncomeCategories {
		require.True(t, KnownCategory(c), c)
	}
	require.False(t, KnownCategory("Lottery"))
}
