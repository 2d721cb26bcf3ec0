package chart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestBalanceHistory(t *testing.T) {
	tests := []struct {
		name        string
		history     []decimal.Decimal
		expectError bool
	}{
		{
			name: "renders a multi-point series",
			history: []decimal.Decimal{
				decimal.NewFromInt(100),
				decimal.NewFromInt(70),
				decimal.NewFromInt(120),
			},
		},
		{
			name:    "renders a flat single point",
			history: []decimal.Decimal{decimal.NewFromInt(60)},
		},
		{
			name:        "rejects empty history",
			history:     nil,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			png, err := BalanceHistory(tt.history, "Balance Trend")
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, png)
			// PNG magic bytes.
			require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
		})
	}
}

func TestBreakdown(t *testing.T) {
	tests := []struct {
		name        string
		breakdown   map[string]decimal.Decimal
		expectError bool
	}{
		{
			name: "renders multiple categories",
			breakdown: map[string]decimal.Decimal{
				"Food":      decimal.NewFromInt(200),
				"Transport": decimal.NewFromInt(45),
				"Pets":      decimal.NewFromInt(80),
			},
		},
		{
			name: "renders a single category",
			breakdown: map[string]decimal.Decimal{
				"Food": decimal.NewFromInt(200),
			},
		},
		{
			name:        "rejects empty breakdown",
			breakdown:   nil,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			png, err := Breakdown(tt.breakdown, "Expense Breakdown")
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, png)
			require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
		})
	}
}

func TestBreakdownIsDeterministic(t *testing.T) {
	breakdown := map[string]decimal.Decimal{
		"Food":      decimal.NewFromInt(200),
		"Transport": decimal.NewFromInt(45),
		"Pets":      decimal.NewFromInt(80),
	}

	first, err := Breakdown(breakdown, "Expense Breakdown")
	require.NoError(t, err)
	second, err := Breakdown(breakdown, "Expense Breakdown")
	require.NoError(t, err)
	require.Equal(t, first, second)
}
