// Package chart renders derived views as PNG images.
package chart

import (
	"fmt"
	"sort"

	"github.com/go-analyze/charts"
	"github.com/shopspring/decimal"
)

// BalanceHistory renders a running-balance series as a line chart.
// Returns PNG image as bytes.
func BalanceHistory(history []decimal.Decimal, title string) ([]byte, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("no balance history to chart")
	}

	values := make([]float64, len(history))
	for i, balance := range history {
		values[i] = balance.InexactFloat64()
	}

	p, err := charts.LineRender(
		[][]float64{values},
		charts.TitleOptionFunc(charts.TitleOption{Text: title}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf, nil
}

// Breakdown renders a category breakdown as a pie chart.
// Returns PNG image as bytes.
func Breakdown(breakdown map[string]decimal.Decimal, title string) ([]byte, error) {
	if len(breakdown) == 0 {
		return nil, fmt.Errorf("no breakdown to chart")
	}

	// Sorted category order keeps the rendering deterministic.
	categories := make([]string, 0, len(breakdown))
	for category := range breakdown {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	values := make([]float64, 0, len(categories))
	for _, category := range categories {
		values = append(values, breakdown[category].InexactFloat64())
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{Text: title}),
		charts.LegendLabelsOptionFunc(categories),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf, nil
}
