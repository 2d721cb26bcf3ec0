// Package gateway validates and applies mutations against the record store.
// It is the only path that creates transactions, and the only caller of the
// budget threshold monitor.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/budgetku/budget-tracker/internal/budget"
	"gitlab.com/budgetku/budget-tracker/internal/logger"
	"gitlab.com/budgetku/budget-tracker/internal/models"
	"gitlab.com/budgetku/budget-tracker/internal/settings"
	"gitlab.com/budgetku/budget-tracker/internal/store"
)

var (
	// ErrEmptyUserID mirrors store.ErrEmptyUserID; the gateway rejects the
	// write before it reaches the store.
	ErrEmptyUserID = store.ErrEmptyUserID

	ErrNegativeAmount = errors.New("gateway: negative amount")
	ErrInvalidType    = errors.New("gateway: invalid transaction type")
)

// Gateway applies create and delete operations, triggering the budget check
// after each successful add. There is no update-in-place operation.
type Gateway struct {
	store    store.Store
	settings *settings.Store
	monitor  *budget.Monitor
	now      func() time.Time
}

// New creates a gateway. monitor may be nil, in which case adds skip the
// budget check.
func New(st store.Store, set *settings.Store, monitor *budget.Monitor) *Gateway {
	return &Gateway{store: st, settings: set, monitor: monitor, now: time.Now}
}

// AddTransaction validates, constructs and persists a new transaction dated
// now, then runs the budget threshold check. An empty userID is logged and
// rejected before any I/O.
func (g *Gateway) AddTransaction(
	ctx context.Context,
	userID, title string,
	amount decimal.Decimal,
	typ models.TransactionType,
	category string,
) (models.Transaction, error) {
	if userID == "" {
		logger.Log.Error().Msg("Dropping transaction with empty user id")
		return models.Transaction{}, ErrEmptyUserID
	}
	if amount.IsNegative() {
		return models.Transaction{}, ErrNegativeAmount
	}
	if !typ.Valid() {
		return models.Transaction{}, fmt.Errorf("%w: %q", ErrInvalidType, typ)
	}

	tx := models.Transaction{
		UserID:   userID,
		Title:    title,
		Amount:   amount,
		Type:     typ,
		Category: category,
		Date:     g.now().UnixMilli(),
	}
	if err := g.store.AddTransaction(ctx, &tx); err != nil {
		return models.Transaction{}, fmt.Errorf("failed to add transaction: %w", err)
	}

	logger.Log.Debug().
		Str("user_hash", logger.HashUserID(userID)).
		Str("title", logger.SanitizeTitle(title)).
		Str("category", category).
		Str("type", string(typ)).
		Msg("Transaction added")

	if g.monitor != nil {
		// A failed alert never rolls back or fails the persisted write.
		if err := g.monitor.CheckTransaction(ctx, tx); err != nil {
			logger.Log.Error().Err(err).Msg("Budget threshold check failed")
		}
	}
	return tx, nil
}

// DeleteTransaction removes the record. No budget re-check happens on
// deletion.
func (g *Gateway) DeleteTransaction(ctx context.Context, tx models.Transaction) error {
	if err := g.store.DeleteTransaction(ctx, tx.UserID, tx.ID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// SetBudget stores a per-category spending ceiling. Negative limits are
// rejected; a zero limit is stored and means "no limit" to the monitor.
func (g *Gateway) SetBudget(ctx context.Context, userID, category string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if err := g.store.SetBudget(ctx, userID, category, amount); err != nil {
		return fmt.Errorf("failed to set budget: %w", err)
	}
	return nil
}

// SetDailyLimit stores the user's daily spending limit.
func (g *Gateway) SetDailyLimit(userID string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if err := g.settings.SetDailyLimit(userID, amount); err != nil {
		return fmt.Errorf("failed to set daily limit: %w", err)
	}
	return nil
}
