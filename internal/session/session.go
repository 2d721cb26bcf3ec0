// Package session owns the per-user reactive pipeline: one live store
// subscription whose snapshots are folded into derived views.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/budgetku/budget-tracker/internal/aggregate"
	"gitlab.com/budgetku/budget-tracker/internal/auth"
	"gitlab.com/budgetku/budget-tracker/internal/logger"
	"gitlab.com/budgetku/budget-tracker/internal/models"
	"gitlab.com/budgetku/budget-tracker/internal/store"
)

// Views is an immutable bundle of every derived view, recomputed in full
// from a single transaction snapshot.
type Views struct {
	UserID       string
	Transactions []models.Transaction

	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	TotalBalance decimal.Decimal

	ExpenseBreakdown map[string]decimal.Decimal
	IncomeBreakdown  map[string]decimal.Decimal

	DailyExpense   decimal.Decimal
	BalanceHistory []decimal.Decimal
	TrendPercent   float64

	ComputedAt time.Time
}

// Compute derives all views from a snapshot. Exposed so callers holding a
// one-shot transaction list can build the same bundle the session publishes.
func Compute(userID string, list []models.Transaction, now time.Time) Views {
	return Views{
		UserID:           userID,
		Transactions:     list,
		TotalIncome:      aggregate.TotalIncome(list),
		TotalExpense:     aggregate.TotalExpense(list),
		TotalBalance:     aggregate.TotalBalance(list),
		ExpenseBreakdown: aggregate.ExpenseBreakdown(list),
		IncomeBreakdown:  aggregate.IncomeBreakdown(list),
		DailyExpense:     aggregate.DailyExpense(list, now),
		BalanceHistory:   aggregate.BalanceHistory(list, now),
		TrendPercent:     aggregate.TrendPercent(list, now),
		ComputedAt:       now,
	}
}

// Session drives view recomputation for the active user. At most one store
// subscription is live at a time; switching users cancels the previous one
// before the next is opened, so stale deliveries can never leak across users.
type Session struct {
	store store.Store
	now   func() time.Time

	mu     sync.Mutex
	userID string
	sub    *store.Subscription
	pump   sync.WaitGroup

	views chan Views
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New creates an idle session; no subscription exists until SwitchUser.
func New(st store.Store, opts ...Option) *Session {
	s := &Session{
		store: st,
		now:   time.Now,
		views: make(chan Views, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Views is the derived-view delivery channel. Deliveries coalesce: a slow
// consumer only ever sees the most recent bundle.
func (s *Session) Views() <-chan Views {
	return s.views
}

// UserID returns the currently active user, empty when signed out.
func (s *Session) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// SwitchUser atomically replaces the active subscription. The previous
// subscription is fully released before the new one opens. An empty userID
// signs the session out and publishes the empty views bundle.
func (s *Session) SwitchUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.userID = userID

	if userID == "" {
		s.publish(Compute("", nil, s.now()))
		return nil
	}

	sub, err := s.store.Subscribe(ctx, userID)
	if err != nil {
		s.userID = ""
		return err
	}
	s.sub = sub

	s.pump.Add(1)
	go func() {
		defer s.pump.Done()
		for snapshot := range sub.Snapshots() {
			s.publish(Compute(userID, snapshot, s.now()))
		}
		if err := sub.Err(); err != nil {
			logger.Log.Error().Err(err).
				Str("user_hash", logger.HashUserID(userID)).
				Msg("Store subscription terminated")
		}
	}()

	logger.Log.Info().Str("user_hash", logger.HashUserID(userID)).Msg("Session switched user")
	return nil
}

// Follow drives the session from an identity provider: every sign-in
// switches the active user and a sign-out publishes the empty bundle. It
// blocks until ctx is cancelled. A failed switch leaves the session signed
// out rather than stopping the loop.
func (s *Session) Follow(ctx context.Context, provider auth.Provider) {
	for {
		select {
		case <-ctx.Done():
			return
		case change := <-provider.Changes():
			if err := s.SwitchUser(ctx, change.UserID); err != nil {
				logger.Log.Error().Err(err).
					Str("user_hash", logger.HashUserID(change.UserID)).
					Msg("Failed to switch session user")
			}
		}
	}
}

// Close releases the active subscription, if any.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.userID = ""
}

// stopLocked cancels the current subscription and waits for its pump to
// drain, guaranteeing no further deliveries from the old user.
func (s *Session) stopLocked() {
	if s.sub == nil {
		return
	}
	s.sub.Close()
	s.pump.Wait()
	s.sub = nil

	// Drop any undelivered bundle from the old user; the pump is stopped, so
	// nothing can repopulate the channel before the next subscription.
	select {
	case <-s.views:
	default:
	}
}

// publish delivers views latest-wins; the consumer never blocks a snapshot.
func (s *Session) publish(v Views) {
	for {
		select {
		case s.views <- v:
			return
		default:
		}
		select {
		case <-s.views:
		default:
		}
	}
}
