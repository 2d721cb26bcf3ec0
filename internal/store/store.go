// Package store provides the record store adapter: persistence plus
// full-snapshot change subscriptions for a user's transaction set.
package store

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gitlab.com/budgetku/budget-tracker/internal/models"
)

// ErrEmptyUserID rejects writes that are not scoped to a user. The write is
// refused before any I/O happens.
var ErrEmptyUserID = errors.New("store: empty user id")

// DefaultUserName is returned when a user has not set a display name.
const DefaultUserName = "User"

// Store is the record store adapter. All reads and writes are scoped by user;
// no record is ever visible across users.
type Store interface {
	// Subscribe delivers the current full transaction list for the user,
	// promptly on subscription and again after every change. Rapid successive
	// writes may coalesce into a single delivery reflecting the final state;
	// a later delivery always reflects at least as much as an earlier one.
	// Snapshot order is not guaranteed to be stable between deliveries.
	Subscribe(ctx context.Context, userID string) (*Subscription, error)

	// Transactions returns a one-shot snapshot of the user's transactions.
	Transactions(ctx context.Context, userID string) ([]models.Transaction, error)

	// AddTransaction persists the record, assigning a store-generated ID when
	// the record has none. Fails with ErrEmptyUserID before any I/O if the
	// record is not user-scoped; a failed add is never partially written.
	AddTransaction(ctx context.Context, tx *models.Transaction) error

	// DeleteTransaction removes the record. Deleting an absent record is a
	// no-op, not an error.
	DeleteTransaction(ctx context.Context, userID, id string) error

	SetBudget(ctx context.Context, userID, category string, amount decimal.Decimal) error
	Budgets(ctx context.Context, userID string) (map[string]decimal.Decimal, error)

	// SaveNotification persists a budget alert, assigning an ID.
	SaveNotification(ctx context.Context, n *models.Notification) error
	Notifications(ctx context.Context, userID string) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, id string) error

	// UserName returns the user's display name, DefaultUserName when unset.
	UserName(ctx context.Context, userID string) (string, error)
	SetUserName(ctx context.Context, userID, name string) error
}

// Subscription is a live full-snapshot stream for one user. Close it when the
// consumer goes away so the store-side listener is released.
type Subscription struct {
	snapshots chan []models.Transaction
	cancel    context.CancelFunc
	done      chan struct{}

	err error // written once before done is closed
}

func newSubscription(cancel context.CancelFunc) *Subscription {
	return &Subscription{
		snapshots: make(chan []models.Transaction, 1),
		cancel:    cancel,
		done:      make(chan struct{}),
	}
}

// Snapshots is the snapshot delivery channel. It is closed when the
// subscription terminates; check Err afterwards to distinguish a clean close
// from an upstream failure.
func (s *Subscription) Snapshots() <-chan []models.Transaction {
	return s.snapshots
}

// Err reports why the subscription terminated. It is nil until the snapshot
// channel has been closed, and nil after a deliberate Close.
func (s *Subscription) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// Close releases the subscription and its store-side listener.
func (s *Subscription) Close() {
	s.cancel()
	<-s.done
}

// publish delivers a snapshot with latest-wins coalescing: when the consumer
// has not drained the previous snapshot it is replaced, never queued behind.
func (s *Subscription) publish(snapshot []models.Transaction) {
	for {
		select {
		case s.snapshots <- snapshot:
			return
		default:
		}
		select {
		case <-s.snapshots:
		default:
		}
	}
}

// finish terminates the stream. A nil err means a clean shutdown.
func (s *Subscription) finish(err error) {
	if err != nil && !errors.Is(err, context.Canceled) {
		s.err = err
	}
	close(s.done)
	close(s.snapshots)
}
