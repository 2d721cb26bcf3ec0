package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gitlab.com/budgetku/budget-tracker/internal/logger"
	"gitlab.com/budgetku/budget-tracker/internal/models"
)

// Memory is an in-memory Store. It backs local runs without a database and is
// the reference implementation the unit tests exercise.
type Memory struct {
	mu            sync.RWMutex
	transactions  map[string]map[string]models.Transaction // userID -> id -> tx
	budgets       map[string]map[string]decimal.Decimal    // userID -> category -> limit
	notifications map[string]map[string]models.Notification
	names         map[string]string
	watchers      map[string][]chan struct{} // userID -> change signals
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		transactions:  make(map[string]map[string]models.Transaction),
		budgets:       make(map[string]map[string]decimal.Decimal),
		notifications: make(map[string]map[string]models.Notification),
		names:         make(map[string]string),
		watchers:      make(map[string][]chan struct{}),
	}
}

// Subscribe implements Store.
func (m *Memory) Subscribe(ctx context.Context, userID string) (*Subscription, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	subCtx, cancel := context.WithCancel(ctx)
	sub := newSubscription(cancel)

	notify := make(chan struct{}, 1)
	m.mu.Lock()
	m.watchers[userID] = append(m.watchers[userID], notify)
	m.mu.Unlock()

	go func() {
		defer m.removeWatcher(userID, notify)

		sub.publish(m.snapshot(userID))
		for {
			select {
			case <-subCtx.Done():
				sub.finish(subCtx.Err())
				return
			case <-notify:
				sub.publish(m.snapshot(userID))
			}
		}
	}()

	return sub, nil
}

// Transactions implements Store.
func (m *Memory) Transactions(_ context.Context, userID string) ([]models.Transaction, error) {
	return m.snapshot(userID), nil
}

// AddTransaction implements Store.
func (m *Memory) AddTransaction(_ context.Context, tx *models.Transaction) error {
	if tx.UserID == "" {
		logger.Log.Error().Msg("Refusing to add transaction with empty user id")
		return ErrEmptyUserID
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	m.mu.Lock()
	byID, ok := m.transactions[tx.UserID]
	if !ok {
		byID = make(map[string]models.Transaction)
		m.transactions[tx.UserID] = byID
	}
	byID[tx.ID] = *tx
	m.mu.Unlock()

	m.notifyChanged(tx.UserID)
	return nil
}

// DeleteTransaction implements Store.
func (m *Memory) DeleteTransaction(_ context.Context, userID, id string) error {
	m.mu.Lock()
	byID, ok := m.transactions[userID]
	if ok {
		_, ok = byID[id]
		delete(byID, id)
	}
	m.mu.Unlock()

	if ok {
		m.notifyChanged(userID)
	}
	return nil
}

// SetBudget implements Store.
func (m *Memory) SetBudget(_ context.Context, userID, category string, amount decimal.Decimal) error {
	if userID == "" {
		return ErrEmptyUserID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	byCat, ok := m.budgets[userID]
	if !ok {
		byCat = make(map[string]decimal.Decimal)
		m.budgets[userID] = byCat
	}
	byCat[category] = amount
	return nil
}

// Budgets implements Store.
func (m *Memory) Budgets(_ context.Context, userID string) (map[string]decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]decimal.Decimal, len(m.budgets[userID]))
	for cat, limit := range m.budgets[userID] {
		out[cat] = limit
	}
	return out, nil
}

// SaveNotification implements Store.
func (m *Memory) SaveNotification(_ context.Context, n *models.Notification) error {
	if n.UserID == "" {
		return ErrEmptyUserID
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	byID, ok := m.notifications[n.UserID]
	if !ok {
		byID = make(map[string]models.Notification)
		m.notifications[n.UserID] = byID
	}
	byID[n.ID] = *n
	return nil
}

// Notifications implements Store.
func (m *Memory) Notifications(_ context.Context, userID string) ([]models.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Notification, 0, len(m.notifications[userID]))
	for _, n := range m.notifications[userID] {
		out = append(out, n)
	}
	return out, nil
}

// MarkNotificationRead implements Store.
func (m *Memory) MarkNotificationRead(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.notifications[userID][id]; ok {
		n.IsRead = true
		m.notifications[userID][id] = n
	}
	return nil
}

// UserName implements Store.
func (m *Memory) UserName(_ context.Context, userID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if name, ok := m.names[userID]; ok && name != "" {
		return name, nil
	}
	return DefaultUserName, nil
}

// SetUserName implements Store.
func (m *Memory) SetUserName(_ context.Context, userID, name string) error {
	if userID == "" {
		return ErrEmptyUserID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.names[userID] = name
	return nil
}

func (m *Memory) snapshot(userID string) []models.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Transaction, 0, len(m.transactions[userID]))
	for _, tx := range m.transactions[userID] {
		out = append(out, tx)
	}
	return out
}

// notifyChanged pokes every watcher for the user. The signal channel has
// capacity one, so an already-pending signal absorbs further changes and the
// watcher observes a single coalesced snapshot.
func (m *Memory) notifyChanged(userID string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, ch := range m.watchers[userID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (m *Memory) removeWatcher(userID string, notify chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	watchers := m.watchers[userID]
	for i, ch := range watchers {
		if ch == notify {
			m.watchers[userID] = append(watchers[:i], watchers[i+1:]...)
			break
		}
	}
}
