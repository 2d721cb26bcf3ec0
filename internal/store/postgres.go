package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"gitlab.com/budgetku/budget-tracker/internal/database"
	"gitlab.com/budgetku/budget-tracker/internal/logger"
	"gitlab.com/budgetku/budget-tracker/internal/models"
)

// Postgres is a Store backed by PostgreSQL. Change subscriptions ride on
// LISTEN/NOTIFY: a trigger on the transactions table notifies the owner's
// user id, and each subscription re-reads its full snapshot on notify.
type Postgres struct {
	pool *pgxpool.Pool
	db   database.PGXDB
}

var _ Store = (*Postgres)(nil)

// NewPostgres creates a Postgres store on top of an established pool.
// The schema must already be migrated.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool, db: pool}
}

// Subscribe implements Store. A dedicated connection is held for the lifetime
// of the subscription and released on Close.
func (p *Postgres) Subscribe(ctx context.Context, userID string) (*Subscription, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	subCtx, cancel := context.WithCancel(ctx)
	conn, err := p.pool.Acquire(subCtx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to acquire listener connection: %w", err)
	}
	if _, err := conn.Exec(subCtx, "LISTEN "+database.ChangeChannel); err != nil {
		conn.Release()
		cancel()
		return nil, fmt.Errorf("failed to listen on %s: %w", database.ChangeChannel, err)
	}

	sub := newSubscription(cancel)

	go func() {
		defer conn.Release()

		snapshot, err := p.Transactions(subCtx, userID)
		if err != nil {
			sub.finish(err)
			return
		}
		sub.publish(snapshot)

		for {
			notification, err := conn.Conn().WaitForNotification(subCtx)
			if err != nil {
				sub.finish(err)
				return
			}
			if notification.Payload != userID {
				continue
			}
			snapshot, err := p.Transactions(subCtx, userID)
			if err != nil {
				sub.finish(err)
				return
			}
			sub.publish(snapshot)
		}
	}()

	logger.Log.Debug().Str("user_hash", logger.HashUserID(userID)).Msg("Store subscription opened")
	return sub, nil
}

// Transactions implements Store.
func (p *Postgres) Transactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	rows, err := p.db.Query(ctx, `
		SELECT id, user_id, title, amount, type, category, date
		FROM transactions WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var list []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Title, &tx.Amount, &tx.Type, &tx.Category, &tx.Date); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		list = append(list, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return list, nil
}

// AddTransaction implements Store.
func (p *Postgres) AddTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx.UserID == "" {
		logger.Log.Error().Msg("Refusing to add transaction with empty user id")
		return ErrEmptyUserID
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	_, err := p.db.Exec(ctx, `
		INSERT INTO transactions (id, user_id, title, amount, type, category, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, tx.ID, tx.UserID, tx.Title, tx.Amount, tx.Type, tx.Category, tx.Date)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// DeleteTransaction implements Store. Absent records are a no-op.
func (p *Postgres) DeleteTransaction(ctx context.Context, userID, id string) error {
	_, err := p.db.Exec(ctx, `
		DELETE FROM transactions WHERE user_id = $1 AND id = $2
	`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// SetBudget implements Store.
func (p *Postgres) SetBudget(ctx context.Context, userID, category string, amount decimal.Decimal) error {
	if userID == "" {
		return ErrEmptyUserID
	}
	_, err := p.db.Exec(ctx, `
		INSERT INTO budgets (user_id, category, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, category) DO UPDATE SET amount = EXCLUDED.amount
	`, userID, category, amount)
	if err != nil {
		return fmt.Errorf("failed to set budget: %w", err)
	}
	return nil
}

// Budgets implements Store.
func (p *Postgres) Budgets(ctx context.Context, userID string) (map[string]decimal.Decimal, error) {
	rows, err := p.db.Query(ctx, `
		SELECT category, amount FROM budgets WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	budgets := make(map[string]decimal.Decimal)
	for rows.Next() {
		var category string
		var amount decimal.Decimal
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets[category] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}
	return budgets, nil
}

// SaveNotification implements Store.
func (p *Postgres) SaveNotification(ctx context.Context, n *models.Notification) error {
	if n.UserID == "" {
		return ErrEmptyUserID
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	_, err := p.db.Exec(ctx, `
		INSERT INTO notifications (id, user_id, title, message, date, is_read)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, n.ID, n.UserID, n.Title, n.Message, n.Date, n.IsRead)
	if err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

// Notifications implements Store.
func (p *Postgres) Notifications(ctx context.Context, userID string) ([]models.Notification, error) {
	rows, err := p.db.Query(ctx, `
		SELECT id, user_id, title, message, date, is_read
		FROM notifications WHERE user_id = $1
		ORDER BY date DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var list []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Date, &n.IsRead); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		list = append(list, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}
	return list, nil
}

// MarkNotificationRead implements Store.
func (p *Postgres) MarkNotificationRead(ctx context.Context, userID, id string) error {
	_, err := p.db.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND id = $2
	`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// UserName implements Store.
func (p *Postgres) UserName(ctx context.Context, userID string) (string, error) {
	var name string
	err := p.db.QueryRow(ctx, `
		SELECT name FROM user_names WHERE user_id = $1
	`, userID).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && name == "") {
		return DefaultUserName, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query user name: %w", err)
	}
	return name, nil
}

// SetUserName implements Store.
func (p *Postgres) SetUserName(ctx context.Context, userID, name string) error {
	if userID == "" {
		return ErrEmptyUserID
	}
	_, err := p.db.Exec(ctx, `
		INSERT INTO user_names (user_id, name)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET name = EXCLUDED.name
	`, userID, name)
	if err != nil {
		return fmt.Errorf("failed to set user name: %w", err)
	}
	return nil
}
