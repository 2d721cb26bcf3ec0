package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ChangeChannel is the LISTEN/NOTIFY channel carrying the user id of every
// changed transaction set.
const ChangeChannel = "transactions_changed"

// RunMigrations creates the database schema.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			amount DECIMAL(18, 2) NOT NULL CHECK (amount >= 0),
			type TEXT NOT NULL CHECK (type IN ('INCOME', 'EXPENSE')),
			category TEXT NOT NULL,
			date BIGINT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON transactions(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date)`,

		`CREATE TABLE IF NOT EXISTS budgets (
			user_id TEXT NOT NULL,
			category TEXT NOT NULL,
			amount DECIMAL(18, 2) NOT NULL,
			PRIMARY KEY (user_id, category)
		)`,

		`CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL DEFAULT '',
			date BIGINT NOT NULL,
			is_read BOOLEAN NOT NULL DEFAULT FALSE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id)`,

		`CREATE TABLE IF NOT EXISTS user_names (
			user_id TEXT PRIMARY KEY,
			name TEXT NOT NULL
		)`,

		// Every transaction change notifies listeners with the owner's user id
		// so per-user subscriptions know to re-read their snapshot.
		`CREATE OR REPLACE FUNCTION notify_transactions_changed() RETURNS trigger AS $$
		BEGIN
			PERFORM pg_notify('` + ChangeChannel + `', COALESCE(NEW.user_id, OLD.user_id));
			RETURN NULL;
		END;
		$$ LANGUAGE plpgsql`,

		`DROP TRIGGER IF EXISTS transactions_changed_trigger ON transactions`,

		`CREATE TRIGGER transactions_changed_trigger
			AFTER INSERT OR UPDATE OR DELETE ON transactions
			FOR EACH ROW EXECUTE FUNCTION notify_transactions_changed()`,
	}

	for i, migration := range migrations {
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}
