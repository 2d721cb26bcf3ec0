// Package settings persists per-user scalar preferences in a local SQLite
// file. Each key is owned by a single user, so last-writer-wins is enough.
package settings

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// DefaultDailyLimit applies when a user has never set a daily limit.
var DefaultDailyLimit = decimal.NewFromInt(100000)

// Store is a local key-value settings store.
type Store struct {
	db *sql.DB
}

// Open creates or opens the settings database at path. Use ":memory:" for an
// ephemeral store in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings db: %w", err)
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create settings schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the raw value for key, or ("", false) when unset.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read setting %q: %w", key, err)
	}
	return value, true, nil
}

// Set writes the value for key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write setting %q: %w", key, err)
	}
	return nil
}

// DailyLimit returns the user's daily spending limit, DefaultDailyLimit when
// the user has never set one.
func (s *Store) DailyLimit(userID string) (decimal.Decimal, error) {
	raw, ok, err := s.Get(dailyLimitKey(userID))
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return DefaultDailyLimit, nil
	}
	limit, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("corrupt daily limit for user: %w", err)
	}
	return limit, nil
}

// SetDailyLimit stores the user's daily spending limit.
func (s *Store) SetDailyLimit(userID string, amount decimal.Decimal) error {
	return s.Set(dailyLimitKey(userID), amount.String())
}

func dailyLimitKey(userID string) string {
	return "daily_limit_" + userID
}
