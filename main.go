// Package main is the entry point for the budget tracker daemon and CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"gitlab.com/budgetku/budget-tracker/internal/budget"
	"gitlab.com/budgetku/budget-tracker/internal/config"
	"gitlab.com/budgetku/budget-tracker/internal/database"
	"gitlab.com/budgetku/budget-tracker/internal/gateway"
	"gitlab.com/budgetku/budget-tracker/internal/logger"
	"gitlab.com/budgetku/budget-tracker/internal/models"
	"gitlab.com/budgetku/budget-tracker/internal/session"
	"gitlab.com/budgetku/budget-tracker/internal/settings"
	"gitlab.com/budgetku/budget-tracker/internal/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("budget-tracker %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.SetLevel(cfg.LogLevel)
	settings.DefaultDailyLimit = cfg.DefaultDailyLimit

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to open store")
	}
	defer closeStore()

	set, err := settings.Open(cfg.SettingsDBPath)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to open settings store")
	}
	defer set.Close()

	var notifier budget.Notifier = budget.LogNotifier{}
	if cfg.TelegramEnabled() {
		notifier, err = budget.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to create Telegram notifier")
		}
	}

	monitor := budget.NewMonitor(st, notifier)
	gw := gateway.New(st, set, monitor)

	if len(os.Args) > 1 {
		if err := runCommand(ctx, gw, cfg.DefaultUserID, os.Args[1:]); err != nil {
			logger.Log.Fatal().Err(err).Msg("Command failed")
		}
		return
	}

	if err := watch(ctx, st, cfg.DefaultUserID); err != nil {
		logger.Log.Fatal().Err(err).Msg("Watch loop failed")
	}
}

// openStore picks the backend from the configuration. Postgres when
// DATABASE_URL is set, the in-memory store otherwise.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Log.Info().Msg("No DATABASE_URL set, using in-memory store")
		return store.NewMemory(), func() {}, nil
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Log.Info().Msg("Database initialized successfully")
	return store.NewPostgres(pool), pool.Close, nil
}

// watch runs the reactive pipeline for a single user and logs every
// recomputed view bundle until the context is cancelled.
func watch(ctx context.Context, st store.Store, userID string) error {
	sess := session.New(st)
	defer sess.Close()

	if err := sess.SwitchUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	logger.Log.Info().
		Str("user_hash", logger.HashUserID(userID)).
		Msg("Watching for transaction changes")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case views, ok := <-sess.Views():
				if !ok {
					return nil
				}
				logger.Log.Info().
					Int("transactions", len(views.Transactions)).
					Str("balance", views.TotalBalance.String()).
					Str("daily_expense", views.DailyExpense.String()).
					Float64("trend_percent", views.TrendPercent).
					Msg("Views recomputed")
			}
		}
	})
	return g.Wait()
}

// runCommand dispatches one-shot CLI subcommands against the gateway.
func runCommand(ctx context.Context, gw *gateway.Gateway, userID string, args []string) error {
	switch args[0] {
	case "add":
		// add <income|expense> <category> <amount> [title...]
		if len(args) < 4 {
			return fmt.Errorf("usage: add <income|expense> <category> <amount> [title...]")
		}
		typ, err := parseType(args[1])
		if err != nil {
			return err
		}
		amount, err := decimal.NewFromString(args[3])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[3], err)
		}
		title := strings.Join(args[4:], " ")
		tx, err := gw.AddTransaction(ctx, userID, title, amount, typ, args[2])
		if err != nil {
			return err
		}
		fmt.Printf("added %s %s %s (%s)\n", tx.Type, tx.Amount.StringFixed(2), tx.Category, tx.ID)
		return nil

	case "set-budget":
		// set-budget <category> <amount>
		if len(args) != 3 {
			return fmt.Errorf("usage: set-budget <category> <amount>")
		}
		amount, err := decimal.NewFromString(args[2])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[2], err)
		}
		return gw.SetBudget(ctx, userID, args[1], amount)

	case "set-daily-limit":
		// set-daily-limit <amount>
		if len(args) != 2 {
			return fmt.Errorf("usage: set-daily-limit <amount>")
		}
		amount, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[1], err)
		}
		return gw.SetDailyLimit(userID, amount)

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func parseType(s string) (models.TransactionType, error) {
	switch strings.ToLower(s) {
	case "income":
		return models.TypeIncome, nil
	case "expense":
		return models.TypeExpense, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}
