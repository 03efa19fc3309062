package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jaekwang-park/taskhub/internal/apiclient"
	"github.com/jaekwang-park/taskhub/internal/app"
	"github.com/jaekwang-park/taskhub/internal/config"
	"github.com/jaekwang-park/taskhub/internal/session"
	"github.com/jaekwang-park/taskhub/internal/tokenstore"
)

func main() {
	// Initial logger at warn level; reconfigured after config load.
	// Logs go to stderr so stdout carries only screen output.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()

	if err != nil && !isReported(err) {
		logger.Error("taskhub failed", "error", err)
	}
	os.Exit(app.ExitCode(err))
}

// reportedError marks failures the screen already showed to the user.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func isReported(err error) bool {
	_, ok := err.(reportedError)
	return ok
}

func run(ctx context.Context, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.ParseLogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Debug("config loaded",
		"env", cfg.AppEnv,
		"api_base_url", cfg.APIBaseURL,
		"token_store", cfg.TokenStore,
		"log_level", cfg.LogLevel,
	)

	tokens, closeTokens, err := openTokenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeTokens()

	client := apiclient.New(cfg.APIBaseURL,
		apiclient.WithTokenSource(tokens),
		apiclient.WithTimeout(cfg.HTTPTimeout),
		apiclient.WithLogger(logger),
	)

	sess := session.New(client, tokens, session.WithLogger(logger))
	defer sess.Close()

	if err := sess.Restore(ctx); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	a := app.New(sess, client, app.WithLogger(logger))
	if err := a.Run(ctx, args); err != nil {
		return reportedError{err: err}
	}
	return nil
}

func openTokenStore(ctx context.Context, cfg config.Config) (tokenstore.Store, func(), error) {
	switch cfg.TokenStore {
	case config.TokenStoreMemory:
		return tokenstore.NewMemory(), func() {}, nil

	case config.TokenStorePostgres:
		db, err := tokenstore.NewDB(cfg.DB.DSN())
		if err != nil {
			return nil, nil, err
		}
		store := tokenstore.NewPostgres(db, cfg.APIBaseURL)
		if err := store.EnsureSchema(ctx); err != nil {
			closeDB(db)
			return nil, nil, err
		}
		slog.Debug("database connected")
		return store, func() { closeDB(db) }, nil

	default:
		return tokenstore.NewFile(cfg.TokenFile), func() {}, nil
	}
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.Warn("failed to close database", "error", err)
	}
}
