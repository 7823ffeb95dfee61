// cmd/importer/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"hackathon-importer/internal/classifier"
	"hackathon-importer/internal/config"
	"hackathon-importer/internal/database"
	"hackathon-importer/internal/extractor"
	"hackathon-importer/internal/github"
	"hackathon-importer/internal/importer"
	"hackathon-importer/internal/llm"
	"hackathon-importer/internal/pacer"
	"hackathon-importer/internal/store"
	"hackathon-importer/migrations"
)

// dryRun is flipped to false once the extracted records have been reviewed.
const dryRun = true

func main() {
	if err := run(); err != nil {
		slog.Error("Application startup error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Initialize structured logger
	logLevel := new(slog.LevelVar)
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(handler).With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	// 2. Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	setLogLevel(cfg.LogLevel, logLevel)
	logger.Info("Configuration loaded successfully", "llm_provider", cfg.LLMProvider, "sink", cfg.Sink)

	// 3. Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 4. Initialize application components
	im, cleanup, err := buildImporter(ctx, cfg, dryRun, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	// 5. Run a single pass over the repositories
	if _, err := im.Run(ctx); err != nil {
		logger.Error("Fatal error", "error", err)
	}
	return nil
}

// buildImporter wires every component from cfg. The returned cleanup releases the
// database pool when the Postgres sink is used.
func buildImporter(ctx context.Context, cfg *config.Config, dryRun bool, logger *slog.Logger) (*importer.Importer, func(), error) {
	cleanup := func() {}

	ghClient, err := github.NewClient(cfg.GithubToken, cfg.GithubAPIURL, cfg.HTTPTimeout, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create github client: %w", err)
	}

	keywords, indicators, err := loadKeywords(cfg)
	if err != nil {
		return nil, nil, err
	}

	completer, err := newCompleter(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create language model client: %w", err)
	}

	var st store.Store
	if !dryRun {
		st, cleanup, err = newStore(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
	}

	im := importer.NewImporter(
		ghClient,
		classifier.New(keywords),
		extractor.New(completer, indicators, logger),
		store.NewSink(st, dryRun, logger),
		pacer.New(cfg.RepoDelay, cfg.RepoRateLimit),
		logger,
	)
	return im, cleanup, nil
}

// loadKeywords applies the keyword file first; HACKATHON_KEYWORDS wins when both are set.
func loadKeywords(cfg *config.Config) (keywords, indicators []string, err error) {
	if cfg.KeywordsFile != "" {
		kf, err := classifier.LoadKeywordFile(cfg.KeywordsFile)
		if err != nil {
			return nil, nil, err
		}
		keywords, indicators = kf.Keywords, kf.StrongIndicators
	}
	if len(cfg.HackathonKeywords) > 0 {
		keywords = cfg.HackathonKeywords
	}
	return keywords, indicators, nil
}

func newCompleter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (llm.Completer, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		return llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, "", cfg.LLMModel, cfg.HTTPTimeout, logger)
	default:
		return llm.NewGroqClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.LLMModel, cfg.HTTPTimeout, logger), nil
	}
}

func newStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Store, func(), error) {
	if cfg.Sink != config.SinkPostgres {
		return store.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseTable, cfg.HTTPTimeout, logger), func() {}, nil
	}

	dbpool, err := pgxpool.New(ctx, cfg.DBURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("Database connection established")

	if err := runMigrations(cfg.DBURL); err != nil {
		dbpool.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	logger.Info("Database migrations applied successfully")

	return store.NewPostgresStore(database.New(dbpool), cfg.Dedupe, logger), dbpool.Close, nil
}

func runMigrations(dbURL string) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func setLogLevel(level string, v *slog.LevelVar) {
	switch level {
	case "debug":
		v.Set(slog.LevelDebug)
	case "warn":
		v.Set(slog.LevelWarn)
	case "error":
		v.Set(slog.LevelError)
	default:
		v.Set(slog.LevelInfo)
	}
}
