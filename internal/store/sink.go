package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	custom_errors "hackathon-importer/internal/errors"
	"hackathon-importer/internal/model"
)

// Sink writes projects to a Store, or only logs them in dry-run mode.
type Sink struct {
	store    Store
	dryRun   bool
	validate *validator.Validate
	logger   *slog.Logger
}

// NewSink creates a Sink. store may be nil when dryRun is set.
func NewSink(store Store, dryRun bool, logger *slog.Logger) *Sink {
	return &Sink{
		store:    store,
		dryRun:   dryRun,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// DryRun reports whether the sink skips writes.
func (s *Sink) DryRun() bool { return s.dryRun }

// Save persists p and reports success. Errors are logged, never returned.
func (s *Sink) Save(ctx context.Context, p *model.HackathonProject) bool {
	logger := s.logger.With("title", p.Title, "github_url", p.GithubURL)

	if s.dryRun {
		logger.Info("DRY RUN - would save project", "project_name", p.ProjectName, "year", p.Year)
		return true
	}

	if err := s.insert(ctx, p); err != nil {
		logger.Error("Failed to save project", "error", err, "error_type", fmt.Sprintf("%T", err))
		return false
	}
	logger.Info("Saved project")
	return true
}

func (s *Sink) insert(ctx context.Context, p *model.HackathonProject) error {
	if s.store == nil {
		return errors.New("no store configured")
	}
	if err := s.validate.Struct(p); err != nil {
		return fmt.Errorf("invalid project: %w", err)
	}

	n, err := s.store.Insert(ctx, FromProject(p))
	if err != nil {
		return err
	}
	if n == 0 {
		return custom_errors.ErrNoRowsWritten
	}
	return nil
}
