package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"hackathon-importer/internal/database"
)

// PostgresStore inserts rows into the achievements table directly.
type PostgresStore struct {
	q      database.Querier
	dedupe bool
	logger *slog.Logger
}

// NewPostgresStore creates a store. With dedupe set, a row whose (github_url, year)
// already exists is skipped and reported as zero rows written.
func NewPostgresStore(q database.Querier, dedupe bool, logger *slog.Logger) *PostgresStore {
	return &PostgresStore{q: q, dedupe: dedupe, logger: logger}
}

// Insert writes row, returning 1 on success.
func (s *PostgresStore) Insert(ctx context.Context, row Row) (int, error) {
	if s.dedupe {
		exists, err := s.q.AchievementExists(ctx, database.AchievementExistsParams{
			GithubUrl: row.GithubURL,
			Year:      row.Year,
		})
		if err != nil {
			return 0, fmt.Errorf("check existing achievement: %w", err)
		}
		if exists {
			s.logger.Info("Achievement already stored, skipping", "github_url", row.GithubURL, "year", row.Year)
			return 0, nil
		}
	}

	date, err := time.Parse(time.DateOnly, row.Date)
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", row.Date, err)
	}

	id, err := s.q.CreateAchievement(ctx, database.CreateAchievementParams{
		ID:            uuid.New(),
		Title:         row.Title,
		ProjectName:   row.ProjectName,
		Year:          row.Year,
		Description:   row.Description,
		Category:      row.Category,
		Location:      row.Location,
		Participants:  row.Participants,
		Prize:         row.Prize,
		Technologies:  row.Technologies,
		GithubUrl:     row.GithubURL,
		LinkUrl:       row.LinkURL,
		Position:      row.Position,
		ColorGradient: row.ColorGradient,
		Date:          date,
	})
	if err != nil {
		return 0, fmt.Errorf("insert achievement: %w", err)
	}

	s.logger.Debug("Inserted achievement", "id", id)
	return 1, nil
}
