// internal/database/queries.go
package database

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Querier is the set of queries the importer runs against Postgres.
type Querier interface {
	AchievementExists(ctx context.Context, arg AchievementExistsParams) (bool, error)
	CreateAchievement(ctx context.Context, arg CreateAchievementParams) (uuid.UUID, error)
	ListAchievementsByGithubURL(ctx context.Context, githubURL string) ([]Achievement, error)
}

var _ Querier = (*Queries)(nil)

// Achievement is a row of the achievements table.
type Achievement struct {
	ID            uuid.UUID
	Title         string
	ProjectName   *string
	Year          *string
	Description   *string
	Category      string
	Location      *string
	Participants  *string
	Prize         *string
	Technologies  []string
	GithubUrl     *string
	LinkUrl       *string
	Position      *string
	ColorGradient *string
	Date          time.Time
	CreatedAt     time.Time
}

const achievementExists = `-- name: AchievementExists :one
SELECT EXISTS (
    SELECT 1 FROM achievements WHERE github_url = $1 AND year = $2
)
`

type AchievementExistsParams struct {
	GithubUrl string
	Year      string
}

func (q *Queries) AchievementExists(ctx context.Context, arg AchievementExistsParams) (bool, error) {
	row := q.db.QueryRow(ctx, achievementExists, arg.GithubUrl, arg.Year)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const createAchievement = `-- name: CreateAchievement :one
INSERT INTO achievements (
    id, title, project_name, year, description, category, location, participants,
    prize, technologies, github_url, link_url, position, color_gradient, date
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
)
RETURNING id
`

type CreateAchievementParams struct {
	ID            uuid.UUID
	Title         string
	ProjectName   string
	Year          string
	Description   string
	Category      string
	Location      *string
	Participants  *string
	Prize         *string
	Technologies  []string
	GithubUrl     string
	LinkUrl       *string
	Position      *string
	ColorGradient string
	Date          time.Time
}

func (q *Queries) CreateAchievement(ctx context.Context, arg CreateAchievementParams) (uuid.UUID, error) {
	row := q.db.QueryRow(ctx, createAchievement,
		arg.ID,
		arg.Title,
		arg.ProjectName,
		arg.Year,
		arg.Description,
		arg.Category,
		arg.Location,
		arg.Participants,
		arg.Prize,
		arg.Technologies,
		arg.GithubUrl,
		arg.LinkUrl,
		arg.Position,
		arg.ColorGradient,
		arg.Date,
	)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

const listAchievementsByGithubURL = `-- name: ListAchievementsByGithubURL :many
SELECT id, title, project_name, year, description, category, location, participants,
       prize, technologies, github_url, link_url, position, color_gradient, date, created_at
FROM achievements
WHERE github_url = $1
ORDER BY created_at ASC
`

func (q *Queries) ListAchievementsByGithubURL(ctx context.Context, githubURL string) ([]Achievement, error) {
	rows, err := q.db.Query(ctx, listAchievementsByGithubURL, githubURL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Achievement
	for rows.Next() {
		var i Achievement
		if err := rows.Scan(
			&i.ID,
			&i.Title,
			&i.ProjectName,
			&i.Year,
			&i.Description,
			&i.Category,
			&i.Location,
			&i.Participants,
			&i.Prize,
			&i.Technologies,
			&i.GithubUrl,
			&i.LinkUrl,
			&i.Position,
			&i.ColorGradient,
			&i.Date,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
