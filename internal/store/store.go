// Package store persists hackathon projects to a remote table.
package store

import (
	"context"
	"fmt"
	"strconv"

	"hackathon-importer/internal/model"
)

// Store inserts one row and reports how many rows were written.
type Store interface {
	Insert(ctx context.Context, row Row) (int, error)
}

// Row is the column mapping sent to the datastore for one project.
type Row struct {
	Title         string   `json:"title"`
	ProjectName   string   `json:"project_name"`
	Year          string   `json:"year"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Location      *string  `json:"location"`
	Participants  *string  `json:"participants"`
	Prize         *string  `json:"prize"`
	Technologies  []string `json:"technologies"`
	GithubURL     string   `json:"github_url"`
	LinkURL       *string  `json:"link_url"`
	Position      *string  `json:"position"`
	ColorGradient string   `json:"color_gradient"`
	Date          string   `json:"date"`
}

// FromProject serializes p: numbers become strings, a zero or missing participant
// count becomes null, technologies are never null and date is January 1st of the year.
func FromProject(p *model.HackathonProject) Row {
	row := Row{
		Title:         p.Title,
		ProjectName:   p.ProjectName,
		Year:          strconv.Itoa(p.Year),
		Description:   p.Description,
		Category:      p.Category,
		Location:      p.Location,
		Prize:         p.Prize,
		Technologies:  p.Technologies,
		GithubURL:     p.GithubURL,
		LinkURL:       p.LinkURL,
		Position:      p.Position,
		ColorGradient: p.ColorGradient,
		Date:          fmt.Sprintf("%04d-01-01", p.Year),
	}
	if p.Participants != nil && *p.Participants != 0 {
		s := strconv.Itoa(*p.Participants)
		row.Participants = &s
	}
	if row.Technologies == nil {
		row.Technologies = []string{}
	}
	if row.Category == "" {
		row.Category = model.CategoryHackathon
	}
	return row
}
