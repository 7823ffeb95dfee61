// internal/model/models.go
package model

import "time"

// CategoryHackathon is the category tag every imported project carries.
const CategoryHackathon = "hackathon"

// Repository represents the metadata of a GitHub repository as returned by the listing API.
type Repository struct {
	GithubRepoID  int64
	Owner         string
	Name          string
	FullName      string
	Description   *string
	URL           string
	RepoCreatedAt time.Time
}

// DescriptionOr returns the repository description, or fallback when it is unset.
func (r *Repository) DescriptionOr(fallback string) string {
	if r.Description == nil || *r.Description == "" {
		return fallback
	}
	return *r.Description
}

// HackathonProject is the structured record extracted for one hackathon repository.
type HackathonProject struct {
	Title         string   `json:"title" validate:"required"`
	ProjectName   string   `json:"project_name" validate:"required"`
	Year          int      `json:"year" validate:"gte=0"`
	Description   string   `json:"description" validate:"max=500"`
	Location      *string  `json:"location"`
	Participants  *int     `json:"participants"`
	Prize         *string  `json:"prize"`
	Technologies  []string `json:"technologies"`
	GithubURL     string   `json:"github_url" validate:"required"`
	LinkURL       *string  `json:"link_url"`
	Category      string   `json:"category" validate:"required"`
	Position      *string  `json:"position"`
	ColorGradient string   `json:"color_gradient"`
}
