// Package extractor turns a hackathon repository and its README into a structured
// project record, asking a language model first and falling back to repository
// metadata when the model path fails on an obviously named repository.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"hackathon-importer/internal/classifier"
	"hackathon-importer/internal/llm"
	"hackathon-importer/internal/model"
)

// Extractor extracts HackathonProject records with a language model.
type Extractor struct {
	llm              llm.Completer
	strongIndicators []string
	logger           *slog.Logger
}

// New creates an Extractor. An empty indicator list selects classifier.DefaultStrongIndicators.
func New(completer llm.Completer, strongIndicators []string, logger *slog.Logger) *Extractor {
	indicators := classifier.Normalize(strongIndicators)
	if len(indicators) == 0 {
		indicators = classifier.DefaultStrongIndicators
	}
	return &Extractor{
		llm:              completer,
		strongIndicators: indicators,
		logger:           logger,
	}
}

// Extract returns the project described by repo and readme, or nil when the repository
// is not a hackathon project or extraction failed without a usable fallback. The only
// error returned is the context's.
func (e *Extractor) Extract(ctx context.Context, repo model.Repository, readme string) (*model.HackathonProject, error) {
	logger := e.logger.With("repo", repo.Name)
	logger.Info("Analyzing repository with language model")

	project, err := e.extract(ctx, repo, readme)
	if err == nil {
		return project, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	logger.Warn("Extraction failed", "error", err, "error_type", fmt.Sprintf("%T", err))
	if e.hasStrongIndicator(repo.Name) {
		logger.Info("Using fallback record from repository metadata")
		return Fallback(repo), nil
	}
	return nil, nil
}

// extract runs the model path. A nil project with a nil error is a negative result.
func (e *Extractor) extract(ctx context.Context, repo model.Repository, readme string) (*model.HackathonProject, error) {
	logger := e.logger.With("repo", repo.Name)

	raw, err := e.llm.Complete(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(repo, readme),
		Temperature: temperature,
		MaxTokens:   maxOutputTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("complete: %w", err)
	}

	text := stripFences(raw)
	if isEmptyResponse(text) {
		logger.Info("Model returned no data")
		return nil, nil
	}

	ext, err := parseExtraction(text)
	if errors.Is(err, errNotJSON) {
		logger.Warn("Model output is not JSON", "error", err, "raw", text)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if ext.IsHackathon != nil && !*ext.IsHackathon {
		logger.Info("Model classified repository as not a hackathon project")
		return nil, nil
	}

	title := clean(ext.Title)
	projectName := clean(ext.ProjectName)
	if title == nil && projectName == nil {
		logger.Info("Model output has neither title nor project name")
		return nil, nil
	}

	return buildProject(repo, ext, title, projectName), nil
}

func buildProject(repo model.Repository, ext *extraction, title, projectName *string) *model.HackathonProject {
	p := &model.HackathonProject{
		Title:        repo.Name,
		ProjectName:  repo.Name,
		Year:         repo.RepoCreatedAt.Year(),
		Description:  repo.DescriptionOr(""),
		Location:     clean(ext.Location),
		Participants: ext.Participants.v,
		Prize:        clean(ext.Prize),
		Technologies: []string{},
		GithubURL:    repo.URL,
		LinkURL:      clean(ext.LinkURL),
		Category:     model.CategoryHackathon,
		Position:     clean(ext.Position),
	}
	if title != nil {
		p.Title = *title
	}
	if projectName != nil {
		p.ProjectName = *projectName
	}
	if ext.Year.v != nil && *ext.Year.v > 0 {
		p.Year = *ext.Year.v
	}
	if d := clean(ext.Description); d != nil {
		p.Description = *d
	}
	p.Description = truncateRunes(p.Description, MaxDescriptionRunes)

	for _, tech := range ext.Technologies {
		if tech = strings.TrimSpace(tech); tech != "" {
			p.Technologies = append(p.Technologies, tech)
		}
	}

	p.ColorGradient = ColorGradient(p.Title)
	return p
}

// Fallback builds a minimal project from repository metadata alone.
func Fallback(repo model.Repository) *model.HackathonProject {
	title := Humanize(repo.Name)
	if title == "" {
		title = repo.Name
	}
	return &model.HackathonProject{
		Title:         title,
		ProjectName:   repo.Name,
		Year:          repo.RepoCreatedAt.Year(),
		Description:   truncateRunes(repo.DescriptionOr(""), MaxDescriptionRunes),
		Technologies:  []string{},
		GithubURL:     repo.URL,
		Category:      model.CategoryHackathon,
		ColorGradient: ColorGradient(title),
	}
}

func (e *Extractor) hasStrongIndicator(name string) bool {
	lower := strings.ToLower(name)
	for _, ind := range e.strongIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}
