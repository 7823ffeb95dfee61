// internal/importer/importer.go
package importer

import (
	"context"
	"log/slog"

	"hackathon-importer/internal/model"
	"hackathon-importer/internal/pacer"
)

// RepositorySource lists repositories and fetches their README.
type RepositorySource interface {
	ListRepositories(ctx context.Context) ([]model.Repository, error)
	FetchReadme(ctx context.Context, repo model.Repository) (string, bool)
}

// Classifier decides whether a repository is a hackathon candidate.
type Classifier interface {
	IsHackathon(repo model.Repository, readme string) bool
}

// Extractor turns a candidate into a project; nil means no project.
type Extractor interface {
	Extract(ctx context.Context, repo model.Repository, readme string) (*model.HackathonProject, error)
}

// Saver persists a project and reports success.
type Saver interface {
	Save(ctx context.Context, p *model.HackathonProject) bool
	DryRun() bool
}

// Summary describes the outcome of one run.
type Summary struct {
	TotalRepositories int
	Processed         int
	Detected          int
	MissingReadme     int
	NotExtracted      int
	Saved             int
	SaveFailures      int
	Projects          []*model.HackathonProject
}

// Importer orchestrates listing, classification, extraction and persistence.
type Importer struct {
	source     RepositorySource
	classifier Classifier
	extractor  Extractor
	saver      Saver
	pacer      pacer.Pacer
	logger     *slog.Logger
}

// NewImporter creates a new Importer instance.
func NewImporter(source RepositorySource, classifier Classifier, extractor Extractor, saver Saver, p pacer.Pacer, logger *slog.Logger) *Importer {
	return &Importer{
		source:     source,
		classifier: classifier,
		extractor:  extractor,
		saver:      saver,
		pacer:      p,
		logger:     logger,
	}
}

// Run processes every repository once, sequentially. It returns an error only when the
// listing fails or ctx is cancelled; the summary covers whatever was processed.
func (im *Importer) Run(ctx context.Context) (*Summary, error) {
	mode := "LIVE"
	if im.saver.DryRun() {
		mode = "DRY RUN"
	}
	im.logger.Info("Starting GitHub hackathon importer", "mode", mode)

	repos, err := im.source.ListRepositories(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{TotalRepositories: len(repos)}
	for _, repo := range repos {
		if err := ctx.Err(); err != nil {
			im.logger.Warn("Run cancelled", "processed", summary.Processed, "reason", err)
			return summary, err
		}

		summary.Processed++
		im.logger.Info("Processing repository", "n", summary.Processed, "total", summary.TotalRepositories, "repo", repo.Name)

		if err := im.processRepo(ctx, repo, summary); err != nil {
			return summary, err
		}

		if err := im.pacer.Wait(ctx); err != nil {
			im.logger.Warn("Run cancelled", "processed", summary.Processed, "reason", err)
			return summary, err
		}
	}

	im.logger.Info("Import finished",
		"total_repositories", summary.TotalRepositories,
		"hackathon_projects", len(summary.Projects),
		"saved", summary.Saved,
		"save_failures", summary.SaveFailures,
		"missing_readme", summary.MissingReadme,
		"not_extracted", summary.NotExtracted,
	)
	if im.saver.DryRun() {
		im.logger.Info("This was a dry run; nothing was written")
	}
	return summary, nil
}

// processRepo handles fetch, classify, extract and save for a single repository.
func (im *Importer) processRepo(ctx context.Context, repo model.Repository, summary *Summary) error {
	logger := im.logger.With("owner", repo.Owner, "repo", repo.Name)

	readme, found := im.source.FetchReadme(ctx, repo)
	if !im.classifier.IsHackathon(repo, readme) {
		logger.Debug("Not a hackathon project")
		return nil
	}
	summary.Detected++
	logger.Info("Detected hackathon project")

	if !found {
		summary.MissingReadme++
		logger.Warn("No README found, skipping extraction")
		return nil
	}

	project, err := im.extractor.Extract(ctx, repo, readme)
	if err != nil {
		return err
	}
	if project == nil {
		summary.NotExtracted++
		logger.Info("No project extracted")
		return nil
	}

	summary.Projects = append(summary.Projects, project)
	if !im.saver.Save(ctx, project) {
		summary.SaveFailures++
		return nil
	}
	if !im.saver.DryRun() {
		summary.Saved++
	}
	return nil
}
