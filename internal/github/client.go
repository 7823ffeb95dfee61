// internal/github/client.go
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	custom_errors "hackathon-importer/internal/errors"
	"hackathon-importer/internal/model"
)

const (
	// Number of repositories requested per listing page
	pageSize = 100
)

// ReadmeCandidates are the README filenames tried, in order, for every repository.
var ReadmeCandidates = []string{"README.md", "readme.md", "README.MD", "README.txt", "README"}

// Client is a wrapper around the go-github client.
type Client struct {
	gh     *github.Client
	logger *slog.Logger
}

// NewClient creates and configures a new Client instance.
// The provided token is used to create an authenticated http.Client. A non-empty
// baseURL points the client at a GitHub Enterprise (or test) host instead of api.github.com.
func NewClient(token, baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{})
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = timeout

	gh := github.NewClient(tc)
	if baseURL != "" {
		var err error
		gh, err = gh.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("configure github base url: %w", err)
		}
	}

	return &Client{
		gh:     gh,
		logger: logger,
	}, nil
}

// ListRepositories fetches every repository visible to the authenticated account,
// regardless of visibility or affiliation. Pages are requested until an empty one comes back.
func (c *Client) ListRepositories(ctx context.Context) ([]model.Repository, error) {
	var all []model.Repository

	opts := &github.RepositoryListByAuthenticatedUserOptions{
		Type: "all",
		ListOptions: github.ListOptions{
			Page:    1,
			PerPage: pageSize,
		},
	}

	for {
		c.logger.Debug("Fetching repositories page", "page", opts.Page)

		repos, resp, err := c.gh.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, &custom_errors.ErrGithubAPI{Op: "list repositories", StatusCode: statusCode(resp), Err: err}
		}
		if len(repos) == 0 {
			break
		}

		for _, r := range repos {
			all = append(all, toInternalRepository(r))
		}
		opts.Page++
	}

	c.logger.Info("Found repositories", "count", len(all))
	return all, nil
}

// FetchReadme returns the decoded content of the first README candidate present in the
// repository. Failures on a candidate are logged and the next one is tried.
func (c *Client) FetchReadme(ctx context.Context, repo model.Repository) (string, bool) {
	logger := c.logger.With("owner", repo.Owner, "repo", repo.Name)

	for _, name := range ReadmeCandidates {
		if ctx.Err() != nil {
			return "", false
		}

		file, _, resp, err := c.gh.Repositories.GetContents(ctx, repo.Owner, repo.Name, name, nil)
		if err != nil {
			logger.Debug("README candidate unavailable", "file", name, "status", statusCode(resp), "error", err)
			continue
		}
		if file == nil {
			logger.Debug("README candidate is a directory", "file", name)
			continue
		}

		content, err := file.GetContent()
		if err != nil {
			logger.Debug("README candidate could not be decoded", "file", name, "error", err)
			continue
		}
		if content == "" {
			continue
		}

		logger.Debug("README found", "file", name, "bytes", len(content))
		return content, true
	}

	return "", false
}

// toInternalRepository translates a github.Repository object to our internal model.Repository.
func toInternalRepository(r *github.Repository) model.Repository {
	return model.Repository{
		GithubRepoID:  r.GetID(),
		Owner:         r.GetOwner().GetLogin(),
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		Description:   r.Description,
		URL:           r.GetHTMLURL(),
		RepoCreatedAt: r.GetCreatedAt().Time,
	}
}

func statusCode(resp *github.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}
	return resp.StatusCode
}
