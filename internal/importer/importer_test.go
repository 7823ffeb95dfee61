package importer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"hackathon-importer/internal/classifier"
	custom_errors "hackathon-importer/internal/errors"
	"hackathon-importer/internal/extractor"
	"hackathon-importer/internal/llm"
	"hackathon-importer/internal/model"
	"hackathon-importer/internal/pacer"
	"hackathon-importer/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// MockSource is a mock of the RepositorySource interface.
type MockSource struct {
	mock.Mock
}

func (m *MockSource) ListRepositories(ctx context.Context) ([]model.Repository, error) {
	args := m.Called(ctx)
	repos, _ := args.Get(0).([]model.Repository)
	return repos, args.Error(1)
}
func (m *MockSource) FetchReadme(ctx context.Context, repo model.Repository) (string, bool) {
	args := m.Called(ctx, repo)
	return args.String(0), args.Bool(1)
}

// MockExtractor is a mock of the Extractor interface.
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, repo model.Repository, readme string) (*model.HackathonProject, error) {
	args := m.Called(ctx, repo, readme)
	p, _ := args.Get(0).(*model.HackathonProject)
	return p, args.Error(1)
}

// MockStore is a mock of the store.Store interface.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Insert(ctx context.Context, row store.Row) (int, error) {
	args := m.Called(ctx, row)
	return args.Int(0), args.Error(1)
}

// countingPacer records how often the importer paused.
type countingPacer struct {
	calls int
}

func (c *countingPacer) Wait(ctx context.Context) error {
	c.calls++
	return ctx.Err()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

func repo(name string, description *string) model.Repository {
	return model.Repository{
		Owner:         "octo",
		Name:          name,
		Description:   description,
		URL:           "https://github.com/octo/" + name,
		RepoCreatedAt: time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC),
	}
}

func project(title, url string) *model.HackathonProject {
	return &model.HackathonProject{
		Title:        title,
		ProjectName:  title,
		Year:         2024,
		Technologies: []string{},
		GithubURL:    url,
		Category:     model.CategoryHackathon,
	}
}

func TestImporter_Run(t *testing.T) {
	ctx := context.Background()

	hack := repo("weather-hack", nil)
	blog := repo("my-blog", strPtr("a blog"))
	noReadme := repo("hackathon-2022", nil)
	declined := repo("space-apps-notes", strPtr("NASA Space Apps entry"))

	t.Run("processes each repository through the pipeline", func(t *testing.T) {
		src := new(MockSource)
		ext := new(MockExtractor)
		st := new(MockStore)
		p := &countingPacer{}

		src.On("ListRepositories", ctx).Return([]model.Repository{hack, blog, noReadme, declined}, nil).Once()
		src.On("FetchReadme", ctx, hack).Return("# Weather", true).Once()
		src.On("FetchReadme", ctx, blog).Return("nothing special", true).Once()
		src.On("FetchReadme", ctx, noReadme).Return("", false).Once()
		src.On("FetchReadme", ctx, declined).Return("notes", true).Once()

		saved := project("HackMIT", hack.URL)
		ext.On("Extract", ctx, hack, "# Weather").Return(saved, nil).Once()
		ext.On("Extract", ctx, declined, "notes").Return(nil, nil).Once()
		st.On("Insert", ctx, store.FromProject(saved)).Return(1, nil).Once()

		im := NewImporter(src, classifier.New(nil), ext, store.NewSink(st, false, discardLogger()), p, discardLogger())
		summary, err := im.Run(ctx)

		require.NoError(t, err)
		assert.Equal(t, 4, summary.TotalRepositories)
		assert.Equal(t, 4, summary.Processed)
		assert.Equal(t, 3, summary.Detected)
		assert.Equal(t, 1, summary.MissingReadme)
		assert.Equal(t, 1, summary.NotExtracted)
		assert.Equal(t, 1, summary.Saved)
		assert.Equal(t, []*model.HackathonProject{saved}, summary.Projects)
		assert.Equal(t, 4, p.calls)
		src.AssertExpectations(t)
		ext.AssertExpectations(t)
		st.AssertExpectations(t)
		ext.AssertNotCalled(t, "Extract", mock.Anything, blog, mock.Anything)
		ext.AssertNotCalled(t, "Extract", mock.Anything, noReadme, mock.Anything)
	})

	t.Run("dry run performs zero writes", func(t *testing.T) {
		src := new(MockSource)
		ext := new(MockExtractor)
		st := new(MockStore)

		repos := []model.Repository{repo("hack-a", nil), repo("hack-b", nil), repo("hack-c", nil)}
		src.On("ListRepositories", ctx).Return(repos, nil).Once()
		for _, r := range repos {
			src.On("FetchReadme", ctx, r).Return("readme", true).Once()
			ext.On("Extract", ctx, r, "readme").Return(project(r.Name, r.URL), nil).Once()
		}

		im := NewImporter(src, classifier.New(nil), ext, store.NewSink(st, true, discardLogger()), pacer.None{}, discardLogger())
		summary, err := im.Run(ctx)

		require.NoError(t, err)
		assert.Len(t, summary.Projects, 3)
		assert.Equal(t, 0, summary.Saved)
		st.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("live mode issues one insert per project and survives failures", func(t *testing.T) {
		src := new(MockSource)
		ext := new(MockExtractor)
		st := new(MockStore)

		a, b := repo("hack-a", nil), repo("hack-b", nil)
		pa, pb := project("A", a.URL), project("B", b.URL)
		src.On("ListRepositories", ctx).Return([]model.Repository{a, b}, nil).Once()
		src.On("FetchReadme", ctx, mock.Anything).Return("readme", true).Twice()
		ext.On("Extract", ctx, a, "readme").Return(pa, nil).Once()
		ext.On("Extract", ctx, b, "readme").Return(pb, nil).Once()
		st.On("Insert", ctx, store.FromProject(pa)).Return(0, errors.New("insert failed")).Once()
		st.On("Insert", ctx, store.FromProject(pb)).Return(1, nil).Once()

		im := NewImporter(src, classifier.New(nil), ext, store.NewSink(st, false, discardLogger()), pacer.None{}, discardLogger())
		summary, err := im.Run(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, summary.Saved)
		assert.Equal(t, 1, summary.SaveFailures)
		st.AssertNumberOfCalls(t, "Insert", 2)
	})

	t.Run("listing errors abort the run", func(t *testing.T) {
		src := new(MockSource)
		ext := new(MockExtractor)
		listErr := &custom_errors.ErrGithubAPI{Op: "list repositories", StatusCode: 401}
		src.On("ListRepositories", ctx).Return(nil, listErr).Once()

		im := NewImporter(src, classifier.New(nil), ext, store.NewSink(nil, true, discardLogger()), pacer.None{}, discardLogger())
		summary, err := im.Run(ctx)

		assert.Nil(t, summary)
		var apiErr *custom_errors.ErrGithubAPI
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 401, apiErr.StatusCode)
		src.AssertNotCalled(t, "FetchReadme", mock.Anything, mock.Anything)
	})

	t.Run("stops between repositories when cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		defer cancel()

		src := new(MockSource)
		ext := new(MockExtractor)
		a, b := repo("notes", nil), repo("dotfiles", nil)
		src.On("ListRepositories", cctx).Return([]model.Repository{a, b}, nil).Once()
		src.On("FetchReadme", cctx, a).Return("", false).Run(func(mock.Arguments) { cancel() }).Once()

		im := NewImporter(src, classifier.New(nil), ext, store.NewSink(nil, true, discardLogger()), pacer.None{}, discardLogger())
		summary, err := im.Run(cctx)

		assert.ErrorIs(t, err, context.Canceled)
		require.NotNil(t, summary)
		assert.Equal(t, 1, summary.Processed)
		src.AssertNotCalled(t, "FetchReadme", mock.Anything, b)
	})
}

// TestImporter_Fallback runs the real extractor against a failing model: an obviously
// named repository still produces a record, a generic one does not.
func TestImporter_Fallback(t *testing.T) {
	ctx := context.Background()
	failing := llm.CompleterFunc(func(context.Context, llm.Request) (string, error) {
		return "", errors.New("model unavailable")
	})

	src := new(MockSource)
	st := new(MockStore)
	nasa, random := repo("nasa-space-apps-2024", nil), repo("random-project", strPtr("a hack"))
	src.On("ListRepositories", ctx).Return([]model.Repository{nasa, random}, nil).Once()
	src.On("FetchReadme", ctx, nasa).Return("Built for NASA Space Apps", true).Once()
	src.On("FetchReadme", ctx, random).Return("readme", true).Once()
	st.On("Insert", ctx, mock.MatchedBy(func(row store.Row) bool {
		return row.Title == "Nasa Space Apps 2024" && row.Year == "2024" && row.Date == "2024-01-01"
	})).Return(1, nil).Once()

	ext := extractor.New(failing, nil, discardLogger())
	im := NewImporter(src, classifier.New(nil), ext, store.NewSink(st, false, discardLogger()), pacer.None{}, discardLogger())
	summary, err := im.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Detected)
	assert.Equal(t, 1, summary.Saved)
	assert.Equal(t, 1, summary.NotExtracted)
	st.AssertExpectations(t)
}
