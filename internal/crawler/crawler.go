// Package crawler runs one search session: it validates the run, searches
// GitHub in user or repo mode, post-processes the candidates and saves the
// result sets to their export targets.
package crawler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thep200/github-user-crawler/cfg"
	"github.com/thep200/github-user-crawler/internal/export"
	githubapi "github.com/thep200/github-user-crawler/internal/github_api"
	"github.com/thep200/github-user-crawler/internal/model"
	"github.com/thep200/github-user-crawler/pkg/log"
)

type Crawler interface {
	Crawl(ctx context.Context) (*Report, error)
}

// Searcher is the part of the GitHub client a run needs.
// *githubapi.Caller implements it.
type Searcher interface {
	ProfileFetcher
	SearchUsers(query string) githubapi.Stream[*model.User]
	SearchRepositories(query string) githubapi.Stream[*model.Repo]
	ListUserRepos(login string) githubapi.Stream[*model.Repo]
}

type ProfileFetcher interface {
	GetUser(ctx context.Context, login string) (*model.User, error)
}

// Publisher receives every accepted record. *kafka.Producer implements it.
type Publisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, interface{}) error { return nil }

// SavedFile is one written export.
type SavedFile struct {
	Path string
	Rows int
}

// Report summarizes a finished or interrupted run.
type Report struct {
	RunID    string
	Mode     string
	Accepted int
	Users    int
	Files    []SavedFile
	Duration time.Duration
}

type base struct {
	Logger    log.Logger
	Config    *cfg.Config
	Searcher  Searcher
	Publisher Publisher
	runID     string
}

func newBase(logger log.Logger, config *cfg.Config, searcher Searcher, publisher Publisher) base {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return base{
		Logger:    logger,
		Config:    config,
		Searcher:  searcher,
		Publisher: publisher,
		runID:     uuid.NewString(),
	}
}

// validateSearch rejects parameters that would make the search meaningless.
func (b *base) validateSearch() error {
	search := b.Config.Search
	if search.MaxCount <= 0 {
		return fmt.Errorf("%w: max count must be positive, got %d", ErrInvalidParameter, search.MaxCount)
	}
	if len(search.Keywords) == 0 {
		return fmt.Errorf("%w: at least one keyword is required", ErrInvalidParameter)
	}
	for _, keyword := range search.Keywords {
		if keyword == "" {
			return fmt.Errorf("%w: keywords must not be empty", ErrInvalidParameter)
		}
	}
	return nil
}

// target resolves path and dry-writes the header so a bad destination fails
// before any search quota is spent.
func (b *base) target(path string, columns []string) (export.Target, error) {
	target, err := export.NewTarget(path)
	if err != nil {
		return export.Target{}, err
	}
	if err := target.Probe(columns); err != nil {
		return export.Target{}, err
	}
	return target, nil
}

func (b *base) save(ctx context.Context, report *Report, target export.Target, table *export.Table) error {
	rows, err := export.Write(target, table)
	if err != nil {
		return fmt.Errorf("%w: %w", export.ErrExportTarget, err)
	}
	b.Logger.Info(ctx, "Data was saved into '%s' file (%d rows).", target.Path, rows)
	report.Files = append(report.Files, SavedFile{Path: target.Path, Rows: rows})
	return nil
}

func (b *base) publish(ctx context.Context, key string, value interface{}) {
	if err := b.Publisher.Publish(ctx, key, value); err != nil {
		b.Logger.Warn(ctx, "Failed to publish %s message: %v", key, err)
	}
}

func (b *base) logParams(ctx context.Context) {
	search := b.Config.Search
	b.Logger.Info(ctx, "Run %s: mode=%s query=%q keywords=[%s] max_count=%d",
		b.runID, search.Mode, search.Query, strings.Join(search.Keywords, ", "), search.MaxCount)
}

func (b *base) newReport() *Report {
	return &Report{RunID: b.runID, Mode: b.Config.Search.Mode}
}
