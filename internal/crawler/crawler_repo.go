package crawler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thep200/github-user-crawler/cfg"
	"github.com/thep200/github-user-crawler/internal/export"
	"github.com/thep200/github-user-crawler/internal/model"
	"github.com/thep200/github-user-crawler/pkg/log"
)

// RepoCrawler searches repositories per keyword, then exports the distinct
// owners with their full profiles.
type RepoCrawler struct {
	base
	enricher *Enricher
}

func NewRepoCrawler(logger log.Logger, config *cfg.Config, searcher Searcher, publisher Publisher) (*RepoCrawler, error) {
	if searcher == nil {
		return nil, fmt.Errorf("%w: searcher is required", ErrInvalidParameter)
	}
	return &RepoCrawler{
		base: newBase(logger, config, searcher, publisher),
		enricher: &Enricher{
			Logger:     logger,
			Fetcher:    searcher,
			SkipFailed: config.Search.SkipFailedProfiles,
		},
	}, nil
}

func (c *RepoCrawler) Crawl(ctx context.Context) (*Report, error) {
	startTime := time.Now()
	if err := c.validateSearch(); err != nil {
		return nil, err
	}
	if c.Config.Export.ReposFile == "" {
		return nil, fmt.Errorf("%w: repos file is required in %s mode", ErrInvalidParameter, cfg.ModeRepo)
	}
	reposTarget, err := c.target(c.Config.Export.ReposFile, model.RepoMatchColumns)
	if err != nil {
		return nil, err
	}
	usersTarget, err := c.target(c.Config.Export.UsersFile, model.ProfileColumns)
	if err != nil {
		return nil, err
	}

	c.logParams(ctx)
	report := c.newReport()
	defer func() { report.Duration = time.Since(startTime) }()

	repos, searchErr := c.search(ctx)
	reposTable := export.NewTable(model.RepoMatchColumns)
	for i := range repos {
		reposTable.Append(repos[i].Values())
	}
	report.Accepted = len(repos)
	if err := errors.Join(searchErr, c.save(ctx, report, reposTarget, reposTable)); err != nil {
		c.Logger.Error(ctx, "Run %s stopped after %d repositories: %v", c.runID, report.Accepted, err)
		return report, err
	}

	logins := Dedupe(repos)
	c.Logger.Info(ctx, "%d repositories belong to %d distinct users", len(repos), len(logins))

	users, enrichErr := c.enricher.Enrich(ctx, logins)
	if locations := c.Config.Search.Locations; len(locations) > 0 {
		users = FilterByLocation(users, locations)
		c.Logger.Info(ctx, "%d users left after location filter [%s]", len(users), strings.Join(locations, ", "))
	}

	usersTable := export.NewTable(model.ProfileColumns)
	for _, user := range users {
		profile := model.ProfileOf(c.runID, user)
		values := profile.Values()
		if c.Config.Export.HyperlinkURLs {
			values[0] = export.Hyperlink(profile.HTMLURL)
		}
		usersTable.Append(values)
		c.publish(ctx, model.KeyProfile, &profile)
	}
	report.Users = len(users)

	if err := errors.Join(enrichErr, c.save(ctx, report, usersTarget, usersTable)); err != nil {
		c.Logger.Error(ctx, "Run %s stopped after %d users: %v", c.runID, report.Users, err)
		return report, err
	}
	c.Logger.Info(ctx, "Run %s finished: %d repositories, %d users", c.runID, report.Accepted, report.Users)
	return report, nil
}

// search runs one repository search per keyword and keeps at most MaxCount
// repositories for each. An owner may appear under several keywords.
func (c *RepoCrawler) search(ctx context.Context) ([]model.RepoMatch, error) {
	maxCount := c.Config.Search.MaxCount
	matches := model.NewResultSet[model.RepoMatch]()

	for _, keyword := range c.Config.Search.Keywords {
		query := strings.TrimSpace(keyword + " " + c.Config.Search.Query)
		repos := c.Searcher.SearchRepositories(query)

		accepted := 0
		for accepted < maxCount && repos.Next(ctx) {
			repo := repos.Item()
			match := model.RepoMatchOf(c.runID, keyword, repo)
			matches.Append(match)
			accepted++
			c.Logger.Info(ctx, "%s: %d/%d - add %s", keyword, accepted, maxCount, repo.Name)
			c.publish(ctx, model.KeyRepoMatch, &match)
		}
		if err := repos.Err(); err != nil {
			return matches.Items(), fmt.Errorf("%w: search repositories for %q: %w", ErrSearch, keyword, err)
		}
	}
	return matches.Items(), nil
}
