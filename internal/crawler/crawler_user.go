package crawler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thep200/github-user-crawler/cfg"
	"github.com/thep200/github-user-crawler/internal/export"
	"github.com/thep200/github-user-crawler/internal/model"
	"github.com/thep200/github-user-crawler/pkg/log"
)

// UserCrawler searches users and accepts each one that owns a repository
// whose name or description contains a keyword.
type UserCrawler struct {
	base
}

func NewUserCrawler(logger log.Logger, config *cfg.Config, searcher Searcher, publisher Publisher) (*UserCrawler, error) {
	if searcher == nil {
		return nil, fmt.Errorf("%w: searcher is required", ErrInvalidParameter)
	}
	return &UserCrawler{base: newBase(logger, config, searcher, publisher)}, nil
}

func (c *UserCrawler) Crawl(ctx context.Context) (*Report, error) {
	startTime := time.Now()
	if err := c.validateSearch(); err != nil {
		return nil, err
	}
	target, err := c.target(c.Config.Export.UsersFile, model.UserMatchColumns)
	if err != nil {
		return nil, err
	}

	c.logParams(ctx)
	report := c.newReport()
	matches, searchErr := c.search(ctx)

	table := export.NewTable(model.UserMatchColumns)
	for i := range matches {
		table.Append(matches[i].Values())
	}
	report.Accepted = len(matches)
	saveErr := c.save(ctx, report, target, table)
	report.Duration = time.Since(startTime)

	if err := errors.Join(searchErr, saveErr); err != nil {
		c.Logger.Error(ctx, "Run %s stopped after %d users: %v", c.runID, report.Accepted, err)
		return report, err
	}
	c.Logger.Info(ctx, "Run %s finished in %s: %d users", c.runID, report.Duration, report.Accepted)
	return report, nil
}

// search walks the user stream until MaxCount users are accepted, the
// stream runs out or a call fails. Matches accepted before a failure are
// returned with the error.
func (c *UserCrawler) search(ctx context.Context) ([]model.UserMatch, error) {
	maxCount := c.Config.Search.MaxCount
	matches := model.NewResultSet[model.UserMatch]()

	users := c.Searcher.SearchUsers(c.Config.Search.Query)
	for matches.Len() < maxCount && users.Next(ctx) {
		candidate := users.Item()

		repo, err := c.firstMatch(ctx, candidate.Login)
		if err != nil {
			return matches.Items(), err
		}
		if repo == nil {
			continue
		}

		user, err := c.Searcher.GetUser(ctx, candidate.Login)
		if err != nil {
			return matches.Items(), fmt.Errorf("%w: fetch profile of %s: %w", ErrSearch, candidate.Login, err)
		}
		if user.HTMLURL == nil {
			user.HTMLURL = candidate.HTMLURL
		}

		match := model.UserMatchOf(c.runID, user, repo)
		n := matches.Append(match)
		c.Logger.Info(ctx, "%d/%d - add %s", n, maxCount, user.DisplayName())
		c.publish(ctx, model.KeyUserMatch, &match)
	}
	if err := users.Err(); err != nil {
		return matches.Items(), fmt.Errorf("%w: search users: %w", ErrSearch, err)
	}
	return matches.Items(), nil
}

// firstMatch returns the first repository of login whose text contains a
// keyword, or nil. Remaining repositories are not fetched.
func (c *UserCrawler) firstMatch(ctx context.Context, login string) (*model.Repo, error) {
	repos := c.Searcher.ListUserRepos(login)
	for repos.Next(ctx) {
		repo := repos.Item()
		if _, ok := MatchKeyword(repo.Text(), c.Config.Search.Keywords); ok {
			return repo, nil
		}
	}
	if err := repos.Err(); err != nil {
		return nil, fmt.Errorf("%w: list repos of %s: %w", ErrSearch, login, err)
	}
	return nil, nil
}
