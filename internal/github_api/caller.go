// Package githubapi wraps the GitHub REST API behind lazily paginated
// streams of model records. Pagination, auth headers and response decoding
// are left to go-github; this package only paces calls and translates types.
package githubapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/thep200/github-user-crawler/cfg"
	"github.com/thep200/github-user-crawler/internal/limiter"
	"github.com/thep200/github-user-crawler/internal/model"
	"github.com/thep200/github-user-crawler/pkg/log"
)

const (
	DefaultTimeout = 30 * time.Second
	DefaultPerPage = 100
)

type Caller struct {
	Logger      log.Logger
	Config      *cfg.Config
	PerPage     int
	gh          *gh.Client
	rateLimiter *limiter.RateLimiter
}

// NewCaller builds a client authenticated with token. config.GithubApi.ApiUrl,
// when set, replaces https://api.github.com/ (GitHub Enterprise or tests).
func NewCaller(logger log.Logger, config *cfg.Config, token string) (*Caller, error) {
	timeout := DefaultTimeout
	if config.GithubApi.TimeoutSeconds > 0 {
		timeout = time.Duration(config.GithubApi.TimeoutSeconds) * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = timeout
	}

	client := gh.NewClient(httpClient)
	if config.GithubApi.ApiUrl != "" {
		baseURL := config.GithubApi.ApiUrl
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid github api url %q: %w", config.GithubApi.ApiUrl, err)
		}
		client.BaseURL = u
	}

	perPage := config.GithubApi.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	return &Caller{
		Logger:      logger,
		Config:      config,
		PerPage:     perPage,
		gh:          client,
		rateLimiter: limiter.NewRateLimiter(config.GithubApi.RequestsPerSecond),
	}, nil
}

// SearchUsers streams the users matching query. Search hits carry only the
// login and profile URL.
func (c *Caller) SearchUsers(query string) Stream[*model.User] {
	return newPager(func(ctx context.Context, page int) ([]*model.User, int, error) {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, 0, fmt.Errorf("rate limit wait: %w", err)
		}

		c.Logger.Debug(ctx, "Calling GitHub API: search users q=%q page=%d", query, page)
		opts := &gh.SearchOptions{ListOptions: gh.ListOptions{Page: page, PerPage: c.PerPage}}
		result, resp, err := c.gh.Search.Users(ctx, query, opts)
		if err != nil {
			return nil, 0, wrapError(err, "search users")
		}

		c.Logger.Debug(ctx, "Total users found: %d, page: %d, items received: %d",
			result.GetTotal(), page, len(result.Users))
		return toUsers(result.Users), resp.NextPage, nil
	})
}

// SearchRepositories streams the repositories matching query.
func (c *Caller) SearchRepositories(query string) Stream[*model.Repo] {
	return newPager(func(ctx context.Context, page int) ([]*model.Repo, int, error) {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, 0, fmt.Errorf("rate limit wait: %w", err)
		}

		c.Logger.Debug(ctx, "Calling GitHub API: search repositories q=%q page=%d", query, page)
		opts := &gh.SearchOptions{ListOptions: gh.ListOptions{Page: page, PerPage: c.PerPage}}
		result, resp, err := c.gh.Search.Repositories(ctx, query, opts)
		if err != nil {
			return nil, 0, wrapError(err, "search repositories")
		}

		c.Logger.Debug(ctx, "Total repositories found: %d, page: %d, items received: %d",
			result.GetTotal(), page, len(result.Repositories))
		return toRepos(result.Repositories), resp.NextPage, nil
	})
}

// ListUserRepos streams the public repositories owned by login.
func (c *Caller) ListUserRepos(login string) Stream[*model.Repo] {
	return newPager(func(ctx context.Context, page int) ([]*model.Repo, int, error) {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, 0, fmt.Errorf("rate limit wait: %w", err)
		}

		c.Logger.Debug(ctx, "Calling GitHub API: list repos of %s page=%d", login, page)
		opts := &gh.RepositoryListByUserOptions{
			Type:        "owner",
			ListOptions: gh.ListOptions{Page: page, PerPage: c.PerPage},
		}
		repos, resp, err := c.gh.Repositories.ListByUser(ctx, login, opts)
		if err != nil {
			return nil, 0, wrapError(err, "list user repos")
		}
		return toRepos(repos), resp.NextPage, nil
	})
}

// GetUser fetches the full profile of login.
func (c *Caller) GetUser(ctx context.Context, login string) (*model.User, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	c.Logger.Debug(ctx, "Calling GitHub API: get user %s", login)
	user, _, err := c.gh.Users.Get(ctx, login)
	if err != nil {
		return nil, wrapError(err, "get user")
	}
	return toUser(user), nil
}

// GetRepository fetches owner/name.
func (c *Caller) GetRepository(ctx context.Context, owner, name string) (*model.Repo, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	repo, _, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, wrapError(err, "get repo")
	}
	return toRepo(repo), nil
}

// Probe makes one cheap authenticated call, fetching the public repository
// named by config.GithubApi.ProbeRepo ("owner/name").
func (c *Caller) Probe(ctx context.Context) error {
	owner, name, ok := strings.Cut(c.Config.GithubApi.ProbeRepo, "/")
	if !ok || owner == "" || name == "" {
		return errors.New("probe repository must be in owner/name form")
	}

	if _, err := c.GetRepository(ctx, owner, name); err != nil {
		return err
	}
	c.Logger.Info(ctx, "The test request was successfully executed")
	return nil
}
