package crawler

import (
	"context"
	"fmt"

	"github.com/thep200/github-user-crawler/internal/model"
	"github.com/thep200/github-user-crawler/pkg/log"
)

// Enricher fetches full profiles one login at a time.
type Enricher struct {
	Logger  log.Logger
	Fetcher ProfileFetcher
	// SkipFailed logs and skips a login whose profile cannot be fetched
	// instead of stopping.
	SkipFailed bool
}

// Enrich returns the profiles of logins in order. Without SkipFailed the
// first failure stops enrichment; the profiles fetched so far are returned
// with an ErrEnrichment error.
func (e *Enricher) Enrich(ctx context.Context, logins []string) ([]*model.User, error) {
	users := make([]*model.User, 0, len(logins))
	for i, login := range logins {
		user, err := e.Fetcher.GetUser(ctx, login)
		if err != nil {
			if e.SkipFailed && ctx.Err() == nil {
				e.Logger.Warn(ctx, "Skip profile of %s: %v", login, err)
				continue
			}
			return users, fmt.Errorf("%w: profile of %s: %w", ErrEnrichment, login, err)
		}
		users = append(users, user)
		e.Logger.Debug(ctx, "%d/%d - profile %s", i+1, len(logins), user.DisplayName())
	}
	return users, nil
}
