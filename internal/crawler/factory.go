package crawler

import (
	"fmt"

	"github.com/thep200/github-user-crawler/cfg"
	"github.com/thep200/github-user-crawler/pkg/log"
)

func FactoryCrawler(mode string, logger log.Logger, config *cfg.Config, searcher Searcher, publisher Publisher) (Crawler, error) {
	switch mode {
	case cfg.ModeUser:
		return NewUserCrawler(logger, config, searcher, publisher)
	case cfg.ModeRepo:
		return NewRepoCrawler(logger, config, searcher, publisher)
	default:
		return nil, fmt.Errorf("%w: unsupported crawler mode: %q", ErrInvalidParameter, mode)
	}
}
