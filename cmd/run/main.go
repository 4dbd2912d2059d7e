package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/thep200/github-user-crawler/cfg"
	"github.com/thep200/github-user-crawler/internal/crawler"
	"github.com/thep200/github-user-crawler/internal/credential"
	githubapi "github.com/thep200/github-user-crawler/internal/github_api"
	"github.com/thep200/github-user-crawler/pkg/kafka"
	"github.com/thep200/github-user-crawler/pkg/log"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawler",
		Short: "Find GitHub users by the keywords of their repositories",
		Long: `Searches GitHub for users (user mode) or repositories (repo mode), keeps the
candidates whose repositories match the keywords and exports them to .xlsx or .csv.

Values come from cfg/yaml/mode.yaml (or --config), GHCRAWLER_* environment
variables and the flags below, flags winning.`,
		SilenceUsage: true,
		RunE:         runCrawler,
	}

	flags := cmd.Flags()
	flags.String("config", "", "Path to a YAML config file (default cfg/yaml/mode.yaml)")
	flags.String("mode", cfg.ModeUser, "Search mode: user or repo")
	flags.StringP("query", "q", "", "Search qualifiers passed to GitHub verbatim, e.g. \"language:python location:Moscow\"")
	flags.StringArrayP("keyword", "k", nil, "Keyword to look for in repository names and descriptions (repeatable)")
	flags.IntP("max-count", "n", 0, "Users to accept (user mode) or repositories per keyword (repo mode)")
	flags.StringP("output", "o", "", "Users file, .xlsx or .csv")
	flags.String("repos-output", "", "Repositories file in repo mode, .xlsx or .csv")
	flags.StringArray("location", nil, "Keep only users whose location contains this text (repeatable, repo mode)")
	flags.String("token", "", "GitHub access token (defaults to GITHUB_TOKEN)")
	flags.String("token-file", "", "File holding the GitHub access token")
	flags.Bool("hyperlink", false, "Write profile URLs as HYPERLINK formulas")
	flags.Bool("skip-failed-profiles", false, "Skip users whose profile cannot be fetched instead of stopping")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	return cmd
}

// flagBindings maps config keys to the flags overriding them.
var flagBindings = map[string]string{
	"search.mode":                  "mode",
	"search.query":                 "query",
	"search.keywords":              "keyword",
	"search.max_count":             "max-count",
	"search.locations":             "location",
	"search.skip_failed_profiles":  "skip-failed-profiles",
	"export.users_file":            "output",
	"export.repos_file":            "repos-output",
	"export.hyperlink_urls":        "hyperlink",
	"github_api.access_token":      "token",
	"github_api.access_token_path": "token-file",
	"log.level":                    "log-level",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCrawler(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := log.FromConfig(config)
	if err != nil {
		return err
	}
	if s, ok := logger.(interface{ Sync() error }); ok {
		defer s.Sync()
	}

	token, err := credential.Load(credential.SourceFromConfig(config))
	if err != nil {
		return err
	}
	caller, err := githubapi.NewCaller(logger, config, token)
	if err != nil {
		return err
	}
	if err := credential.Validate(ctx, caller); err != nil {
		return err
	}

	var publisher crawler.Publisher
	if config.Kafka.Enabled {
		producer, err := kafka.NewProducer(config, logger)
		if err != nil {
			return err
		}
		defer producer.Close()
		publisher = producer
	}

	c, err := crawler.FactoryCrawler(config.Search.Mode, logger, config, caller, publisher)
	if err != nil {
		return err
	}

	logger.Info(ctx, "Starting GitHub %s crawler", config.Search.Mode)
	report, err := c.Crawl(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn(ctx, "Interrupted, partial results were saved")
		}
		return err
	}
	for _, file := range report.Files {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows\n", file.Path, file.Rows)
	}
	return nil
}

// loadConfig merges the config file, GHCRAWLER_* env and the flags of cmd,
// then validates the result.
func loadConfig(cmd *cobra.Command) (*cfg.Config, error) {
	opts := []cfg.ViperOption{cfg.WithFlags(cmd.Flags(), flagBindings)}
	if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
		opts = append(opts, cfg.WithConfigFile(configPath))
	}
	loader, err := cfg.NewViperLoader(opts...)
	if err != nil {
		return nil, err
	}
	config, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", crawler.ErrInvalidParameter, err)
	}
	return config, nil
}
