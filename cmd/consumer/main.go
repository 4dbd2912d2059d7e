package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/thep200/github-user-crawler/cfg"
	"github.com/thep200/github-user-crawler/internal/archive"
	"github.com/thep200/github-user-crawler/internal/model"
	"github.com/thep200/github-user-crawler/pkg/db"
	"github.com/thep200/github-user-crawler/pkg/kafka"
	"github.com/thep200/github-user-crawler/pkg/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (default cfg/yaml/mode.yaml)")
	httpAddr := flag.String("http", "", "Serve the archive as JSON on this address, e.g. :8080 (disabled when empty)")
	flag.Parse()

	// Load configuration
	opts := []cfg.ViperOption{cfg.WithWatch(true)}
	if *configPath != "" {
		opts = append(opts, cfg.WithConfigFile(*configPath))
	}
	loader, err := cfg.NewViperLoader(opts...)
	if err != nil {
		fmt.Printf("Failed to create config loader: %v\n", err)
		os.Exit(1)
	}
	config, err := loader.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger, err := log.FromConfig(config)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	if csl, ok := logger.(*log.CslLogger); ok {
		loader.RegisterConfigChangeCallback(func(c *cfg.Config) {
			csl.SetLevel(log.ParseLevel(c.Log.Level))
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup database
	mysql, err := db.NewMysql(config)
	if err != nil {
		logger.Error(ctx, "Failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer mysql.Close()

	userMatchMd, _ := model.NewUserMatch(config, logger, mysql)
	repoMatchMd, _ := model.NewRepoMatch(config, logger, mysql)
	profileMd, _ := model.NewProfile(config, logger, mysql)
	if err := mysql.Migrate(userMatchMd, repoMatchMd, profileMd); err != nil {
		logger.Error(ctx, "Failed to migrate database: %v", err)
		os.Exit(1)
	}

	consumer, err := kafka.NewConsumer(config, logger)
	if err != nil {
		logger.Error(ctx, "Failed to create consumer: %v", err)
		os.Exit(1)
	}
	defer consumer.Close()

	var g errgroup.Group
	userMatches := make(chan model.UserMatch, batchSize*2)
	repoMatches := make(chan model.RepoMatch, batchSize*2)
	profiles := make(chan model.Profile, batchSize*2)

	g.Go(func() error {
		processBatched(ctx, "user matches", userMatches, batchSize, batchTimeout, logger, userMatchMd.CreateBatch)
		return nil
	})
	g.Go(func() error {
		processBatched(ctx, "repo matches", repoMatches, batchSize, batchTimeout, logger, repoMatchMd.CreateBatch)
		return nil
	})
	g.Go(func() error {
		processBatched(ctx, "profiles", profiles, batchSize, batchTimeout, logger, profileMd.CreateBatch)
		return nil
	})

	consumer.RegisterHandler(model.KeyUserMatch, enqueue(ctx, userMatches))
	consumer.RegisterHandler(model.KeyRepoMatch, enqueue(ctx, repoMatches))
	consumer.RegisterHandler(model.KeyProfile, enqueue(ctx, profiles))

	// Setup signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	g.Go(func() error {
		return consumer.Start(ctx)
	})
	logger.Info(ctx, "Archive consumer started successfully")

	var server *archive.Server
	if *httpAddr != "" {
		server, err = archive.NewServer(logger, config, mysql, *httpAddr)
		if err != nil {
			logger.Error(ctx, "Failed to create archive server: %v", err)
			os.Exit(1)
		}
		go func() {
			if err := server.Start(); err != nil {
				logger.Error(ctx, "Archive server failed: %v", err)
			}
		}()
	}

	<-sigCh
	logger.Info(ctx, "Received shutdown signal, gracefully shutting down...")
	if server != nil {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		if err := server.Stop(shutdownCtx); err != nil {
			logger.Error(ctx, "Error during archive server shutdown: %v", err)
		}
		cancelShutdown()
	}
	cancel()
	if err := g.Wait(); err != nil {
		logger.Error(ctx, "Consumer error: %v", err)
	}
}
