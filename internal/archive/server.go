// Package archive serves the MySQL archive filled by the consumer as a
// read-only JSON API.
package archive

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/thep200/github-user-crawler/cfg"
	"github.com/thep200/github-user-crawler/pkg/db"
	"github.com/thep200/github-user-crawler/pkg/log"
)

type Server struct {
	Logger log.Logger
	Config *cfg.Config
	MySQL  *db.Mysql
	server *http.Server
	addr   string
}

func NewServer(logger log.Logger, config *cfg.Config, mysql *db.Mysql, addr string) (*Server, error) {
	if addr == "" {
		return nil, errors.New("listen address is required")
	}
	return &Server{
		Logger: logger,
		Config: config,
		MySQL:  mysql,
		addr:   addr,
	}, nil
}

// Start blocks until the server is stopped.
func (s *Server) Start() error {
	gormDB, err := s.MySQL.Db()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	mux := http.NewServeMux()
	NewHandler(s.Logger, NewGormStore(gormDB)).RegisterRoutes(mux)

	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.Logger.Info(context.Background(), "Starting archive server on %s", s.addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		s.Logger.Info(ctx, "Shutting down archive server")
		return s.server.Shutdown(ctx)
	}
	return nil
}
