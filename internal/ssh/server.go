package ssh

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bts "github.com/charmbracelet/wish/bubbletea"
	wishlog "github.com/charmbracelet/wish/logging"
	"golang.org/x/sync/errgroup"

	"github.com/pfassina/labtracker/internal/app"
	"github.com/pfassina/labtracker/internal/config"
)

const shutdownTimeout = 10 * time.Second

// Server wraps a Wish SSH server.
type Server struct {
	server *ssh.Server
	logger *log.Logger
}

// New creates a new SSH server serving the inventory in deps. The host key
// lives in the data directory and is generated on first start.
func New(cfg config.Config, deps app.Deps) (*Server, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	hostKeyPath := filepath.Join(cfg.DataDir, "ssh_host_key")

	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}

	s, err := wish.NewServer(
		wish.WithAddress(cfg.Listen),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bts.Middleware(NewHandler(cfg, deps)),
			activeterm.Middleware(),
			wishlog.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create ssh server: %w", err)
	}

	return &Server{server: s, logger: logger}, nil
}

// Addr is the configured listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(sctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return err
		}
		return nil
	})
	return g.Wait()
}

// Close stops the SSH server immediately.
func (s *Server) Close() error {
	return s.server.Close()
}
