package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/maze-arcade/internal/core"
	"github.com/vovakirdan/maze-arcade/internal/flow"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is passed to every session's runtime config.
	TickRate int

	// Seed seeds every session's engine. Zero gives each session its own
	// time-based seed.
	Seed int64
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// ShellFactory builds the controller for one connection. The controller
// runs on term; ctx ends when the connection closes.
type ShellFactory func(ctx context.Context, term *Terminal, logger *log.Logger) (*flow.Controller, error)

// SSHServer serves one independent shell per SSH connection.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	layout  flow.Layout
	factory ShellFactory
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, layout flow.Layout, factory ShellFactory, logger *log.Logger) (*SSHServer, error) {
	if factory == nil {
		return nil, errors.New("tui: a shell factory is required")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	srv := &SSHServer{
		config:  cfg,
		layout:  layout,
		factory: factory,
		logger:  logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".arcade", "host_key")
	}

	// Ensure host key directory exists
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			srv.shellMiddleware,
			activeterm.Middleware(),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// shellMiddleware runs a shell for the session, then hands on.
func (s *SSHServer) shellMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.runShell(sess)
		next(sess)
	}
}

func (s *SSHServer) runShell(sess ssh.Session) {
	logger := s.logger.With("user", sess.User())

	pty, winCh, _ := sess.Pty()
	rt := s.sessionRuntime(pty.Window.Width, pty.Window.Height)

	term := NewTerminal(TerminalConfig{
		Runtime:        rt,
		Layout:         s.layout,
		ProgramOptions: bubbletea.MakeOptions(sess),
		Renderer:       bubbletea.MakeRenderer(sess),
	})

	ctx, cancel := context.WithCancel(sess.Context())
	defer cancel()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case w, ok := <-winCh:
				if !ok {
					return
				}
				term.Resize(w.Width, w.Height)
			}
		}
	}()

	ctrl, err := s.factory(ctx, term, logger)
	if err != nil {
		logger.Error("could not start shell", "error", err)
		wish.Fatalln(sess, "arcade: could not start:", err)
		return
	}

	if err := ctrl.Run(ctx, term); err != nil {
		logger.Error("shell stopped with error", "error", err)
	}
}

// sessionRuntime builds the runtime config for a new session of the given
// window size.
func (s *SSHServer) sessionRuntime(width, height int) core.RuntimeConfig {
	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: s.config.TickRate,
		Seed:     s.config.Seed,
	}
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	return rt
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is cancelled.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("tui: SSH server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("tui: shutdown: %w", err)
	}
	return nil
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
