// Package ui provides the web console for sqlconsole.
package ui

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/sqlconsole/internal/ui/features/dbconsole"
	"github.com/leapstack-labs/sqlconsole/internal/ui/router"
	"github.com/leapstack-labs/sqlconsole/pkg/console"
	"golang.org/x/sync/errgroup"
)

// Server is the web console server.
type Server struct {
	console           *console.Console
	sessionStore      *sessions.CookieStore
	addr              string
	defaults          *dbconsole.Defaults
	watchFile         string
	reload            ReloadFunc
	readHeaderTimeout time.Duration
	shutdownTimeout   time.Duration
	logger            *slog.Logger
}

// Config holds configuration for the web console server.
type Config struct {
	Console *console.Console
	Host    string
	Port    int
	// SessionSecret signs and encrypts the session cookie. When empty a random
	// key is generated, so sessions do not survive a restart.
	SessionSecret     string
	DefaultSSLMode    string
	DefaultDSN        string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	Logger            *slog.Logger

	// WatchFile, together with Reload, makes the server re-read the
	// connection defaults whenever the file changes.
	WatchFile string
	Reload    ReloadFunc
}

// ReloadFunc returns fresh connection form defaults.
type ReloadFunc func() (dsn, sslMode string, err error)

// NewServer creates a new web console server instance.
func NewServer(cfg Config) *Server {
	hashKey, blockKey := sessionKeys(cfg.SessionSecret)
	sessionStore := sessions.NewCookieStore(hashKey, blockKey)
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	s := &Server{
		console:           cfg.Console,
		sessionStore:      sessionStore,
		addr:              net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port)),
		defaults:          dbconsole.NewDefaults(cfg.DefaultDSN, cfg.DefaultSSLMode),
		watchFile:         cfg.WatchFile,
		reload:            cfg.Reload,
		readHeaderTimeout: cfg.ReadHeaderTimeout,
		shutdownTimeout:   cfg.ShutdownTimeout,
		logger:            cfg.Logger,
	}
	if s.console == nil {
		s.console = console.New(console.Options{Logger: cfg.Logger})
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.readHeaderTimeout <= 0 {
		s.readHeaderTimeout = 10 * time.Second
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = 5 * time.Second
	}
	return s
}

// sessionKeys derives the cookie hash and encryption keys. The cookie holds a
// database URL, so it is always encrypted.
func sessionKeys(secret string) (hashKey, blockKey []byte) {
	if secret == "" {
		return securecookie.GenerateRandomKey(64), securecookie.GenerateRandomKey(32)
	}
	block := sha256.Sum256([]byte("sqlconsole-session:" + secret))
	return []byte(secret), block[:]
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	opts := dbconsole.Options{
		Defaults: s.defaults,
		Logger:   s.logger,
	}
	if err := router.SetupRoutes(r, s.console, s.sessionStore, opts); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until the context is cancelled, then shuts down
// gracefully.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	handler, err := s.Handler()
	if err != nil {
		_ = ln.Close()
		return err
	}
	s.logger.Info("starting web console", "addr", "http://"+ln.Addr().String())

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: s.readHeaderTimeout,
	}

	if s.watchFile != "" && s.reload != nil {
		eg.Go(func() error {
			return s.watchConfig(egctx)
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down web console...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
