// Package serve runs the local preview server for a generated site and
// rebuilds it when proof records change on disk.
package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"proofsite/internal/logging"
)

// Options configures the preview server.
type Options struct {
	Addr      string
	OutputDir string
	ProofsDir string
	// Rebuild regenerates the site; called once at startup and after
	// every change to the proofs directory.
	Rebuild func() error
	// Debounce collapses editor save bursts into one rebuild.
	Debounce time.Duration
}

// Server serves the output directory and watches the proofs directory.
type Server struct {
	opts Options
}

// New returns a preview server for the given options.
func New(opts Options) *Server {
	if opts.Debounce <= 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	return &Server{opts: opts}
}

// Handler returns the HTTP handler serving the output directory.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/*", http.FileServer(http.Dir(s.opts.OutputDir)))
	return r
}

// Run starts the server and the proofs watcher, blocking until ctx is
// cancelled or the server fails.
func (s *Server) Run(ctx context.Context) error {
	if s.opts.Rebuild != nil {
		if err := s.opts.Rebuild(); err != nil {
			return fmt.Errorf("initial site build failed: %w", err)
		}
	}

	srv := &http.Server{Addr: s.opts.Addr, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() {
		logging.Serve("preview server listening on %s", s.opts.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	watchErrCh := make(chan error, 1)
	if s.opts.ProofsDir != "" && s.opts.Rebuild != nil {
		go func() {
			watchErrCh <- watchProofs(ctx, s.opts.ProofsDir, s.opts.Debounce, func() {
				if err := s.opts.Rebuild(); err != nil {
					logging.ServeError("rebuild failed: %v", err)
					fmt.Printf("rebuild failed: %v\n", err)
					return
				}
				logging.Serve("site rebuilt after change in %s", s.opts.ProofsDir)
			})
		}()
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-errCh:
		return fmt.Errorf("preview server failed: %w", err)
	case err := <-watchErrCh:
		_ = srv.Close()
		if err != nil {
			return fmt.Errorf("proofs watcher failed: %w", err)
		}
		return nil
	}
}
