// Package preview serves the latest successful build over HTTP and rebuilds
// when source files change.
package preview

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/pagegen/internal/build"
	"git.home.luguber.info/inful/pagegen/internal/config"
	"git.home.luguber.info/inful/pagegen/internal/logfields"
	"git.home.luguber.info/inful/pagegen/internal/metrics"
)

// buildStatus tracks the served build and the last failure.
type buildStatus struct {
	mu        sync.RWMutex
	lastError error
	current   string // directory of the latest successful build
}

func (bs *buildStatus) setError(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = err
}

// setSuccess records dir as served and returns the directory it replaces.
func (bs *buildStatus) setSuccess(dir string) string {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	prev := bs.current
	bs.lastError = nil
	bs.current = dir
	return prev
}

func (bs *buildStatus) get() (current string, err error) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.current, bs.lastError
}

// Options configures a preview Server.
type Options struct {
	// Profile overrides the configured environment profile.
	Profile string
	// Root holds one directory per build. A temporary directory is created
	// when empty.
	Root string
	// Registry receives build metrics and backs /metrics.
	Registry *prom.Registry
}

// Server rebuilds the site into fresh directories and serves the newest.
type Server struct {
	cfg      *config.Config
	opts     Options
	service  build.BuildService
	registry *prom.Registry
	status   buildStatus
	ownsRoot bool
}

// New returns a preview server for cfg.
func New(cfg *config.Config, opts Options) (*Server, error) {
	s := &Server{cfg: cfg, opts: opts, registry: opts.Registry}
	if s.registry == nil {
		s.registry = prom.NewRegistry()
	}
	if s.opts.Root == "" {
		dir, err := os.MkdirTemp("", "pagegen-preview-")
		if err != nil {
			return nil, fmt.Errorf("create preview root: %w", err)
		}
		s.opts.Root = dir
		s.ownsRoot = true
	}
	s.service = build.NewBuildService().WithRecorder(metrics.NewPrometheusRecorder(s.registry))
	return s, nil
}

// Root returns the directory holding the build directories.
func (s *Server) Root() string { return s.opts.Root }

// Rebuild builds into a new directory. On success the new build is served
// and the previous one removed; on failure the previous build keeps being
// served.
func (s *Server) Rebuild(ctx context.Context) error {
	dest := filepath.Join(s.opts.Root, uuid.NewString())
	result, err := s.service.Run(ctx, build.BuildRequest{
		Config:    s.cfg,
		OutputDir: dest,
		Options:   build.BuildOptions{Profile: s.opts.Profile},
	})
	if err != nil {
		s.status.setError(err)
		if rmErr := os.RemoveAll(dest); rmErr != nil {
			slog.Warn("Failed to remove failed build", logfields.Path(dest), logfields.Error(rmErr))
		}
		return err
	}
	prev := s.status.setSuccess(dest)
	if prev != "" {
		if rmErr := os.RemoveAll(prev); rmErr != nil {
			slog.Warn("Failed to remove previous build", logfields.Path(prev), logfields.Error(rmErr))
		}
	}
	slog.Info("Serving build", logfields.BuildID(result.BuildID), logfields.Path(dest))
	return nil
}

// Handler serves /metrics and the current build.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(s.registry))
	mux.HandleFunc("/", s.serveSite)
	return mux
}

func (s *Server) serveSite(w http.ResponseWriter, r *http.Request) {
	current, err := s.status.get()
	if err != nil {
		http.Error(w, "build failed: "+err.Error(), http.StatusServiceUnavailable)
		return
	}
	if current == "" {
		http.Error(w, "no build available", http.StatusServiceUnavailable)
		return
	}
	http.FileServer(http.Dir(current)).ServeHTTP(w, r)
}

// Close removes the preview root when the server created it.
func (s *Server) Close() error {
	if !s.ownsRoot {
		return nil
	}
	return os.RemoveAll(s.opts.Root)
}
