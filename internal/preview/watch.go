package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/pagegen/internal/logfields"
)

const shutdownTimeout = 5 * time.Second

// Run performs the initial build, serves on addr and rebuilds on change
// until ctx is cancelled. A failed initial build is reported and served as
// an error page.
func (s *Server) Run(ctx context.Context, addr string) error {
	if err := s.Rebuild(ctx); err != nil {
		slog.Error("Initial build failed", logfields.Error(err))
	}

	watcher, err := s.setupFileWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	httpServer := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	serveErr := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	slog.Info("Preview server listening", logfields.Addr(addr), slog.String("url", "http://"+addr))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	rebuildReq, trigger, stop := setupRebuildDebouncer(s.cfg.DebounceDuration())
	defer stop()
	workerDone := s.startRebuildWorker(ctx, rebuildReq)

	for {
		select {
		case <-ctx.Done():
			return s.handleShutdown(httpServer, stop, workerDone)
		case err, ok := <-serveErr:
			if !ok {
				serveErr = nil
				continue
			}
			return fmt.Errorf("preview server: %w", err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			s.handleFileEvent(watcher, ev, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// watchRoots returns the source directories that exist.
func (s *Server) watchRoots() []string {
	var roots []string
	for _, dir := range []string{s.cfg.ContentDir(), s.cfg.FragmentsDir(), s.cfg.ShellDir()} {
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			roots = append(roots, dir)
		}
	}
	return roots
}

func (s *Server) setupFileWatcher() (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	for _, root := range s.watchRoots() {
		addDirsRecursive(watcher, root)
	}
	return watcher, nil
}

// setupRebuildDebouncer returns the rebuild channel, a trigger that coalesces
// calls within delay into one request, and a stop function. After stop no
// request is sent; the channel is never closed.
func setupRebuildDebouncer(delay time.Duration) (<-chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	stopped := false
	rebuildReq := make(chan struct{}, 1)

	send := func() {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		select {
		case rebuildReq <- struct{}{}:
		default:
		}
	}
	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, send)
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		stopped = true
		if timer != nil {
			timer.Stop()
		}
	}
	return rebuildReq, trigger, stop
}

// startRebuildWorker runs rebuilds one at a time until ctx is done. The
// request channel holds one pending request, so changes during a build
// schedule exactly one follow-up build. The returned channel closes when the
// worker exits.
func (s *Server) startRebuildWorker(ctx context.Context, rebuildReq <-chan struct{}) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case <-rebuildReq:
				slog.Info("Change detected; rebuilding site")
				if err := s.Rebuild(ctx); err != nil {
					slog.Warn("Rebuild failed", logfields.Error(err))
				}
			}
		}
	}()
	return done
}

func (s *Server) handleShutdown(httpServer *http.Server, stop func(), workerDone <-chan struct{}) error {
	slog.Info("Shutting down preview server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP server shutdown error", logfields.Error(err))
	}
	stop()
	<-workerDone

	if err := s.Close(); err != nil {
		slog.Warn("Failed to remove preview root", logfields.Path(s.opts.Root), logfields.Error(err))
	}
	return nil
}

func (s *Server) handleFileEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			addDirsRecursive(watcher, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func addDirsRecursive(w *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent reports events for hidden, swap and temp files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
