package tssession

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/uber/langsession/src/langsession/internal/clock"
	"github.com/uber/langsession/src/langsession/model"
	"go.uber.org/zap"
)

const _reloadDebounce = 250 * time.Millisecond

// projectWatcher reloads a session's projects when one of its config files changes.
type projectWatcher struct {
	watcher *fsnotify.Watcher
	files   map[string]struct{}
	reload  func()
	clock   clock.Clock
	logger  *zap.SugaredLogger

	mu      sync.Mutex
	pending clock.Timer
	closed  bool

	done chan struct{}
}

// watchProject watches the project root of s for changes to project config files.
func (c *controller) watchProject(s *model.Session) (io.Closer, error) {
	sessionID := s.ID
	log := c.logger.With("session", sessionID)
	return newProjectWatcher(s.ProjectPath, c.configFiles, c.clock, log, func() {
		if err := c.ReloadProjects(context.Background(), sessionID); err != nil {
			log.Warnw("reloading projects", "error", err)
			return
		}
		log.Infow("project config changed, projects reloaded")
	})
}

func newProjectWatcher(dir string, files map[string]struct{}, clk clock.Clock, logger *zap.SugaredLogger, reload func()) (*projectWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating project watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	w := &projectWatcher{
		watcher: watcher,
		files:   files,
		reload:  reload,
		clock:   clk,
		logger:  logger,
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *projectWatcher) run() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if _, watched := w.files[filepath.Base(event.Name)]; !watched {
				continue
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			w.schedule()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warnw("project watcher", "error", err)
		}
	}
}

// schedule collapses a burst of changes into one reload.
func (w *projectWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = w.clock.AfterFunc(_reloadDebounce, w.reload)
}

// Close stops watching and cancels a pending reload.
func (w *projectWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	<-w.done
	return err
}
