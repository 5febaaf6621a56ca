// Package tssession supervises backend sessions and speaks the tsserver request protocol with them.
package tssession

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	"github.com/uber/langsession/src/langsession/entity"
	"github.com/uber/langsession/src/langsession/gateway/backend"
	"github.com/uber/langsession/src/langsession/internal/clock"
	"github.com/uber/langsession/src/langsession/internal/correlator"
	"github.com/uber/langsession/src/langsession/internal/errors"
	"github.com/uber/langsession/src/langsession/internal/fs"
	"github.com/uber/langsession/src/langsession/internal/logfilewriter"
	"github.com/uber/langsession/src/langsession/internal/projectsettings"
	"github.com/uber/langsession/src/langsession/mapper"
	"github.com/uber/langsession/src/langsession/model"
	"github.com/uber/langsession/src/langsession/repository/session"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	_configKey = "tsserver"

	_counterRequests        = "requests"
	_counterRequestTimeouts = "request_timeouts"
	_counterRequestFailures = "request_failures"
	_counterProtocolErrors  = "protocol_errors"
	_counterEvents          = "events"
	_counterEventsDropped   = "events_dropped"
	_counterProcessExits    = "process_exits"
	_counterProcessErrors   = "process_errors"
	_timerRequestLatency    = "request_latency"
)

// Controller manages backend sessions and the requests sent to them.
type Controller interface {
	// StartServer launches a backend for the session. Starting a session that is already alive is a no-op.
	StartServer(ctx context.Context, params entity.StartServerParams) (*entity.Session, error)
	// StopServer shuts the session's backend down and forgets the session. Unknown ids are ignored.
	StopServer(ctx context.Context, sessionID string) error
	// StopAll stops every session.
	StopAll(ctx context.Context) error

	// Send issues a raw command and waits for its response body.
	Send(ctx context.Context, sessionID string, command string, args interface{}) (json.RawMessage, error)

	OpenFile(ctx context.Context, sessionID string, file string, content string) error
	UpdateFile(ctx context.Context, sessionID string, file string, content string) error
	CloseFile(ctx context.Context, sessionID string, file string) error
	GetCompletions(ctx context.Context, params entity.PositionParams) ([]entity.CompletionEntry, error)
	GetCompletionDetails(ctx context.Context, params entity.CompletionDetailsParams) ([]entity.CompletionEntryDetails, error)
	GetQuickInfo(ctx context.Context, params entity.PositionParams) (*entity.QuickInfo, error)
	GetDiagnostics(ctx context.Context, sessionID string, file string) ([]entity.Diagnostic, error)
	GetDefinition(ctx context.Context, params entity.PositionParams) ([]entity.FileSpan, error)
	GetReferences(ctx context.Context, params entity.PositionParams) (*entity.References, error)
	GetSignatureHelp(ctx context.Context, params entity.PositionParams) (*entity.SignatureHelpItems, error)
	ReloadProjects(ctx context.Context, sessionID string) error

	IsSessionAlive(ctx context.Context, sessionID string) bool
	// GetActiveSessions returns the ids of live sessions in sorted order.
	GetActiveSessions(ctx context.Context) []string
	SessionInfo(ctx context.Context, sessionID string) (*entity.Session, error)

	// Subscribe registers for signals of a session, or of every session when sessionID is empty.
	// No topics selects all topics. The subscription lasts until Unsubscribe or application shutdown.
	Subscribe(ctx context.Context, sessionID string, topics []entity.Topic) (*Subscription, error)
	Unsubscribe(ctx context.Context, id uuid.UUID) error
}

// Config is the tsserver section of the application configuration.
type Config struct {
	RequestTimeoutSeconds  int      `yaml:"requestTimeoutSeconds"`
	ShutdownTimeoutSeconds int      `yaml:"shutdownTimeoutSeconds"`
	WatchProjectConfig     bool     `yaml:"watchProjectConfig"`
	ProjectConfigFiles     []string `yaml:"projectConfigFiles"`
}

func defaultConfig() Config {
	return Config{
		RequestTimeoutSeconds:  30,
		ShutdownTimeoutSeconds: 5,
		WatchProjectConfig:     true,
		ProjectConfigFiles:     []string{"tsconfig.json", "jsconfig.json"},
	}
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Sessions  session.Repository
	Launcher  backend.Launcher
	LogFiles  logfilewriter.Factory
	FS        fs.FS
	Clock     clock.Clock
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
	Config    config.Provider
	Lifecycle fx.Lifecycle
}

type controller struct {
	sessions session.Repository
	launcher backend.Launcher
	logFiles logfilewriter.Factory
	fs       fs.FS
	clock    clock.Clock
	logger   *zap.SugaredLogger
	stats    tally.Scope

	requestTimeout  time.Duration
	shutdownTimeout time.Duration
	watchConfig     bool
	configFiles     map[string]struct{}

	locks  *keyedMutex
	broker *broker

	// newWatcher is replaced in tests.
	newWatcher func(s *model.Session) (io.Closer, error)
}

// New creates a new controller for backend sessions. All sessions are stopped when the application stops.
func New(p Params) (Controller, error) {
	cfg := defaultConfig()
	if v := p.Config.Get(_configKey); v.HasValue() {
		if err := v.Populate(&cfg); err != nil {
			return nil, fmt.Errorf("getting configuration for %q: %w", _configKey, err)
		}
	}

	c := &controller{
		sessions:        p.Sessions,
		launcher:        p.Launcher,
		logFiles:        p.LogFiles,
		fs:              p.FS,
		clock:           p.Clock,
		logger:          p.Logger.Named("ts-session"),
		stats:           p.Stats,
		requestTimeout:  time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		shutdownTimeout: time.Duration(cfg.ShutdownTimeoutSeconds) * time.Second,
		watchConfig:     cfg.WatchProjectConfig,
		configFiles:     make(map[string]struct{}, len(cfg.ProjectConfigFiles)),
		locks:           newKeyedMutex(),
	}
	if c.requestTimeout <= 0 {
		c.requestTimeout = correlator.DefaultTimeout
	}
	for _, name := range cfg.ProjectConfigFiles {
		c.configFiles[name] = struct{}{}
	}
	c.broker = newBroker(c.logger, c.stats)
	c.newWatcher = c.watchProject

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			defer c.broker.closeAll()
			return c.StopAll(ctx)
		},
	})
	return c, nil
}

func (c *controller) StartServer(ctx context.Context, params entity.StartServerParams) (*entity.Session, error) {
	if params.SessionID == "" {
		return nil, errors.NoSessionIDError
	}
	if params.ProjectPath == "" {
		return nil, errors.NoProjectPathError
	}

	unlock := c.locks.lock(params.SessionID)
	defer unlock()

	log := c.logger.With("session", params.SessionID)
	if existing, err := c.sessions.Get(ctx, params.SessionID); err == nil {
		if existing.Alive() {
			log.Debugw("session already running", "pid", existing.Process.PID())
			return mapper.ModelToSession(existing), nil
		}
		// The previous backend faulted or exited on its own; make sure it is gone.
		if err := c.stop(ctx, existing); err != nil {
			log.Warnw("cleaning up dead session", "error", err)
		}
	}

	settings, err := projectsettings.Load(c.fs, params.ProjectPath)
	if err != nil {
		log.Warnw("project settings", "error", err)
	}
	cfg := settings.Apply(params.Config)

	launch := backend.LaunchParams{
		SessionID:   params.SessionID,
		ProjectPath: params.ProjectPath,
		Config:      cfg,
	}
	stderr, err := c.logFiles.Open(params.SessionID)
	if err != nil {
		log.Warnw("backend stderr will not be captured", "error", err)
		stderr = nil
	} else {
		launch.Stderr = stderr
	}

	proc, err := c.launcher.Launch(ctx, launch)
	if err != nil {
		if stderr != nil {
			stderr.Close()
		}
		return nil, fmt.Errorf("starting session %q: %w", params.SessionID, err)
	}

	s := model.NewSession(params.SessionID, params.ProjectPath, cfg, proc, correlator.New(c.requestTimeout, c.clock), c.clock.Now())
	s.Stderr = stderr
	if err := c.sessions.Set(ctx, s); err != nil {
		proc.Kill()
		if stderr != nil {
			stderr.Close()
		}
		return nil, err
	}
	go c.readLoop(s)

	if c.watchConfig {
		w, err := c.newWatcher(s)
		if err != nil {
			log.Warnw("project config changes will not be watched", "error", err)
		} else {
			s.Watcher = w
		}
	}

	log.Infow("session started", "project", params.ProjectPath, "variant", cfg.VariantOrDefault(), "pid", proc.PID())
	return mapper.ModelToSession(s), nil
}

func (c *controller) StopServer(ctx context.Context, sessionID string) error {
	unlock := c.locks.lock(sessionID)
	defer unlock()

	s, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		if _, ok := errors.NotFoundSession(err); ok {
			return nil
		}
		return err
	}
	return c.stop(ctx, s)
}

func (c *controller) StopAll(ctx context.Context) error {
	sessions, err := c.sessions.List(ctx)
	if err != nil {
		return err
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		result error
	)
	for _, s := range sessions {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := c.StopServer(ctx, id); err != nil {
				mu.Lock()
				result = multierr.Append(result, fmt.Errorf("stopping session %q: %w", id, err))
				mu.Unlock()
			}
		}(s.ID)
	}
	wg.Wait()
	return result
}

// stop asks the backend to exit, kills it if it does not within the shutdown
// grace period, and then releases the session.
func (c *controller) stop(ctx context.Context, s *model.Session) error {
	log := c.logger.With("session", s.ID)

	graceCtx, cancel := context.WithTimeout(ctx, c.shutdownTimeout)
	defer cancel()

	if s.Alive() {
		if err := c.notify(s, entity.CommandExit, nil); err != nil {
			log.Debugw("graceful exit failed", "error", err)
		}
	}

	select {
	case <-s.Process.Done():
	case <-graceCtx.Done():
		log.Warnw("backend did not exit in time, killing it", "pid", s.Process.PID())
		if err := s.Process.Kill(); err != nil {
			log.Warnw("killing backend", "error", err)
		}
	}

	var err error
	select {
	case <-s.LoopDone:
	case <-ctx.Done():
		err = fmt.Errorf("waiting for backend of session %q: %w", s.ID, ctx.Err())
	}

	err = multierr.Append(err, c.release(ctx, s))
	log.Infow("session stopped")
	return err
}

// release closes the session's watcher and stderr log and removes it from the registry.
func (c *controller) release(ctx context.Context, s *model.Session) error {
	s.MarkDead()

	var err error
	if s.Watcher != nil {
		err = multierr.Append(err, s.Watcher.Close())
		s.Watcher = nil
	}
	if s.Stderr != nil {
		err = multierr.Append(err, s.Stderr.Close())
		s.Stderr = nil
	}
	return multierr.Append(err, c.sessions.Delete(ctx, s.ID))
}

func (c *controller) IsSessionAlive(ctx context.Context, sessionID string) bool {
	s, err := c.sessions.Get(ctx, sessionID)
	return err == nil && s.Alive()
}

func (c *controller) GetActiveSessions(ctx context.Context) []string {
	sessions, err := c.sessions.List(ctx)
	if err != nil {
		c.logger.Warnw("listing sessions", "error", err)
		return nil
	}

	ids := make([]string, 0, len(sessions))
	for _, s := range sessions {
		if s.Alive() {
			ids = append(ids, s.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

func (c *controller) SessionInfo(ctx context.Context, sessionID string) (*entity.Session, error) {
	s, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return mapper.ModelToSession(s), nil
}

// liveSession returns the session only if its backend is still running.
func (c *controller) liveSession(ctx context.Context, sessionID string) (*model.Session, error) {
	s, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !s.Alive() {
		return nil, &errors.SessionNotFoundError{ID: sessionID}
	}
	return s, nil
}
