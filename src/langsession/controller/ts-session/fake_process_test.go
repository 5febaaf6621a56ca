package tssession

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"github.com/uber/langsession/src/langsession/entity"
	"github.com/uber/langsession/src/langsession/gateway/backend/backendmock"
	"github.com/uber/langsession/src/langsession/internal/clock"
	"github.com/uber/langsession/src/langsession/internal/fs/fsmock"
	"github.com/uber/langsession/src/langsession/internal/logfilewriter/logfilewritermock"
	"github.com/uber/langsession/src/langsession/repository/session"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const _waitTimeout = 5 * time.Second

type recordedRequest struct {
	Seq       int             `json:"seq"`
	Type      string          `json:"type"`
	Command   string          `json:"command"`
	Arguments json.RawMessage `json:"arguments"`
}

// fakeProcess is a scripted backend. Requests written to it are queued for the
// test, and it exits when it receives the exit command.
type fakeProcess struct {
	pid      int
	output   chan []byte
	exited   chan int
	errs     chan error
	done     chan struct{}
	requests chan recordedRequest

	mu         sync.Mutex
	writeErr   error
	ignoreExit bool
	exitOnce   sync.Once
}

func newFakeProcess(pid int) *fakeProcess {
	return &fakeProcess{
		pid:      pid,
		output:   make(chan []byte),
		exited:   make(chan int, 1),
		errs:     make(chan error, 4),
		done:     make(chan struct{}),
		requests: make(chan recordedRequest, 64),
	}
}

func (p *fakeProcess) PID() int                  { return p.pid }
func (p *fakeProcess) Output() <-chan []byte     { return p.output }
func (p *fakeProcess) Exited() <-chan int        { return p.exited }
func (p *fakeProcess) Errors() <-chan error      { return p.errs }
func (p *fakeProcess) Done() <-chan struct{}     { return p.done }
func (p *fakeProcess) Kill() error               { p.exit(-1); return nil }
func (p *fakeProcess) setWriteErr(err error)     { p.mu.Lock(); p.writeErr = err; p.mu.Unlock() }
func (p *fakeProcess) setIgnoreExit(ignore bool) { p.mu.Lock(); p.ignoreExit = ignore; p.mu.Unlock() }

func (p *fakeProcess) Write(b []byte) (int, error) {
	p.mu.Lock()
	writeErr, ignoreExit := p.writeErr, p.ignoreExit
	p.mu.Unlock()
	if writeErr != nil {
		return 0, writeErr
	}

	var req recordedRequest
	if err := json.Unmarshal(bytes.TrimSpace(b), &req); err != nil {
		return 0, err
	}
	p.requests <- req
	if req.Command == entity.CommandExit && !ignoreExit {
		go p.exit(0)
	}
	return len(b), nil
}

func (p *fakeProcess) exit(code int) {
	p.exitOnce.Do(func() {
		close(p.output)
		p.exited <- code
		close(p.done)
	})
}

// next returns the next request written to the process.
func (p *fakeProcess) next(t *testing.T) recordedRequest {
	t.Helper()
	select {
	case req := <-p.requests:
		return req
	case <-time.After(_waitTimeout):
		require.FailNow(t, "no request written to backend")
		return recordedRequest{}
	}
}

func (p *fakeProcess) frame(v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	p.output <- []byte(fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(b), b))
}

func (p *fakeProcess) respond(seq int, body interface{}) {
	p.frame(map[string]interface{}{
		"type":        "response",
		"request_seq": seq,
		"success":     true,
		"body":        body,
	})
}

func (p *fakeProcess) fail(seq int, message string) {
	msg := map[string]interface{}{
		"type":        "response",
		"request_seq": seq,
		"success":     false,
	}
	if message != "" {
		msg["message"] = message
	}
	p.frame(msg)
}

func (p *fakeProcess) event(name string, body interface{}) {
	p.frame(map[string]interface{}{
		"type":  "event",
		"event": name,
		"body":  body,
	})
}

// manualClock only fires timers when the test asks it to.
type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	mu      sync.Mutex
	f       func()
	stopped bool
}

func (m *manualTimer) Stop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	wasActive := !m.stopped
	m.stopped = true
	return wasActive
}

func (c *manualClock) Now() time.Time                  { return time.Unix(1700000000, 0) }
func (c *manualClock) Sleep(time.Duration)             {}
func (c *manualClock) Since(t time.Time) time.Duration { return 0 }
func (c *manualClock) AfterFunc(_ time.Duration, f func()) clock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (c *manualClock) fire(i int) {
	c.mu.Lock()
	t := c.timers[i]
	c.mu.Unlock()
	t.f()
}

type bufferLog struct {
	bytes.Buffer
	mu     sync.Mutex
	closed bool
}

func (b *bufferLog) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

func (b *bufferLog) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

type fixture struct {
	c        *controller
	sessions session.Repository
	launcher *backendmock.MockLauncher
	logFiles *logfilewritermock.MockFactory
	fs       *fsmock.MockFS
	clock    *manualClock
	logs     *observer.ObservedLogs
	stats    tally.TestScope

	stopOnce sync.Once
	lc       *fxtest.Lifecycle
}

// stop runs the lifecycle's stop hooks once; later calls are no-ops.
func (f *fixture) stop() {
	f.stopOnce.Do(f.lc.RequireStop)
}

func newFixture(t *testing.T, cfg map[string]interface{}) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	base := map[string]interface{}{
		"tsserver": map[string]interface{}{
			"requestTimeoutSeconds": 30,
			"watchProjectConfig":    false,
		},
	}
	for k, v := range cfg {
		base[k] = v
	}
	provider, err := config.NewStaticProvider(base)
	require.NoError(t, err)

	core, logs := observer.New(zap.DebugLevel)
	stats := tally.NewTestScope("testing", nil)
	lc := fxtest.NewLifecycle(t)

	f := &fixture{
		sessions: session.New(stats),
		launcher: backendmock.NewMockLauncher(ctrl),
		logFiles: logfilewritermock.NewMockFactory(ctrl),
		fs:       fsmock.NewMockFS(ctrl),
		clock:    &manualClock{},
		logs:     logs,
		stats:    stats,
		lc:       lc,
	}
	f.fs.EXPECT().ReadFile(gomock.Any()).Return(nil, os.ErrNotExist).AnyTimes()

	c, err := New(Params{
		Sessions:  f.sessions,
		Launcher:  f.launcher,
		LogFiles:  f.logFiles,
		FS:        f.fs,
		Clock:     f.clock,
		Logger:    zap.New(core).Sugar(),
		Stats:     stats,
		Config:    provider,
		Lifecycle: lc,
	})
	require.NoError(t, err)
	f.c = c.(*controller)
	f.c.shutdownTimeout = 50 * time.Millisecond

	lc.RequireStart()
	t.Cleanup(f.stop)
	return f
}

// start launches sessionID backed by proc.
func (f *fixture) start(t *testing.T, sessionID string, proc *fakeProcess) *bufferLog {
	t.Helper()
	stderr := &bufferLog{}
	f.logFiles.EXPECT().Open(sessionID).Return(io.WriteCloser(stderr), nil)
	f.launcher.EXPECT().Launch(gomock.Any(), gomock.Any()).Return(proc, nil)

	_, err := f.c.StartServer(context.Background(), entity.StartServerParams{
		SessionID:   sessionID,
		ProjectPath: "/projects/" + sessionID,
	})
	require.NoError(t, err)
	return stderr
}

func (f *fixture) counter(name string) int64 {
	c, ok := f.stats.Snapshot().Counters()["testing."+name+"+"]
	if !ok {
		return 0
	}
	return c.Value()
}

func recv(t *testing.T, sub *Subscription) entity.SessionEvent {
	t.Helper()
	select {
	case ev, ok := <-sub.Events:
		require.True(t, ok, "subscription closed")
		return ev
	case <-time.After(_waitTimeout):
		require.FailNow(t, "no event delivered")
		return entity.SessionEvent{}
	}
}
