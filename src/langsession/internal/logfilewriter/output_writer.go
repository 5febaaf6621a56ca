// Package logfilewriter captures backend stderr into per-session log files.
package logfilewriter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/uber/langsession/src/langsession/internal/fs"
	"github.com/uber/langsession/src/langsession/internal/serverinfofile"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	_fmtStderrKey     = "stderr:%s"
	_logsDirName      = "langsession"
	_configKeyEnabled = "tsserver.stderrLogs"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Factory opens a stderr log writer for a session.
type Factory interface {
	Open(sessionID string) (io.WriteCloser, error)
}

// Params define the dependencies for New.
type Params struct {
	fx.In

	Config         config.Provider
	FS             fs.FS
	Lifecycle      fx.Lifecycle
	ServerInfoFile serverinfofile.ServerInfoFile
}

type factory struct {
	enabled  bool
	fs       fs.FS
	infoFile serverinfofile.ServerInfoFile
	dir      string

	mu   sync.Mutex
	open map[*sessionWriter]struct{}
}

// New creates a Factory. Writers still open when the application stops are closed.
func New(p Params) (Factory, error) {
	enabled := true
	if v := p.Config.Get(_configKeyEnabled); v.HasValue() {
		if err := v.Populate(&enabled); err != nil {
			return nil, fmt.Errorf("getting config field %q: %w", _configKeyEnabled, err)
		}
	}

	f := &factory{
		enabled:  enabled,
		fs:       p.FS,
		infoFile: p.ServerInfoFile,
		dir:      filepath.Join(os.TempDir(), _logsDirName),
		open:     make(map[*sessionWriter]struct{}),
	}
	p.Lifecycle.Append(fx.Hook{OnStop: f.closeAll})
	return f, nil
}

// Open creates a temp log file for the session and records its path in the server info file.
// Writes are split into lines and logged with a timestamp.
func (f *factory) Open(sessionID string) (io.WriteCloser, error) {
	if !f.enabled {
		return nopWriteCloser{}, nil
	}

	if err := f.fs.MkdirAll(f.dir); err != nil {
		return nil, err
	}
	logFile, err := f.fs.TempFile(f.dir, "stderr-*.log")
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf(_fmtStderrKey, sessionID)
	if err := f.infoFile.UpdateField(key, logFile.Name()); err != nil {
		logFile.Close()
		f.fs.Remove(logFile.Name())
		return nil, err
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(logFile),
		zap.InfoLevel,
	)
	w := &sessionWriter{
		loggerWriter: loggerWriter{logger: zap.New(core).Sugar()},
		file:         logFile,
		key:          key,
		factory:      f,
	}

	f.mu.Lock()
	f.open[w] = struct{}{}
	f.mu.Unlock()
	return w, nil
}

func (f *factory) closeAll(ctx context.Context) error {
	f.mu.Lock()
	writers := make([]*sessionWriter, 0, len(f.open))
	for w := range f.open {
		writers = append(writers, w)
	}
	f.mu.Unlock()

	var err error
	for _, w := range writers {
		err = multierr.Append(err, w.Close())
	}
	return err
}

type sessionWriter struct {
	loggerWriter

	file    *os.File
	key     string
	factory *factory
	once    sync.Once
}

// Close flushes buffered output, then removes the log file and its server info entry.
func (w *sessionWriter) Close() error {
	var err error
	w.once.Do(func() {
		w.flush()
		w.logger.Sync()
		err = multierr.Combine(
			w.file.Close(),
			w.factory.fs.Remove(w.file.Name()),
			w.factory.infoFile.RemoveField(w.key),
		)

		w.factory.mu.Lock()
		delete(w.factory.open, w)
		w.factory.mu.Unlock()
	})
	return err
}

type loggerWriter struct {
	logger *zap.SugaredLogger

	mu      sync.Mutex
	partial string
}

// Write implements the io.Writer interface by sending data to the given logger.
// A trailing line without a newline is held until the next write or flush.
func (o *loggerWriter) Write(p []byte) (n int, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	lines := strings.Split(o.partial+string(p), "\n")
	o.partial = lines[len(lines)-1]
	for _, line := range lines[:len(lines)-1] {
		line = strings.TrimRight(line, "\r")
		if len(line) > 0 {
			o.logger.Info(line)
		}
	}

	return len(p), nil
}

func (o *loggerWriter) flush() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.partial) > 0 {
		o.logger.Info(o.partial)
		o.partial = ""
	}
}

type nopWriteCloser struct{}

func (nopWriteCloser) Write(p []byte) (int, error) { return len(p), nil }
func (nopWriteCloser) Close() error                { return nil }
