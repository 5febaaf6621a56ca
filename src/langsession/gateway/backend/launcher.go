package backend

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/uber/langsession/src/langsession/entity"
	"github.com/uber/langsession/src/langsession/internal/errors"
	"github.com/uber/langsession/src/langsession/internal/executor"
	"github.com/uber/langsession/src/langsession/internal/fs"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// LaunchParams describe the backend to start for one session.
type LaunchParams struct {
	SessionID   string
	ProjectPath string
	Config      entity.ServerConfig
	// Stderr receives the backend's stderr. Discarded when nil.
	Stderr io.Writer
}

// Launcher starts backend processes.
type Launcher interface {
	Launch(ctx context.Context, p LaunchParams) (Process, error)
}

// LauncherParams are the dependencies of NewLauncher.
type LauncherParams struct {
	fx.In

	Executor executor.Executor
	FS       fs.FS
	Logger   *zap.SugaredLogger
	Resolver Resolver
}

type launcher struct {
	executor executor.Executor
	fs       fs.FS
	logger   *zap.SugaredLogger
	resolver Resolver
}

// NewLauncher creates a Launcher.
func NewLauncher(p LauncherParams) Launcher {
	return &launcher{
		executor: p.Executor,
		fs:       p.FS,
		logger:   p.Logger,
		resolver: p.Resolver,
	}
}

// Launch spawns the backend with its working directory set to the project root.
func (l *launcher) Launch(ctx context.Context, p LaunchParams) (Process, error) {
	ok, err := l.fs.DirExists(p.ProjectPath)
	if err != nil {
		return nil, &errors.ConfigurationError{
			Variant: string(p.Config.VariantOrDefault()),
			Reason:  fmt.Sprintf("project path %q is not readable: %v", p.ProjectPath, err),
		}
	}
	if !ok {
		return nil, &errors.ConfigurationError{
			Variant: string(p.Config.VariantOrDefault()),
			Reason:  fmt.Sprintf("project path %q is not a directory", p.ProjectPath),
		}
	}

	command, err := l.resolver.Resolve(p.ProjectPath, p.Config)
	if err != nil {
		return nil, err
	}

	// The process outlives the request that started it, so it is not bound to ctx.
	cmd := exec.Command(command.Path, command.Args...)
	cmd.Dir = p.ProjectPath
	cmd.Stderr = p.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, &errors.ProcessFaultError{SessionID: p.SessionID, Err: err}
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		return nil, &errors.ProcessFaultError{SessionID: p.SessionID, Err: err}
	}

	if err := l.executor.Start(cmd); err != nil {
		stdin.Close()
		stdout.Close()
		return nil, &errors.ProcessFaultError{SessionID: p.SessionID, Err: err}
	}

	proc := newProcess(cmd, stdin, stdout)
	l.logger.Infow("backend started",
		zap.String("session", p.SessionID),
		zap.String("variant", string(p.Config.VariantOrDefault())),
		zap.Int("pid", proc.PID()),
	)
	return proc, nil
}
