package backend

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/uber/langsession/src/langsession/entity"
	"github.com/uber/langsession/src/langsession/internal/errors"
	"github.com/uber/langsession/src/langsession/internal/fs"
	"go.uber.org/config"
	"go.uber.org/fx"
)

const (
	_configKeyBackends    = "backends"
	_configKeyEnvironment = "environment"

	_envDevelopment = "development"
	_defaultEnvVar  = "TSGO_PATH"
)

// Config is the backends section of the configuration.
type Config struct {
	TSServer TSServerConfig `yaml:"tsserver"`
	Native   NativeConfig   `yaml:"native"`
}

// TSServerConfig configures the default tsserver backend.
type TSServerConfig struct {
	NodePath  string   `yaml:"nodePath"`
	Args      []string `yaml:"args"`
	LocalPath string   `yaml:"localPath"`

	BundledPaths struct {
		Development string `yaml:"development"`
		Packaged    string `yaml:"packaged"`
	} `yaml:"bundledPaths"`
}

// NativeConfig configures the natively compiled backend.
type NativeConfig struct {
	EnvVar         string   `yaml:"envVar"`
	Args           []string `yaml:"args"`
	WellKnownPaths []string `yaml:"wellKnownPaths"`
}

// Command is a resolved executable and its arguments.
type Command struct {
	Path string
	Args []string
}

// Resolver locates the executable for a session's backend.
type Resolver interface {
	Resolve(projectPath string, cfg entity.ServerConfig) (Command, error)
}

// ResolverParams are the dependencies of NewResolver.
type ResolverParams struct {
	fx.In

	Config config.Provider
	FS     fs.FS
}

type resolver struct {
	cfg         Config
	development bool
	fs          fs.FS

	lookupEnv  func(string) (string, bool)
	executable func() (string, error)
}

// NewResolver creates a Resolver from the backends configuration.
func NewResolver(p ResolverParams) (Resolver, error) {
	r := &resolver{
		fs:         p.FS,
		lookupEnv:  os.LookupEnv,
		executable: os.Executable,
	}
	if err := p.Config.Get(_configKeyBackends).Populate(&r.cfg); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyBackends, err)
	}
	var env string
	if err := p.Config.Get(_configKeyEnvironment).Populate(&env); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyEnvironment, err)
	}
	r.development = env == _envDevelopment

	if r.cfg.TSServer.NodePath == "" {
		r.cfg.TSServer.NodePath = "node"
	}
	if r.cfg.Native.EnvVar == "" {
		r.cfg.Native.EnvVar = _defaultEnvVar
	}
	return r, nil
}

// Resolve returns the command that launches the configured backend.
// An explicit binary path wins when it exists.
func (r *resolver) Resolve(projectPath string, cfg entity.ServerConfig) (Command, error) {
	variant := cfg.VariantOrDefault()

	if cfg.BinaryPath != "" {
		ok, err := r.fs.FileExists(cfg.BinaryPath)
		if err != nil {
			return Command{}, err
		}
		if ok {
			return r.command(variant, cfg.BinaryPath), nil
		}
	}

	switch variant {
	case entity.BackendTSServer:
		return r.resolveTSServer(projectPath)
	case entity.BackendNative:
		return r.resolveNative()
	default:
		return Command{}, &errors.ConfigurationError{
			Variant: string(variant),
			Reason:  "unknown backend variant",
		}
	}
}

func (r *resolver) resolveTSServer(projectPath string) (Command, error) {
	candidates := []string{}
	if r.cfg.TSServer.LocalPath != "" {
		candidates = append(candidates, filepath.Join(projectPath, r.cfg.TSServer.LocalPath))
	}
	if bundled := r.bundledPath(); bundled != "" {
		candidates = append(candidates, bundled)
	}

	path, err := r.firstExisting(candidates)
	if err != nil {
		return Command{}, err
	}
	if path == "" {
		return Command{}, &errors.ConfigurationError{
			Variant:  string(entity.BackendTSServer),
			Searched: candidates,
			Reason:   "tsserver.js not found",
		}
	}
	return r.command(entity.BackendTSServer, path), nil
}

func (r *resolver) resolveNative() (Command, error) {
	envVar := r.cfg.Native.EnvVar
	if path, ok := r.lookupEnv(envVar); ok && path != "" {
		exists, err := r.fs.FileExists(path)
		if err != nil {
			return Command{}, err
		}
		if exists {
			return r.command(entity.BackendNative, path), nil
		}
	}

	candidates := make([]string, 0, len(r.cfg.Native.WellKnownPaths))
	for _, p := range r.cfg.Native.WellKnownPaths {
		expanded, err := r.expandHome(p)
		if err != nil {
			return Command{}, err
		}
		candidates = append(candidates, expanded)
	}

	path, err := r.firstExisting(candidates)
	if err != nil {
		return Command{}, err
	}
	if path == "" {
		return Command{}, &errors.ConfigurationError{
			Variant:  string(entity.BackendNative),
			EnvVar:   envVar,
			Searched: candidates,
			Reason:   "executable not found",
		}
	}
	return r.command(entity.BackendNative, path), nil
}

// command builds the launch command. JavaScript entry points run through node.
func (r *resolver) command(variant entity.BackendVariant, path string) Command {
	var args []string
	if variant == entity.BackendNative {
		args = append(args, r.cfg.Native.Args...)
	} else {
		args = append(args, r.cfg.TSServer.Args...)
	}

	if strings.HasSuffix(path, ".js") {
		return Command{
			Path: r.cfg.TSServer.NodePath,
			Args: append([]string{path}, args...),
		}
	}
	return Command{Path: path, Args: args}
}

// bundledPath returns the application bundled tsserver.js. Relative packaged
// paths are resolved against the directory of the running executable.
func (r *resolver) bundledPath() string {
	if r.development {
		return r.cfg.TSServer.BundledPaths.Development
	}
	p := r.cfg.TSServer.BundledPaths.Packaged
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	exe, err := r.executable()
	if err != nil {
		return p
	}
	return filepath.Join(filepath.Dir(exe), p)
}

func (r *resolver) firstExisting(candidates []string) (string, error) {
	for _, c := range candidates {
		ok, err := r.fs.FileExists(c)
		if err != nil {
			return "", err
		}
		if ok {
			return c, nil
		}
	}
	return "", nil
}

func (r *resolver) expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := r.fs.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding %q: %w", p, err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
