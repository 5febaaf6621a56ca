// Package projectsettings reads per-project backend defaults.
package projectsettings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/uber/langsession/src/langsession/entity"
	"github.com/uber/langsession/src/langsession/internal/fs"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// FileName is the settings file looked up at the project root.
const FileName = ".langsession.yaml"

// Settings stores the contents of a project settings file.
type Settings struct {
	Variant    entity.BackendVariant
	BinaryPath string
}

// Parse reads a settings file. It is best effort: fields that are valid
// are returned together with errors describing the invalid ones.
func Parse(r io.Reader) (settings Settings, err error) {
	var content struct {
		Variant    string `yaml:"variant"`
		BinaryPath string `yaml:"binaryPath"`
	}
	if e := yaml.NewDecoder(r).Decode(&content); e != nil && !errors.Is(e, io.EOF) {
		return settings, e
	}

	switch v := entity.BackendVariant(content.Variant); v {
	case "", entity.BackendTSServer, entity.BackendNative:
		settings.Variant = v
	default:
		err = multierr.Append(err, fmt.Errorf("unknown variant %q", content.Variant))
	}
	settings.BinaryPath = content.BinaryPath
	return settings, err
}

// Load reads the settings file of the project, if any. Relative binary
// paths are resolved against the project root.
func Load(fsys fs.FS, projectPath string) (Settings, error) {
	name := filepath.Join(projectPath, FileName)
	data, err := fsys.ReadFile(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("reading %s: %w", name, err)
	}

	settings, err := Parse(bytes.NewReader(data))
	if settings.BinaryPath != "" && !filepath.IsAbs(settings.BinaryPath) {
		settings.BinaryPath = filepath.Join(projectPath, settings.BinaryPath)
	}
	if err != nil {
		err = fmt.Errorf("parsing %s: %w", name, err)
	}
	return settings, err
}

// Apply fills empty fields of cfg with the project settings.
func (s Settings) Apply(cfg entity.ServerConfig) entity.ServerConfig {
	if cfg.Variant == "" {
		cfg.Variant = s.Variant
	}
	if cfg.BinaryPath == "" {
		cfg.BinaryPath = s.BinaryPath
	}
	return cfg
}
