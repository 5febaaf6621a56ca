package projectsettings

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/langsession/src/langsession/entity"
	"github.com/uber/langsession/src/langsession/internal/fs"
	"github.com/uber/langsession/src/langsession/internal/fs/fsmock"
	"go.uber.org/mock/gomock"
)

func TestParse(t *testing.T) {
	tests := []struct {
		desc, input string
		expected    Settings
		wantErr     bool
	}{
		{
			desc:     "empty file",
			input:    "",
			expected: Settings{},
		},
		{
			desc: "native with binary",
			input: `# use the native backend for this project
variant: native
binaryPath: bin/tsgo
`,
			expected: Settings{Variant: entity.BackendNative, BinaryPath: "bin/tsgo"},
		},
		{
			desc:     "unknown variant keeps other fields",
			input:    "variant: flow\nbinaryPath: /opt/tsserver.js\n",
			expected: Settings{BinaryPath: "/opt/tsserver.js"},
			wantErr:  true,
		},
		{
			desc:    "malformed yaml",
			input:   "variant: [native\n",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			settings, err := Parse(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, settings)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		settings, err := Load(fs.New(), t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, Settings{}, settings)
	})

	t.Run("relative binary resolved", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("binaryPath: tools/tsserver.js\n"), 0644))

		settings, err := Load(fs.New(), dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "tools/tsserver.js"), settings.BinaryPath)
	})

	t.Run("read error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fsMock := fsmock.NewMockFS(ctrl)
		fsMock.EXPECT().ReadFile(filepath.Join("/repo", FileName)).Return(nil, errors.New("permission denied"))

		_, err := Load(fsMock, "/repo")
		assert.ErrorContains(t, err, "permission denied")
	})
}

func TestApply(t *testing.T) {
	s := Settings{Variant: entity.BackendNative, BinaryPath: "/opt/tsgo"}

	assert.Equal(t, entity.ServerConfig{Variant: entity.BackendNative, BinaryPath: "/opt/tsgo"}, s.Apply(entity.ServerConfig{}))
	assert.Equal(t,
		entity.ServerConfig{Variant: entity.BackendTSServer, BinaryPath: "/custom"},
		s.Apply(entity.ServerConfig{Variant: entity.BackendTSServer, BinaryPath: "/custom"}),
	)
}
