package serverinfofile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

func staticConfig(t *testing.T, data map[string]interface{}) config.Provider {
	p, err := config.NewStaticProvider(data)
	require.NoError(t, err)
	return p
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  map[string]interface{}
		wantErr bool
	}{
		{
			name:   "all required params are present",
			config: map[string]interface{}{_configKeyInfoFile: "/tmp/langsession-info.json"},
		},
		{
			name:    "missing key",
			config:  map[string]interface{}{},
			wantErr: true,
		},
		{
			name:    "incorrectly formatted",
			config:  map[string]interface{}{_configKeyInfoFile: map[string]interface{}{"a": "b"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Params{
				Config:    staticConfig(t, tt.config),
				Lifecycle: fxtest.NewLifecycle(t),
				Logger:    zap.NewNop().Sugar(),
			})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateAndRemoveField(t *testing.T) {
	infofile := filepath.Join(t.TempDir(), "info.json")
	m := module{
		logger:       zap.NewNop().Sugar(),
		infofile:     infofile,
		fileContents: make(map[string]string),
	}

	readFile := func() map[string]string {
		content, err := os.ReadFile(infofile)
		require.NoError(t, err)
		var fields map[string]string
		require.NoError(t, json.Unmarshal(content, &fields))
		return fields
	}

	require.NoError(t, m.UpdateField("jsonrpc-address", "127.0.0.1:27883"))
	require.NoError(t, m.UpdateField("stderr:s1", "/tmp/s1.log"))
	assert.Equal(t, map[string]string{
		"jsonrpc-address": "127.0.0.1:27883",
		"stderr:s1":       "/tmp/s1.log",
	}, readFile())

	require.NoError(t, m.RemoveField("stderr:s1"))
	assert.Equal(t, map[string]string{"jsonrpc-address": "127.0.0.1:27883"}, readFile())

	// Unknown keys are ignored.
	require.NoError(t, m.RemoveField("stderr:unknown"))
}

func TestUpdateFieldWriteError(t *testing.T) {
	m := module{
		logger:       zap.NewNop().Sugar(),
		infofile:     filepath.Join(t.TempDir(), "missing-dir", "info.json"),
		fileContents: make(map[string]string),
	}
	assert.ErrorContains(t, m.UpdateField("key", "value"), "writing info file")
}

func TestOnStop(t *testing.T) {
	t.Run("file removed", func(t *testing.T) {
		tempFile, err := os.CreateTemp("", "test")
		require.NoError(t, err)
		defer os.Remove(tempFile.Name())
		tempFile.Close()

		m := module{
			logger:   zap.NewNop().Sugar(),
			infofile: tempFile.Name(),
		}

		require.NoError(t, m.OnStop(context.Background()))
		_, err = os.Stat(tempFile.Name())
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("file never written", func(t *testing.T) {
		m := module{
			logger:   zap.NewNop().Sugar(),
			infofile: filepath.Join(t.TempDir(), "never.json"),
		}
		assert.NoError(t, m.OnStop(context.Background()))
	})
}
