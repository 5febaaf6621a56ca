package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionNotFound(t *testing.T) {
	err := fmt.Errorf("sending: %w", &SessionNotFoundError{ID: "s1"})
	assert.EqualError(t, err, `sending: session "s1" not found or not alive`)

	id, ok := NotFoundSession(err)
	require.True(t, ok)
	assert.Equal(t, "s1", id)

	_, ok = NotFoundSession(New("other"))
	assert.False(t, ok)
}

func TestConfigurationError(t *testing.T) {
	tests := []struct {
		name string
		err  *ConfigurationError
		want string
	}{
		{
			name: "reason only",
			err:  &ConfigurationError{Variant: "tsserver", Reason: "project path is not a directory"},
			want: "tsserver backend: project path is not a directory",
		},
		{
			name: "searched with env var",
			err: &ConfigurationError{
				Variant:  "native",
				EnvVar:   "TSGO_PATH",
				Searched: []string{"/a/tsgo", "/b/tsgo"},
				Reason:   "executable not found",
			},
			want: "native backend: executable not found (searched /a/tsgo, /b/tsgo); set TSGO_PATH to the backend executable path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.True(t, IsConfiguration(fmt.Errorf("wrapped: %w", tt.err)))
		})
	}

	assert.False(t, IsConfiguration(New("other")))
}

func TestProcessErrors(t *testing.T) {
	t.Run("exit code", func(t *testing.T) {
		err := fmt.Errorf("request: %w", &ProcessExitedError{SessionID: "s1", Code: 3})
		code, ok := ExitCode(err)
		require.True(t, ok)
		assert.Equal(t, 3, code)
		assert.Contains(t, err.Error(), "exited with code 3")

		_, ok = ExitCode(New("other"))
		assert.False(t, ok)
	})

	t.Run("fault unwraps", func(t *testing.T) {
		cause := New("broken pipe")
		err := &ProcessFaultError{SessionID: "s1", Err: cause}
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, `session "s1" process fault: broken pipe`, err.Error())
	})
}
