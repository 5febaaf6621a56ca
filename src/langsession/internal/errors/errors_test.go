package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBadRequest(t *testing.T) {
	nb := New("not bad request")
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "no session id",
			err:  NoSessionIDError,
			want: true,
		},
		{
			name: "no project path, wrapped",
			err:  fmt.Errorf("starting: %w", NoProjectPathError),
			want: true,
		},
		{
			name: "no file",
			err:  NoFileError,
			want: true,
		},
		{
			name: "other",
			err:  nb,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBadRequest(tt.err))
		})
	}
}
