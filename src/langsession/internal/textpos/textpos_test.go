package textpos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/langsession/src/langsession/entity"
)

func TestRuneLocation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		offset  int
		want    entity.Location
		wantErr bool
	}{
		{
			name:    "start of file",
			content: "const a = 1;\n",
			offset:  0,
			want:    entity.Location{Line: 1, Offset: 1},
		},
		{
			name:    "middle of first line",
			content: "const a = 1;\n",
			offset:  6,
			want:    entity.Location{Line: 1, Offset: 7},
		},
		{
			name:    "start of second line",
			content: "a\nbc\n",
			offset:  2,
			want:    entity.Location{Line: 2, Offset: 1},
		},
		{
			name:    "end of file after newline",
			content: "a\nbc\n",
			offset:  5,
			want:    entity.Location{Line: 3, Offset: 1},
		},
		{
			name:    "end of file without newline",
			content: "a\nbc",
			offset:  4,
			want:    entity.Location{Line: 2, Offset: 3},
		},
		{
			name:    "astral rune counts as two code units",
			content: "😀x",
			offset:  1,
			want:    entity.Location{Line: 1, Offset: 3},
		},
		{
			name:    "bmp multibyte rune counts as one code unit",
			content: "éx",
			offset:  1,
			want:    entity.Location{Line: 1, Offset: 2},
		},
		{
			name:    "negative offset",
			content: "a",
			offset:  -1,
			wantErr: true,
		},
		{
			name:    "offset past end",
			content: "a",
			offset:  2,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.content).RuneLocation(tt.offset)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLineCount(t *testing.T) {
	assert.Equal(t, 1, New("").LineCount())
	assert.Equal(t, 2, New("a\n").LineCount())
	assert.Equal(t, 3, New("a\nb\nc").LineCount())
}

func TestUTF16Len(t *testing.T) {
	assert.Equal(t, 0, UTF16Len(nil))
	assert.Equal(t, 3, UTF16Len([]rune("abc")))
	assert.Equal(t, 4, UTF16Len([]rune("a😀b")))
}
