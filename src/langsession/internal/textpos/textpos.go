// Package textpos converts offsets within document content to the
// 1-based line and UTF-16 column locations used by the backend.
package textpos

import (
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/uber/langsession/src/langsession/entity"
)

// Mapper maps rune offsets within Content to line/offset locations.
type Mapper struct {
	Content []rune

	linesOnce sync.Once
	lineStart []int // rune offset of start of ith line (0-based)
}

// New creates a mapper for the given content.
func New(content string) *Mapper {
	return &Mapper{Content: []rune(content)}
}

func (m *Mapper) initLines() {
	m.linesOnce.Do(func() {
		m.lineStart = []int{0}
		for i, r := range m.Content {
			if r == '\n' {
				m.lineStart = append(m.lineStart, i+1)
			}
		}
	})
}

// RuneLocation converts a rune offset to a 1-based line and 1-based UTF-16 column.
// An offset equal to len(Content) denotes end of file.
func (m *Mapper) RuneLocation(offset int) (entity.Location, error) {
	if offset < 0 || offset > len(m.Content) {
		return entity.Location{}, fmt.Errorf("invalid offset %d (want 0-%d)", offset, len(m.Content))
	}
	m.initLines()

	line := sort.Search(len(m.lineStart), func(i int) bool {
		return offset < m.lineStart[i]
	}) - 1

	start := m.lineStart[line]
	return entity.Location{
		Line:   line + 1,
		Offset: UTF16Len(m.Content[start:offset]) + 1,
	}, nil
}

// LineCount returns the number of lines in the content.
func (m *Mapper) LineCount() int {
	m.initLines()
	return len(m.lineStart)
}

// UTF16Len returns the number of UTF-16 code units required to encode runes.
func UTF16Len(runes []rune) int {
	n := 0
	for _, r := range runes {
		if r >= 0x10000 && r <= utf8.MaxRune {
			n += 2 // surrogate pair
		} else {
			n++
		}
	}
	return n
}
