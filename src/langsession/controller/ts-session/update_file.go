package tssession

import (
	"context"
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/uber/langsession/src/langsession/entity"
	"github.com/uber/langsession/src/langsession/internal/textpos"
)

type changeArgs struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	Offset       int    `json:"offset"`
	EndLine      int    `json:"endLine"`
	EndOffset    int    `json:"endOffset"`
	InsertString string `json:"insertString"`
}

// UpdateFile sends the single smallest edit that turns the last content sent for
// file into content. Unknown files are opened with their full content instead.
func (c *controller) UpdateFile(ctx context.Context, sessionID string, file string, content string) error {
	s, err := c.liveSession(ctx, sessionID)
	if err != nil {
		return err
	}

	previous, ok := s.Document(file)
	if !ok {
		return c.OpenFile(ctx, sessionID, file, content)
	}
	if previous == content {
		return nil
	}

	args, err := computeChange(file, previous, content)
	if err != nil {
		return fmt.Errorf("computing change for %s: %w", file, err)
	}
	if err := c.notify(s, entity.CommandChange, args); err != nil {
		return fmt.Errorf("updating %s: %w", file, err)
	}
	s.SetDocument(file, content)
	return nil
}

// computeChange replaces the region between the common prefix and the common
// suffix of before and after.
func computeChange(file string, before string, after string) (changeArgs, error) {
	dmp := diffmatchpatch.New()
	oldRunes := []rune(before)
	newRunes := []rune(after)

	prefix := dmp.DiffCommonPrefix(before, after)
	suffix := dmp.DiffCommonSuffix(before, after)
	// The prefix and suffix may overlap when text is repeated around the edit.
	if limit := min(len(oldRunes), len(newRunes)) - prefix; suffix > limit {
		suffix = limit
	}

	m := textpos.New(before)
	start, err := m.RuneLocation(prefix)
	if err != nil {
		return changeArgs{}, err
	}
	end, err := m.RuneLocation(len(oldRunes) - suffix)
	if err != nil {
		return changeArgs{}, err
	}

	return changeArgs{
		File:         file,
		Line:         start.Line,
		Offset:       start.Offset,
		EndLine:      end.Line,
		EndOffset:    end.Offset,
		InsertString: string(newRunes[prefix : len(newRunes)-suffix]),
	}, nil
}
