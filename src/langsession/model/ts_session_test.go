package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/uber/langsession/src/langsession/entity"
	"github.com/uber/langsession/src/langsession/internal/clock"
	"github.com/uber/langsession/src/langsession/internal/correlator"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewSession(t *testing.T) {
	started := time.Unix(1700000000, 0)
	s := NewSession("s1", "/repo", entity.ServerConfig{Variant: entity.BackendNative}, nil, correlator.New(time.Second, clock.New()), started)

	assert.Equal(t, "s1", s.ID)
	assert.Equal(t, "/repo", s.ProjectPath)
	assert.Equal(t, started, s.StartedAt)
	assert.NotNil(t, s.Decoder)
	assert.True(t, s.Alive())

	assert.True(t, s.MarkDead())
	assert.False(t, s.MarkDead())
	assert.False(t, s.Alive())
}

func TestDocuments(t *testing.T) {
	s := NewSession("s1", "/repo", entity.ServerConfig{}, nil, nil, time.Time{})

	_, ok := s.Document("/repo/a.ts")
	assert.False(t, ok)

	s.SetDocument("/repo/b.ts", "let b = 2;")
	s.SetDocument("/repo/a.ts", "let a = 1;")
	content, ok := s.Document("/repo/a.ts")
	assert.True(t, ok)
	assert.Equal(t, "let a = 1;", content)
	assert.Equal(t, []string{"/repo/a.ts", "/repo/b.ts"}, s.Documents())

	s.RemoveDocument("/repo/a.ts")
	assert.Equal(t, []string{"/repo/b.ts"}, s.Documents())
}
