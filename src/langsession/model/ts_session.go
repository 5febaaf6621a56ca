package model

import (
	"io"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/uber/langsession/src/langsession/entity"
	"github.com/uber/langsession/src/langsession/gateway/backend"
	"github.com/uber/langsession/src/langsession/internal/correlator"
	"github.com/uber/langsession/src/langsession/internal/wire"
)

// Session is the repository layer model for one supervised backend.
// The process handle, the decode buffer and the pending table are owned by
// the session and never shared.
type Session struct {
	ID          string
	ProjectPath string
	Config      entity.ServerConfig
	StartedAt   time.Time

	Process backend.Process
	Pending *correlator.Table
	// Decoder is only touched by the session's read loop.
	Decoder *wire.Decoder
	// WriteMu serializes sequence assignment and stdin writes.
	WriteMu sync.Mutex

	// Watcher and Stderr are released when the session stops. Either may be nil.
	Watcher io.Closer
	Stderr  io.WriteCloser

	// LoopDone is closed when the read loop returns.
	LoopDone chan struct{}

	alive atomic.Bool

	docsMu    sync.Mutex
	documents map[string]string
}

// NewSession creates a live session around a started process.
func NewSession(id, projectPath string, cfg entity.ServerConfig, proc backend.Process, pending *correlator.Table, startedAt time.Time) *Session {
	s := &Session{
		ID:          id,
		ProjectPath: projectPath,
		Config:      cfg,
		StartedAt:   startedAt,
		Process:     proc,
		Pending:     pending,
		Decoder:     wire.NewDecoder(),
		LoopDone:    make(chan struct{}),
		documents:   make(map[string]string),
	}
	s.alive.Store(true)
	return s
}

// Alive reports whether the backend is believed to be running.
func (s *Session) Alive() bool { return s.alive.Load() }

// MarkDead clears the liveness flag. It reports whether this call changed it.
func (s *Session) MarkDead() bool { return s.alive.CompareAndSwap(true, false) }

// Document returns the last content sent to the backend for file.
func (s *Session) Document(file string) (string, bool) {
	s.docsMu.Lock()
	defer s.docsMu.Unlock()

	content, ok := s.documents[file]
	return content, ok
}

// SetDocument records the content the backend now holds for file.
func (s *Session) SetDocument(file, content string) {
	s.docsMu.Lock()
	defer s.docsMu.Unlock()

	s.documents[file] = content
}

// RemoveDocument forgets file.
func (s *Session) RemoveDocument(file string) {
	s.docsMu.Lock()
	defer s.docsMu.Unlock()

	delete(s.documents, file)
}

// Documents returns the open files in sorted order.
func (s *Session) Documents() []string {
	s.docsMu.Lock()
	defer s.docsMu.Unlock()

	files := make([]string, 0, len(s.documents))
	for f := range s.documents {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}
