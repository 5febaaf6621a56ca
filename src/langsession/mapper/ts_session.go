package mapper

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/uber/langsession/src/langsession/entity"
	"github.com/uber/langsession/src/langsession/internal/errors"
	"github.com/uber/langsession/src/langsession/model"
)

// ModelToSession maps a live model Session to its entity snapshot.
func ModelToSession(s *model.Session) *entity.Session {
	snapshot := &entity.Session{
		ID:          s.ID,
		ProjectPath: s.ProjectPath,
		Config:      s.Config,
		Alive:       s.Alive(),
		StartedAt:   s.StartedAt,
		OpenFiles:   len(s.Documents()),
	}
	if s.Process != nil {
		snapshot.PID = s.Process.PID()
	}
	if s.Pending != nil {
		snapshot.LastSeq = s.Pending.LastSeq()
		snapshot.PendingRequests = s.Pending.Len()
	}
	return snapshot
}

// ContextToConnectionUUID extracts the inbound connection UUID from a context.
func ContextToConnectionUUID(c context.Context) (uuid.UUID, error) {
	id, ok := c.Value(entity.ConnectionContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, &errors.NoConnectionFoundError{}
	}
	return id, nil
}

// ConnectionUUIDToContext returns a context carrying the inbound connection UUID.
func ConnectionUUIDToContext(c context.Context, id uuid.UUID) context.Context {
	return context.WithValue(c, entity.ConnectionContextKey, id)
}
