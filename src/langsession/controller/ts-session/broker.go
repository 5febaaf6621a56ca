package tssession

import (
	"context"
	"fmt"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	"github.com/uber/langsession/src/langsession/entity"
	"github.com/uber/langsession/src/langsession/internal/errors"
	"go.uber.org/zap"
)

const _subscriptionBuffer = 64

// Subscription receives the signals selected at Subscribe time. Events is
// closed when the subscription ends.
type Subscription struct {
	ID        uuid.UUID
	SessionID string
	Events    <-chan entity.SessionEvent

	topics map[entity.Topic]struct{}
	sink   chan entity.SessionEvent
}

func (s *Subscription) matches(ev entity.SessionEvent) bool {
	if s.SessionID != "" && s.SessionID != ev.SessionID {
		return false
	}
	_, ok := s.topics[ev.Topic]
	return ok
}

// broker fans session signals out to subscribers. Delivery never blocks the
// publishing read loop; a subscriber with a full buffer misses the signal.
type broker struct {
	mu     sync.RWMutex
	subs   map[uuid.UUID]*Subscription
	logger *zap.SugaredLogger
	stats  tally.Scope
}

func newBroker(logger *zap.SugaredLogger, stats tally.Scope) *broker {
	return &broker{
		subs:   make(map[uuid.UUID]*Subscription),
		logger: logger,
		stats:  stats,
	}
}

func (b *broker) subscribe(sessionID string, topics []entity.Topic) (*Subscription, error) {
	if len(topics) == 0 {
		topics = entity.AllTopics
	}
	set := make(map[entity.Topic]struct{}, len(topics))
	for _, t := range topics {
		if !t.Valid() {
			return nil, fmt.Errorf("unknown topic %q", t)
		}
		set[t] = struct{}{}
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("generating subscription id: %w", err)
	}

	sink := make(chan entity.SessionEvent, _subscriptionBuffer)
	sub := &Subscription{
		ID:        id,
		SessionID: sessionID,
		Events:    sink,
		topics:    set,
		sink:      sink,
	}

	b.mu.Lock()
	b.subs[id] = sub
	b.mu.Unlock()
	return sub, nil
}

func (b *broker) unsubscribe(id uuid.UUID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub, ok := b.subs[id]
	if !ok {
		return false
	}
	delete(b.subs, id)
	close(sub.sink)
	return true
}

func (b *broker) publish(ev entity.SessionEvent) {
	b.stats.Counter(_counterEvents).Inc(1)

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs {
		if !sub.matches(ev) {
			continue
		}
		select {
		case sub.sink <- ev:
		default:
			b.stats.Counter(_counterEventsDropped).Inc(1)
			b.logger.Warnw("subscriber too slow, dropping signal",
				"subscription", sub.ID.String(),
				"session", ev.SessionID,
				"topic", ev.Topic,
				"event", ev.Event,
			)
		}
	}
}

func (b *broker) closeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, sub := range b.subs {
		delete(b.subs, id)
		close(sub.sink)
	}
}

func (b *broker) len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.subs)
}

func (c *controller) Subscribe(ctx context.Context, sessionID string, topics []entity.Topic) (*Subscription, error) {
	sub, err := c.broker.subscribe(sessionID, topics)
	if err != nil {
		return nil, err
	}
	c.logger.Debugw("subscribed", "subscription", sub.ID.String(), "session", sessionID, "topics", topics)
	return sub, nil
}

func (c *controller) Unsubscribe(ctx context.Context, id uuid.UUID) error {
	if !c.broker.unsubscribe(id) {
		return &errors.UUIDNotFoundError{UUID: id}
	}
	return nil
}
