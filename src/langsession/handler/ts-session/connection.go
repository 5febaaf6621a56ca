package tssession

import (
	"context"
	"fmt"
	"sync"

	"github.com/gofrs/uuid"
	controller "github.com/uber/langsession/src/langsession/controller/ts-session"
	"github.com/uber/langsession/src/langsession/entity"
	ideclient "github.com/uber/langsession/src/langsession/gateway/ide-client"
	"github.com/uber/langsession/src/langsession/internal/errors"
	"github.com/uber/langsession/src/langsession/mapper"
	"go.lsp.dev/protocol"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Notifications sent to a connection for its subscriptions.
const (
	MethodNotifyEvent = "tsserver/event"
	MethodNotifyExit  = "tsserver/exit"
	MethodNotifyError = "tsserver/error"
)

// connection tracks the subscriptions owned by one inbound connection and
// forwards their signals back over it.
type connection struct {
	id         uuid.UUID
	ctrl       controller.Controller
	ideGateway ideclient.Gateway
	logger     *zap.SugaredLogger

	mu     sync.Mutex
	subs   map[uuid.UUID]struct{}
	closed bool
	wg     sync.WaitGroup
}

func newConnection(id uuid.UUID, ctrl controller.Controller, ideGateway ideclient.Gateway, logger *zap.SugaredLogger) *connection {
	return &connection{
		id:         id,
		ctrl:       ctrl,
		ideGateway: ideGateway,
		logger:     logger,
		subs:       make(map[uuid.UUID]struct{}),
	}
}

// subscribe creates a subscription and starts forwarding it to the client.
func (c *connection) subscribe(ctx context.Context, params entity.SubscribeParams) (*entity.SubscribeResult, error) {
	sub, err := c.ctrl.Subscribe(ctx, params.SessionID, params.Topics)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, multierr.Append(fmt.Errorf("connection %q is closing", c.id), c.ctrl.Unsubscribe(ctx, sub.ID))
	}
	c.subs[sub.ID] = struct{}{}
	c.wg.Add(1)
	c.mu.Unlock()

	go c.forward(sub)
	return &entity.SubscribeResult{SubscriptionID: sub.ID}, nil
}

// unsubscribe cancels a subscription owned by this connection.
func (c *connection) unsubscribe(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	_, ok := c.subs[id]
	delete(c.subs, id)
	c.mu.Unlock()

	if !ok {
		return &errors.UUIDNotFoundError{UUID: id}
	}
	return c.ctrl.Unsubscribe(ctx, id)
}

// close cancels every subscription and waits for their forwarders to drain.
func (c *connection) close(ctx context.Context) {
	c.mu.Lock()
	c.closed = true
	ids := make([]uuid.UUID, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	c.subs = make(map[uuid.UUID]struct{})
	c.mu.Unlock()

	for _, id := range ids {
		// Subscriptions already closed by application shutdown are not found.
		if err := c.ctrl.Unsubscribe(ctx, id); err != nil {
			if _, notFound := errors.NotFoundUUID(err); !notFound {
				c.logger.Warnw("cancelling subscription", "subscription", id.String(), zap.Error(err))
			}
		}
	}
	c.wg.Wait()
}

func (c *connection) forward(sub *controller.Subscription) {
	defer c.wg.Done()

	ctx := mapper.ConnectionUUIDToContext(context.Background(), c.id)
	for ev := range sub.Events {
		if err := c.deliver(ctx, ev); err != nil {
			c.logger.Warnw("forwarding session signal",
				"subscription", sub.ID.String(),
				"session", ev.SessionID,
				"topic", ev.Topic,
				zap.Error(err),
			)
		}
	}
}

func (c *connection) deliver(ctx context.Context, ev entity.SessionEvent) error {
	switch ev.Topic {
	case entity.TopicDiagnostics:
		params, err := mapper.DiagnosticEventToPublishParams(ev.Body)
		if err != nil {
			return err
		}
		return c.ideGateway.PublishDiagnostics(ctx, params)

	case entity.TopicError:
		return multierr.Append(
			c.ideGateway.Notify(ctx, MethodNotifyError, ev),
			c.ideGateway.ShowMessage(ctx, &protocol.ShowMessageParams{
				Type:    protocol.MessageTypeError,
				Message: fmt.Sprintf("Session %q failed: %s", ev.SessionID, ev.Error),
			}),
		)

	case entity.TopicExit:
		err := c.ideGateway.Notify(ctx, MethodNotifyExit, ev)
		if ev.ExitCode != nil && *ev.ExitCode != 0 {
			err = multierr.Append(err, c.ideGateway.ShowMessage(ctx, &protocol.ShowMessageParams{
				Type:    protocol.MessageTypeWarning,
				Message: fmt.Sprintf("Session %q backend exited with code %d", ev.SessionID, *ev.ExitCode),
			}))
		}
		return err

	default:
		return c.ideGateway.Notify(ctx, MethodNotifyEvent, ev)
	}
}
