// Package tssession implements the langsession JSON-RPC handlers.
package tssession

import (
	"context"
	"fmt"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	controller "github.com/uber/langsession/src/langsession/controller/ts-session"
	ideclient "github.com/uber/langsession/src/langsession/gateway/ide-client"
	"github.com/uber/langsession/src/langsession/factory"
	"github.com/uber/langsession/src/langsession/internal/jsonrpcfx"
	"github.com/uber/langsession/src/langsession/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/zap"
)

const _gaugeConnections = "connections"

// Handler accepts collaborator connections on the JSON-RPC inbound.
type Handler = jsonrpcfx.ConnectionManager

// New constructs the session Handler and registers it with the JSON-RPC module.
func New(ctrl controller.Controller, ideGateway ideclient.Gateway, jsonrpcmod jsonrpcfx.JSONRPCModule, logger *zap.SugaredLogger, stats tally.Scope) (Handler, error) {
	c := &jsonRPCConnectionManager{
		ctrl:        ctrl,
		ideGateway:  ideGateway,
		logger:      logger.Named("jsonrpc"),
		stats:       stats.SubScope("json_rpc"),
		connections: make(map[uuid.UUID]*connection),
	}
	if err := jsonrpcmod.RegisterConnectionManager(c); err != nil {
		return nil, fmt.Errorf("registering connection manager: %w", err)
	}
	return c, nil
}

type jsonRPCConnectionManager struct {
	ctrl       controller.Controller
	ideGateway ideclient.Gateway
	logger     *zap.SugaredLogger
	stats      tally.Scope

	mu          sync.Mutex
	connections map[uuid.UUID]*connection
}

// NewConnection will store a new connection and return a router that includes its UUID.
func (c *jsonRPCConnectionManager) NewConnection(ctx context.Context, conn jsonrpc2.Conn) (router jsonrpcfx.Router, err error) {
	id := factory.UUID()
	ctx = mapper.ConnectionUUIDToContext(ctx, id)
	if err := c.ideGateway.RegisterClient(ctx, id, conn); err != nil {
		return nil, fmt.Errorf("error while creating new connection: %w", err)
	}

	cn := newConnection(id, c.ctrl, c.ideGateway, c.logger.With("connection", id.String()))

	c.mu.Lock()
	c.connections[id] = cn
	c.stats.Gauge(_gaugeConnections).Update(float64(len(c.connections)))
	c.mu.Unlock()

	return &jsonRPCRouter{
		ctrl:  c.ctrl,
		conn:  cn,
		uuid:  id,
		stats: c.stats,
	}, nil
}

// RemoveConnection cleans up a closed connection. Subscriptions made over it are cancelled.
func (c *jsonRPCConnectionManager) RemoveConnection(ctx context.Context, id uuid.UUID) {
	c.mu.Lock()
	cn, ok := c.connections[id]
	delete(c.connections, id)
	c.stats.Gauge(_gaugeConnections).Update(float64(len(c.connections)))
	c.mu.Unlock()

	ctx = mapper.ConnectionUUIDToContext(ctx, id)
	if ok {
		cn.close(ctx)
	}
	if err := c.ideGateway.DeregisterClient(ctx, id); err != nil {
		c.logger.Warnw("deregistering client", "connection", id.String(), zap.Error(err))
	}
}
