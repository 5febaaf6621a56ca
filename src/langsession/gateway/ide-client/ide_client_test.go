package ideclient

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/langsession/idl/mock/jsonrpc2mock"
	"github.com/uber/langsession/src/langsession/entity"
	"github.com/uber/langsession/src/langsession/factory"
	"github.com/uber/langsession/src/langsession/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestRegisterClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	g := gateway{
		clients:     make(map[uuid.UUID]protocol.Client),
		connections: make(map[uuid.UUID]jsonrpc2.Conn),
		logger:      zap.NewNop(),
	}

	for i := 0; i < 10; i++ {
		err := g.RegisterClient(ctx, factory.UUID(), jsonrpc2mock.NewMockConn(ctrl))
		assert.NoError(t, err)
	}

	assert.Len(t, g.clients, 10)
	assert.Len(t, g.connections, 10)
}

func TestDeregisterClient(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	g := gateway{
		clients:     make(map[uuid.UUID]protocol.Client),
		connections: make(map[uuid.UUID]jsonrpc2.Conn),
		logger:      zap.NewNop(),
	}

	for i := 0; i < 10; i++ {
		require.NoError(t, g.RegisterClient(ctx, factory.UUID(), jsonrpc2mock.NewMockConn(ctrl)))
	}

	// Remove clients one by one and confirm removal.
	for key := range g.clients {
		assert.NotNil(t, g.clients[key])
		assert.NoError(t, g.DeregisterClient(ctx, key))
		assert.Nil(t, g.clients[key])
	}
	assert.Len(t, g.clients, 0)
	assert.Len(t, g.connections, 0)
}

func TestNotify(t *testing.T) {
	g, mockConn, ctx := getTestGateway(t)

	event := entity.SessionEvent{SessionID: "s1", Topic: entity.TopicEvent, Event: "projectLoadingFinish"}

	t.Run("notification success", func(t *testing.T) {
		mockConn.EXPECT().Notify(gomock.Eq(ctx), gomock.Eq("tsserver/event"), gomock.Eq(event)).Return(nil)
		assert.NoError(t, g.Notify(ctx, "tsserver/event", event))
	})
	t.Run("notification failure", func(t *testing.T) {
		mockConn.EXPECT().Notify(gomock.Eq(ctx), gomock.Eq("tsserver/event"), gomock.Eq(event)).Return(errors.New("error"))
		assert.Error(t, g.Notify(ctx, "tsserver/event", event))
	})
	t.Run("invalid context", func(t *testing.T) {
		assert.Error(t, g.Notify(context.Background(), "tsserver/event", event))
	})
	t.Run("client not found", func(t *testing.T) {
		ctx := mapper.ConnectionUUIDToContext(context.Background(), factory.UUID())
		assert.Error(t, g.Notify(ctx, "tsserver/event", event))
	})
}

func TestPublishDiagnostics(t *testing.T) {
	g, mockConn, ctx := getTestGateway(t)

	params := &protocol.PublishDiagnosticsParams{
		URI:         mapper.PathToDocumentURI("/repo/a.ts"),
		Diagnostics: []protocol.Diagnostic{},
	}

	t.Run("notification success", func(t *testing.T) {
		mockConn.EXPECT().Notify(gomock.Eq(ctx), gomock.Eq(protocol.MethodTextDocumentPublishDiagnostics), gomock.Eq(params)).Return(nil)
		assert.NoError(t, g.PublishDiagnostics(ctx, params))
	})
	t.Run("notification failure", func(t *testing.T) {
		mockConn.EXPECT().Notify(gomock.Eq(ctx), gomock.Eq(protocol.MethodTextDocumentPublishDiagnostics), gomock.Eq(params)).Return(errors.New("error"))
		assert.Error(t, g.PublishDiagnostics(ctx, params))
	})
	t.Run("invalid context", func(t *testing.T) {
		assert.Error(t, g.PublishDiagnostics(context.Background(), params))
	})
}

func TestShowMessage(t *testing.T) {
	g, mockConn, ctx := getTestGateway(t)

	params := &protocol.ShowMessageParams{
		Message: "backend for session s1 exited with code 1",
		Type:    protocol.MessageTypeWarning,
	}

	t.Run("notification success", func(t *testing.T) {
		mockConn.EXPECT().Notify(gomock.Eq(ctx), gomock.Eq(protocol.MethodWindowShowMessage), gomock.Eq(params)).Return(nil)
		assert.NoError(t, g.ShowMessage(ctx, params))
	})
	t.Run("client not found", func(t *testing.T) {
		ctx := mapper.ConnectionUUIDToContext(context.Background(), factory.UUID())
		assert.Error(t, g.ShowMessage(ctx, params))
	})
}

func getTestGateway(t *testing.T) (Gateway, *jsonrpc2mock.MockConn, context.Context) {
	id := factory.UUID()
	ctx := mapper.ConnectionUUIDToContext(context.Background(), id)
	ctrl := gomock.NewController(t)

	mockConn := jsonrpc2mock.NewMockConn(ctrl)
	g := New(zap.NewNop())
	g.RegisterClient(ctx, id, mockConn)
	return g, mockConn, ctx
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
