package tssession

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"github.com/uber/langsession/idl/mock/jsonrpc2mock"
	"github.com/uber/langsession/src/langsession/controller/ts-session/tssessionmock"
	"github.com/uber/langsession/src/langsession/gateway/ide-client/ideclientmock"
	"github.com/uber/langsession/src/langsession/internal/jsonrpcfx/jsonrpcfxmock"
	"github.com/uber/langsession/src/langsession/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type handlerFixture struct {
	ctrl       *tssessionmock.MockController
	ideGateway *ideclientmock.MockGateway
	stats      tally.TestScope
	mgr        *jsonRPCConnectionManager
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	mockCtrl := gomock.NewController(t)
	f := &handlerFixture{
		ctrl:       tssessionmock.NewMockController(mockCtrl),
		ideGateway: ideclientmock.NewMockGateway(mockCtrl),
		stats:      tally.NewTestScope("testing", make(map[string]string, 0)),
	}
	f.mgr = &jsonRPCConnectionManager{
		ctrl:        f.ctrl,
		ideGateway:  f.ideGateway,
		logger:      zap.NewNop().Sugar(),
		stats:       f.stats,
		connections: make(map[uuid.UUID]*connection),
	}
	return f
}

func TestNew(t *testing.T) {
	t.Run("registers connection manager", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		jsonRPCMock := jsonrpcfxmock.NewMockJSONRPCModule(ctrl)
		jsonRPCMock.EXPECT().RegisterConnectionManager(gomock.Any()).Return(nil)

		h, err := New(tssessionmock.NewMockController(ctrl), ideclientmock.NewMockGateway(ctrl), jsonRPCMock, zap.NewNop().Sugar(), tally.NoopScope)
		require.NoError(t, err)
		assert.IsType(t, &jsonRPCConnectionManager{}, h)
	})

	t.Run("duplicate registration", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		jsonRPCMock := jsonrpcfxmock.NewMockJSONRPCModule(ctrl)
		jsonRPCMock.EXPECT().RegisterConnectionManager(gomock.Any()).Return(errors.New("cannot register a duplicate connection manager"))

		_, err := New(tssessionmock.NewMockController(ctrl), ideclientmock.NewMockGateway(ctrl), jsonRPCMock, zap.NewNop().Sugar(), tally.NoopScope)
		assert.ErrorContains(t, err, "registering connection manager")
	})
}

func TestNewConnection(t *testing.T) {
	ctx := context.Background()
	f := newHandlerFixture(t)
	conn := jsonrpc2mock.NewMockConn(gomock.NewController(t))

	t.Run("create success", func(t *testing.T) {
		f.ideGateway.EXPECT().RegisterClient(gomock.Any(), gomock.Any(), conn).DoAndReturn(func(ctx context.Context, id uuid.UUID, c jsonrpc2.Conn) error {
			ctxID, err := mapper.ContextToConnectionUUID(ctx)
			assert.NoError(t, err)
			assert.Equal(t, id, ctxID)
			return nil
		})
		router, err := f.mgr.NewConnection(ctx, conn)
		require.NoError(t, err)
		assert.IsType(t, &jsonRPCRouter{}, router)
		assert.NotEqual(t, uuid.Nil, router.UUID())
		assert.Equal(t, float64(1), f.stats.Snapshot().Gauges()["testing.connections+"].Value())
	})

	t.Run("create failure", func(t *testing.T) {
		f.ideGateway.EXPECT().RegisterClient(gomock.Any(), gomock.Any(), conn).Return(errors.New("error"))
		_, err := f.mgr.NewConnection(ctx, conn)
		assert.Error(t, err)
		assert.Len(t, f.mgr.connections, 1)
	})
}

func TestRemoveConnection(t *testing.T) {
	ctx := context.Background()
	f := newHandlerFixture(t)
	conn := jsonrpc2mock.NewMockConn(gomock.NewController(t))

	f.ideGateway.EXPECT().RegisterClient(gomock.Any(), gomock.Any(), conn).Return(nil)
	router, err := f.mgr.NewConnection(ctx, conn)
	require.NoError(t, err)

	f.ideGateway.EXPECT().DeregisterClient(gomock.Any(), router.UUID()).DoAndReturn(func(ctx context.Context, id uuid.UUID) error {
		ctxID, err := mapper.ContextToConnectionUUID(ctx)
		assert.NoError(t, err)
		assert.Equal(t, id, ctxID)
		return errors.New("already gone")
	})
	f.mgr.RemoveConnection(ctx, router.UUID())
	assert.Empty(t, f.mgr.connections)
	assert.Equal(t, float64(0), f.stats.Snapshot().Gauges()["testing.connections+"].Value())
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newMockReplier() jsonrpc2.Replier {
	return func(ctx context.Context, result interface{}, err error) error {
		return err
	}
}
