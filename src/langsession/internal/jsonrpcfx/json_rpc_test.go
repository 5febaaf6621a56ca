package jsonrpcfx

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/langsession/src/langsession/internal/serverinfofile/serverinfofilemock"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newConfigProvider(t *testing.T, data map[string]interface{}) config.Provider {
	p, err := config.NewStaticProvider(data)
	require.NoError(t, err)
	return p
}

func validConfig() map[string]interface{} {
	return map[string]interface{}{
		"jsonrpc": map[string]interface{}{"address": "127.0.0.1:0"},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{
			name:    "missing required params",
			params:  Params{},
			wantErr: true,
		},
		{
			name: "all required params are present",
			params: Params{
				Lifecycle: fxtest.NewLifecycle(t),
				Config:    newConfigProvider(t, validConfig()),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.params)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessConfig(t *testing.T) {
	tests := []struct {
		name        string
		config      map[string]interface{}
		errorString string
	}{
		{
			name:   "valid configuration",
			config: validConfig(),
		},
		{
			name:        "missing address key",
			config:      map[string]interface{}{"jsonrpc": map[string]interface{}{}},
			errorString: "missing field \"jsonrpc.address\" in config",
		},
		{
			name:        "missing address value",
			config:      map[string]interface{}{"jsonrpc": map[string]interface{}{"address": ""}},
			errorString: "missing field \"jsonrpc.address\" in config",
		},
		{
			name: "incorrectly formatted entry",
			config: map[string]interface{}{
				"jsonrpc": map[string]interface{}{"address": map[string]interface{}{"key": "val"}},
			},
			errorString: "getting config field \"jsonrpc.address\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := module{logger: zap.NewNop().Sugar()}
			err := m.processConfig(newConfigProvider(t, tt.config))

			if tt.errorString != "" {
				assert.ErrorContains(t, err, tt.errorString)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "127.0.0.1:0", m.Address)
			}
		})
	}
}

func TestRegisterConnectionManager(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := module{}

	mockConnectionManager := NewMockConnectionManager(ctrl)

	// first call should return no error
	assert.NoError(t, m.RegisterConnectionManager(mockConnectionManager))

	// duplicate call should return error
	assert.Error(t, m.RegisterConnectionManager(mockConnectionManager))
}

func newPipeConn(t *testing.T) (jsonrpc2.Conn, net.Conn) {
	server, client := net.Pipe()
	t.Cleanup(func() { client.Close() })
	return jsonrpc2.NewConn(jsonrpc2.NewStream(server)), client
}

func TestServeStream(t *testing.T) {
	ctx := context.Background()

	t.Run("no connection manager registered", func(t *testing.T) {
		m := module{logger: zap.NewNop().Sugar()}
		conn, _ := newPipeConn(t)
		assert.Error(t, m.ServeStream(ctx, conn))
	})

	t.Run("failed NewConnection", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mgr := NewMockConnectionManager(ctrl)
		m := module{logger: zap.NewNop().Sugar(), connectionMgr: mgr}

		conn, _ := newPipeConn(t)
		mgr.EXPECT().NewConnection(gomock.Any(), conn).Return(nil, errors.New("sample error"))
		assert.ErrorContains(t, m.ServeStream(ctx, conn), "sample error")
	})

	t.Run("peer closes connection", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mgr := NewMockConnectionManager(ctrl)
		router := NewMockRouter(ctrl)
		id := uuid.Must(uuid.NewV4())
		router.EXPECT().UUID().Return(id).AnyTimes()
		m := module{logger: zap.NewNop().Sugar(), connectionMgr: mgr}

		conn, client := newPipeConn(t)
		mgr.EXPECT().NewConnection(gomock.Any(), conn).Return(router, nil)
		mgr.EXPECT().RemoveConnection(gomock.Any(), id)

		go client.Close()
		m.ServeStream(ctx, conn)
	})

	t.Run("server shutdown", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mgr := NewMockConnectionManager(ctrl)
		router := NewMockRouter(ctrl)
		id := uuid.Must(uuid.NewV4())
		router.EXPECT().UUID().Return(id).AnyTimes()
		m := module{logger: zap.NewNop().Sugar(), connectionMgr: mgr}

		conn, _ := newPipeConn(t)
		mgr.EXPECT().NewConnection(gomock.Any(), conn).Return(router, nil)
		mgr.EXPECT().RemoveConnection(gomock.Any(), id)

		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()
		m.ServeStream(cancelCtx, conn)
	})
}

func TestSetup(t *testing.T) {
	m := module{logger: zap.NewNop().Sugar()}
	assert.Error(t, m.setup())

	m = module{Address: "127.0.0.1:0"}
	require.NoError(t, m.setup())
	m.ln.Close()
}

func TestOnStartError(t *testing.T) {
	t.Run("no address", func(t *testing.T) {
		m := module{logger: zap.NewNop().Sugar()}
		assert.Error(t, m.OnStart(context.Background()))
	})

	t.Run("server info file failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		infoFileMock := serverinfofilemock.NewMockServerInfoFile(ctrl)
		infoFileMock.EXPECT().UpdateField(_outputKey, gomock.Any()).Return(errors.New("sample"))

		m := module{
			Address:        "127.0.0.1:0",
			serverInfoFile: infoFileMock,
			logger:         zap.NewNop().Sugar(),
		}
		assert.Error(t, m.OnStart(context.Background()))
	})
}

func TestOnStopBeforeStart(t *testing.T) {
	m := module{logger: zap.NewNop().Sugar()}
	assert.NoError(t, m.OnStop(context.Background()))
}

func TestRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ctrl := gomock.NewController(t)
	infoFileMock := serverinfofilemock.NewMockServerInfoFile(ctrl)
	mgr := NewMockConnectionManager(ctrl)
	router := NewMockRouter(ctrl)
	id := uuid.Must(uuid.NewV4())
	router.EXPECT().UUID().Return(id).AnyTimes()

	m := module{
		Address:        "127.0.0.1:0",
		serverInfoFile: infoFileMock,
		logger:         zap.NewNop().Sugar(),
	}
	require.NoError(t, m.RegisterConnectionManager(mgr))

	infoFileMock.EXPECT().UpdateField(_outputKey, gomock.Any()).Return(nil)
	mgr.EXPECT().NewConnection(gomock.Any(), gomock.Any()).Return(router, nil)
	router.EXPECT().HandleReq(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
			assert.Equal(t, "tsserver/isAlive", req.Method())
			return reply(ctx, "pong", nil)
		})
	removed := make(chan struct{})
	mgr.EXPECT().RemoveConnection(gomock.Any(), id).Do(func(context.Context, uuid.UUID) { close(removed) })

	require.NoError(t, m.OnStart(ctx))

	nc, err := net.Dial("tcp", m.ln.Addr().String())
	require.NoError(t, err)
	client := jsonrpc2.NewConn(jsonrpc2.NewStream(nc))
	client.Go(ctx, jsonrpc2.MethodNotFoundHandler)

	var result string
	_, err = client.Call(ctx, "tsserver/isAlive", nil, &result)
	require.NoError(t, err)
	assert.Equal(t, "pong", result)

	require.NoError(t, client.Close())
	<-client.Done()
	select {
	case <-removed:
	case <-ctx.Done():
		t.Fatal("connection was not removed")
	}

	assert.NoError(t, m.OnStop(ctx))
}
