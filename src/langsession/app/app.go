package app

import (
	"context"
	"time"

	"github.com/uber-go/tally"
	"github.com/uber/langsession/src/langsession/gateway"
	"github.com/uber/langsession/src/langsession/handler"
	"github.com/uber/langsession/src/langsession/internal/clock"
	"github.com/uber/langsession/src/langsession/internal/core"
	"github.com/uber/langsession/src/langsession/internal/executor"
	"github.com/uber/langsession/src/langsession/internal/fs"
	"github.com/uber/langsession/src/langsession/internal/jsonrpcfx"
	"github.com/uber/langsession/src/langsession/internal/logfilewriter"
	"github.com/uber/langsession/src/langsession/internal/serverinfofile"
	"go.uber.org/fx"
)

// Module defines the langsession application module.
var Module = fx.Options(
	gateway.Module, // outbounds
	handler.Module, // inbounds
	jsonrpcfx.Module,
	fs.Module,
	clock.Module,
	executor.Module,
	logfilewriter.Module,
	serverinfofile.Module,
	core.ConfigModule,
	core.LoggerModule,
	fx.Provide(func(lc fx.Lifecycle) tally.Scope {
		rs, closer := tally.NewRootScope(tally.ScopeOptions{
			Prefix: "langsession",
			Tags: map[string]string{
				"service": "langsession",
			},
		}, 1*time.Second)

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})

		return rs
	}),
	fx.Decorate(decorateEnvContext),
	fx.Decorate(decorateConfigProvider),
	fx.Provide(func() Context {
		return Context{
			Environment:        EnvLocal,
			RuntimeEnvironment: EnvLocal,
		}
	}),
)
