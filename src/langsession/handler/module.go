package handler

import (
	controller "github.com/uber/langsession/src/langsession/controller"
	tssession "github.com/uber/langsession/src/langsession/controller/ts-session"
	handler "github.com/uber/langsession/src/langsession/handler/ts-session"
	"github.com/uber/langsession/src/langsession/repository/session"
	"go.uber.org/fx"
)

// Module provides the langsession JSON-RPC inbound into an Fx application.
var Module = fx.Options(
	controller.Module,
	fx.Provide(session.New),
	fx.Provide(handler.New),
	fx.Invoke(func(h handler.Handler) {}),
	fx.Invoke(func(c tssession.Controller) {}),
)
