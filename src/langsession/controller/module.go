package controller

import (
	tssession "github.com/uber/langsession/src/langsession/controller/ts-session"
	"go.uber.org/fx"
)

// Module defines the controllers of the langsession service.
var Module = fx.Options(
	fx.Provide(tssession.New),
)
