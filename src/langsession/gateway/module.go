package gateway

import (
	"github.com/uber/langsession/src/langsession/gateway/backend"
	ideclient "github.com/uber/langsession/src/langsession/gateway/ide-client"
	"go.uber.org/fx"
)

// Module defines the outbound gateways: backend processes and inbound clients.
var Module = fx.Options(
	backend.Module,
	fx.Provide(ideclient.New),
)
