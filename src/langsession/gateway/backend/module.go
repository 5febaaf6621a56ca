package backend

import "go.uber.org/fx"

// Module provides backend resolution and launching.
var Module = fx.Provide(NewResolver, NewLauncher)
