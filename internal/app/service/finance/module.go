package finance

import "go.uber.org/fx"

// Module exposes the finance service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
