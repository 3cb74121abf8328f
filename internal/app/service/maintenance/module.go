package maintenance

import "go.uber.org/fx"

// Module exposes the maintenance service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
