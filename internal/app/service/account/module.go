package account

import "go.uber.org/fx"

// Module exposes the account service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
