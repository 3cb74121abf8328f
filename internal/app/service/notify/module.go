package notify

import "go.uber.org/fx"

// Module exposes the notification service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
