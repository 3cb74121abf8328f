package drivelog

import "go.uber.org/fx"

// Module exposes the drive log service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
