package gamification

import "go.uber.org/fx"

// Module exposes the gamification service and seeds the badge catalog.
var Module = fx.Options(
	fx.Provide(NewService),
	fx.Invoke(SeedCatalog),
)
