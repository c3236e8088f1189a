package bootstrap

import (
	"shareit/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	components.StoreModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
