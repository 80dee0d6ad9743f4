//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"sfd/internal"
	"sfd/internal/aggregation"
	"sfd/internal/controllers"
	"sfd/internal/providers"
	"sfd/internal/report"
	"sfd/internal/services"
	"sfd/internal/storage"
	"sfd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewAuthProvider,

		storage.NewZstdCompressor,
		storage.NewFileManager,
		storage.NewScheduler,

		services.NewFeedbackService,
		wire.Bind(new(providers.RecordCounter), new(services.FeedbackServiceInterface)),

		aggregation.NewAggregator,
		report.NewRenderer,

		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
