//go:build wireinject
// +build wireinject

package wire

import (
	"time"

	"foodops-server/cmd/config"
	"foodops-server/internal/infra/async"
	"foodops-server/internal/infra/mqtt"
	"foodops-server/internal/scale/workers"
	"foodops-server/internal/stats/httpapi"
	"foodops-server/internal/stats/persistence"
	"foodops-server/internal/stats/usecases"

	"github.com/google/wire"
)

var StatsServiceSet = wire.NewSet(
	provideDatabase,
	providePubSubFactory,
	providePublisherFactory,
	provideStatsCache,
	persistence.NewCategoryRepository,
	wire.Bind(new(usecases.CategoryRepository), new(*persistence.SimpleCategoryRepository)),
	persistence.NewDonationRepository,
	wire.Bind(new(usecases.DonationRepository), new(*persistence.SimpleDonationRepository)),
	usecases.NewStatsService,
	wire.Bind(new(usecases.StatsService), new(*usecases.SimpleStatsService)),
	wire.Bind(new(usecases.StatsInvalidator), new(*usecases.SimpleStatsService)),
)

func InitializeStatsController() (*httpapi.StatsController, error) {
	wire.Build(
		provideAppConfig,
		StatsServiceSet,
		httpapi.NewStatsController,
	)
	return nil, nil
}

func InitializeCategoryController() (*httpapi.CategoryController, error) {
	wire.Build(
		provideAppConfig,
		StatsServiceSet,
		usecases.NewCategoryService,
		wire.Bind(new(usecases.CategoryService), new(*usecases.SimpleCategoryService)),
		httpapi.NewCategoryController,
	)
	return nil, nil
}

func InitializeDonationController(broker async.InternalBroker) (*httpapi.DonationController, error) {
	wire.Build(
		provideAppConfig,
		StatsServiceSet,
		usecases.NewDonationService,
		wire.Bind(new(usecases.DonationService), new(*usecases.SimpleDonationService)),
		httpapi.NewDonationController,
	)
	return nil, nil
}

func InitializeLiveStatsController(broker async.InternalBroker) (*httpapi.LiveStatsController, error) {
	wire.Build(
		httpapi.NewLiveStatsController,
	)
	return nil, nil
}

func InitializeStatsRefreshWorker() (*usecases.StatsRefreshWorker, error) {
	wire.Build(
		provideAppConfig,
		provideTicker,
		StatsServiceSet,
		provideStatsRefreshWorker,
	)
	return nil, nil
}

func InitializeScaleIntegrationWorker(broker async.InternalBroker, mqttClient mqtt.Client) (*workers.ScaleIntegrationWorker, error) {
	wire.Build(
		provideAppConfig,
		provideTicker,
		StatsServiceSet,
		usecases.NewCategoryService,
		wire.Bind(new(usecases.CategoryService), new(*usecases.SimpleCategoryService)),
		usecases.NewDonationService,
		wire.Bind(new(usecases.DonationService), new(*usecases.SimpleDonationService)),
		workers.NewScaleIntegrationWorker,
	)
	return nil, nil
}

func provideStatsRefreshWorker(cfg config.AppConfig, ticker *time.Ticker, statsService usecases.StatsService) *usecases.StatsRefreshWorker {
	return usecases.NewStatsRefreshWorker(ticker, cfg.Stats.RefreshSchedule, statsService)
}
