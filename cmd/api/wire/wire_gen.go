// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"foodops-server/cmd/config"
	"foodops-server/internal/infra/async"
	"foodops-server/internal/infra/cache"
	"foodops-server/internal/infra/mqtt"
	"foodops-server/internal/infra/notification"
	"foodops-server/internal/infra/pubsub"
	"foodops-server/internal/infra/replication"
	"foodops-server/internal/infra/replication/handlers"
	"foodops-server/internal/infra/sql"
	"foodops-server/internal/messaging/httpapi"
	"foodops-server/internal/messaging/persistence"
	"foodops-server/internal/messaging/usecases"
	httpapi2 "foodops-server/internal/registration/httpapi"
	persistence2 "foodops-server/internal/registration/persistence"
	usecases2 "foodops-server/internal/registration/usecases"
	"foodops-server/internal/scale/workers"
	httpapi3 "foodops-server/internal/stats/httpapi"
	persistence3 "foodops-server/internal/stats/persistence"
	usecases3 "foodops-server/internal/stats/usecases"
	"github.com/google/wire"
	"os"
	"time"
)

// Injectors from common.go:

func InitializeReplicationService() (*replication.Service, error) {
	appConfig := provideAppConfig()
	factory := providePubSubFactory(appConfig)
	consumerFactory := provideConsumerFactory(factory)
	orm := provideDatabase(appConfig)
	service := replication.NewService(consumerFactory, orm)
	return service, nil
}

func InitializeOrganizationHandler() (*handlers.OrganizationHandler, error) {
	appConfig := provideAppConfig()
	orm := provideDatabase(appConfig)
	organizationHandler := handlers.NewOrganizationHandler(orm)
	return organizationHandler, nil
}

func InitializeRegistrationFieldHandler() (*handlers.RegistrationFieldHandler, error) {
	appConfig := provideAppConfig()
	orm := provideDatabase(appConfig)
	registrationFieldHandler := handlers.NewRegistrationFieldHandler(orm)
	return registrationFieldHandler, nil
}

func InitializeVolunteerRegistrationHandler() (*handlers.VolunteerRegistrationHandler, error) {
	appConfig := provideAppConfig()
	orm := provideDatabase(appConfig)
	volunteerRegistrationHandler := handlers.NewVolunteerRegistrationHandler(orm)
	return volunteerRegistrationHandler, nil
}

func InitializeShiftSignupHandler() (*handlers.ShiftSignupHandler, error) {
	appConfig := provideAppConfig()
	orm := provideDatabase(appConfig)
	shiftSignupHandler := handlers.NewShiftSignupHandler(orm)
	return shiftSignupHandler, nil
}

func InitializeWeighingCategoryHandler() (*handlers.WeighingCategoryHandler, error) {
	appConfig := provideAppConfig()
	orm := provideDatabase(appConfig)
	weighingCategoryHandler := handlers.NewWeighingCategoryHandler(orm)
	return weighingCategoryHandler, nil
}

func InitializeDonationHandler() (*handlers.DonationHandler, error) {
	appConfig := provideAppConfig()
	orm := provideDatabase(appConfig)
	donationHandler := handlers.NewDonationHandler(orm)
	return donationHandler, nil
}

func InitializeEmailTemplateHandler() (*handlers.EmailTemplateHandler, error) {
	appConfig := provideAppConfig()
	orm := provideDatabase(appConfig)
	emailTemplateHandler := handlers.NewEmailTemplateHandler(orm)
	return emailTemplateHandler, nil
}

// Injectors from messaging.go:

func InitializeTemplateController() (*httpapi.TemplateController, error) {
	appConfig := provideAppConfig()
	factory := providePubSubFactory(appConfig)
	publisherFactory := providePublisherFactory(factory)
	orm := provideDatabase(appConfig)
	simpleTemplateRepository, err := persistence.NewTemplateRepository(publisherFactory, orm)
	if err != nil {
		return nil, err
	}
	simpleTemplateService := usecases.NewTemplateService(simpleTemplateRepository)
	templateController := httpapi.NewTemplateController(simpleTemplateService)
	return templateController, nil
}

func InitializeNotificationWorker(broker async.InternalBroker) (*usecases.NotificationWorker, error) {
	appConfig := provideAppConfig()
	factory := providePubSubFactory(appConfig)
	publisherFactory := providePublisherFactory(factory)
	orm := provideDatabase(appConfig)
	simpleTemplateRepository, err := persistence.NewTemplateRepository(publisherFactory, orm)
	if err != nil {
		return nil, err
	}
	simpleTemplateService := usecases.NewTemplateService(simpleTemplateRepository)
	notificationClient, err := provideCompositeNotificationClient(appConfig)
	if err != nil {
		return nil, err
	}
	notificationWorker := provideNotificationWorker(appConfig, broker, simpleTemplateService, notificationClient)
	return notificationWorker, nil
}

// Injectors from registration.go:

func InitializeOrganizationController(broker async.InternalBroker) (*httpapi2.OrganizationController, error) {
	appConfig := provideAppConfig()
	factory := providePubSubFactory(appConfig)
	publisherFactory := providePublisherFactory(factory)
	orm := provideDatabase(appConfig)
	simpleOrganizationRepository, err := persistence2.NewOrganizationRepository(publisherFactory, orm)
	if err != nil {
		return nil, err
	}
	simpleOrganizationService := usecases2.NewOrganizationService(simpleOrganizationRepository)
	simpleFieldRepository, err := persistence2.NewFieldRepository(publisherFactory, orm)
	if err != nil {
		return nil, err
	}
	simpleFieldService := usecases2.NewFieldService(simpleFieldRepository)
	simpleRegistrationRepository, err := persistence2.NewRegistrationRepository(publisherFactory, orm)
	if err != nil {
		return nil, err
	}
	simpleRegistrationService := usecases2.NewRegistrationService(simpleOrganizationRepository, simpleFieldRepository, simpleRegistrationRepository, broker)
	organizationController := httpapi2.NewOrganizationController(simpleOrganizationService, simpleFieldService, simpleRegistrationService)
	return organizationController, nil
}

func InitializeFieldController() (*httpapi2.FieldController, error) {
	appConfig := provideAppConfig()
	factory := providePubSubFactory(appConfig)
	publisherFactory := providePublisherFactory(factory)
	orm := provideDatabase(appConfig)
	simpleFieldRepository, err := persistence2.NewFieldRepository(publisherFactory, orm)
	if err != nil {
		return nil, err
	}
	simpleFieldService := usecases2.NewFieldService(simpleFieldRepository)
	fieldController := httpapi2.NewFieldController(simpleFieldService)
	return fieldController, nil
}

func InitializeShiftController() (*httpapi2.ShiftController, error) {
	appConfig := provideAppConfig()
	orm := provideDatabase(appConfig)
	simpleShiftRepository, err := persistence2.NewShiftRepository(orm)
	if err != nil {
		return nil, err
	}
	factory := providePubSubFactory(appConfig)
	publisherFactory := providePublisherFactory(factory)
	simpleSignupRepository, err := persistence2.NewSignupRepository(publisherFactory, orm)
	if err != nil {
		return nil, err
	}
	simpleSignupService := usecases2.NewSignupService(simpleShiftRepository, simpleSignupRepository)
	shiftController := httpapi2.NewShiftController(simpleSignupService)
	return shiftController, nil
}

func InitializePublicController(broker async.InternalBroker) (*httpapi2.PublicController, error) {
	appConfig := provideAppConfig()
	factory := providePubSubFactory(appConfig)
	publisherFactory := providePublisherFactory(factory)
	orm := provideDatabase(appConfig)
	simpleOrganizationRepository, err := persistence2.NewOrganizationRepository(publisherFactory, orm)
	if err != nil {
		return nil, err
	}
	simpleOrganizationService := usecases2.NewOrganizationService(simpleOrganizationRepository)
	simpleFieldRepository, err := persistence2.NewFieldRepository(publisherFactory, orm)
	if err != nil {
		return nil, err
	}
	simpleFieldService := usecases2.NewFieldService(simpleFieldRepository)
	simpleRegistrationRepository, err := persistence2.NewRegistrationRepository(publisherFactory, orm)
	if err != nil {
		return nil, err
	}
	simpleRegistrationService := usecases2.NewRegistrationService(simpleOrganizationRepository, simpleFieldRepository, simpleRegistrationRepository, broker)
	simpleShiftRepository, err := persistence2.NewShiftRepository(orm)
	if err != nil {
		return nil, err
	}
	simpleSignupRepository, err := persistence2.NewSignupRepository(publisherFactory, orm)
	if err != nil {
		return nil, err
	}
	simpleSignupService := usecases2.NewSignupService(simpleShiftRepository, simpleSignupRepository)
	publicController := httpapi2.NewPublicController(simpleOrganizationService, simpleFieldService, simpleRegistrationService, simpleSignupService)
	return publicController, nil
}

// Injectors from stats.go:

func InitializeStatsController() (*httpapi3.StatsController, error) {
	appConfig := provideAppConfig()
	factory := providePubSubFactory(appConfig)
	publisherFactory := providePublisherFactory(factory)
	orm := provideDatabase(appConfig)
	simpleDonationRepository, err := persistence3.NewDonationRepository(publisherFactory, orm)
	if err != nil {
		return nil, err
	}
	simpleCategoryRepository, err := persistence3.NewCategoryRepository(publisherFactory, orm)
	if err != nil {
		return nil, err
	}
	cache, err := provideStatsCache(appConfig)
	if err != nil {
		return nil, err
	}
	simpleStatsService := usecases3.NewStatsService(simpleDonationRepository, simpleCategoryRepository, cache)
	statsController := httpapi3.NewStatsController(simpleStatsService)
	return statsController, nil
}

func InitializeCategoryController() (*httpapi3.CategoryController, error) {
	appConfig := provideAppConfig()
	factory := providePubSubFactory(appConfig)
	publisherFactory := providePublisherFactory(factory)
	orm := provideDatabase(appConfig)
	simpleCategoryRepository, err := persistence3.NewCategoryRepository(publisherFactory, orm)
	if err != nil {
		return nil, err
	}
	simpleDonationRepository, err := persistence3.NewDonationRepository(publisherFactory, orm)
	if err != nil {
		return nil, err
	}
	cache, err := provideStatsCache(appConfig)
	if err != nil {
		return nil, err
	}
	simpleStatsService := usecases3.NewStatsService(simpleDonationRepository, simpleCategoryRepository, cache)
	simpleCategoryService := usecases3.NewCategoryService(simpleCategoryRepository, simpleStatsService)
	categoryController := httpapi3.NewCategoryController(simpleCategoryService)
	return categoryController, nil
}

func InitializeDonationController(broker async.InternalBroker) (*httpapi3.DonationController, error) {
	appConfig := provideAppConfig()
	factory := providePubSubFactory(appConfig)
	publisherFactory := providePublisherFactory(factory)
	orm := provideDatabase(appConfig)
	simpleDonationRepository, err := persistence3.NewDonationRepository(publisherFactory, orm)
	if err != nil {
		return nil, err
	}
	simpleCategoryRepository, err := persistence3.NewCategoryRepository(publisherFactory, orm)
	if err != nil {
		return nil, err
	}
	cache, err := provideStatsCache(appConfig)
	if err != nil {
		return nil, err
	}
	simpleStatsService := usecases3.NewStatsService(simpleDonationRepository, simpleCategoryRepository, cache)
	simpleDonationService := usecases3.NewDonationService(simpleDonationRepository, simpleCategoryRepository, broker, simpleStatsService)
	donationController := httpapi3.NewDonationController(simpleDonationService)
	return donationController, nil
}

func InitializeLiveStatsController(broker async.InternalBroker) (*httpapi3.LiveStatsController, error) {
	liveStatsController := httpapi3.NewLiveStatsController(broker)
	return liveStatsController, nil
}

func InitializeStatsRefreshWorker() (*usecases3.StatsRefreshWorker, error) {
	appConfig := provideAppConfig()
	ticker := provideTicker()
	factory := providePubSubFactory(appConfig)
	publisherFactory := providePublisherFactory(factory)
	orm := provideDatabase(appConfig)
	simpleDonationRepository, err := persistence3.NewDonationRepository(publisherFactory, orm)
	if err != nil {
		return nil, err
	}
	simpleCategoryRepository, err := persistence3.NewCategoryRepository(publisherFactory, orm)
	if err != nil {
		return nil, err
	}
	cache, err := provideStatsCache(appConfig)
	if err != nil {
		return nil, err
	}
	simpleStatsService := usecases3.NewStatsService(simpleDonationRepository, simpleCategoryRepository, cache)
	statsRefreshWorker := provideStatsRefreshWorker(appConfig, ticker, simpleStatsService)
	return statsRefreshWorker, nil
}

func InitializeScaleIntegrationWorker(broker async.InternalBroker, mqttClient mqtt.Client) (*workers.ScaleIntegrationWorker, error) {
	ticker := provideTicker()
	appConfig := provideAppConfig()
	factory := providePubSubFactory(appConfig)
	publisherFactory := providePublisherFactory(factory)
	orm := provideDatabase(appConfig)
	simpleCategoryRepository, err := persistence3.NewCategoryRepository(publisherFactory, orm)
	if err != nil {
		return nil, err
	}
	simpleDonationRepository, err := persistence3.NewDonationRepository(publisherFactory, orm)
	if err != nil {
		return nil, err
	}
	cache, err := provideStatsCache(appConfig)
	if err != nil {
		return nil, err
	}
	simpleStatsService := usecases3.NewStatsService(simpleDonationRepository, simpleCategoryRepository, cache)
	simpleCategoryService := usecases3.NewCategoryService(simpleCategoryRepository, simpleStatsService)
	simpleDonationService := usecases3.NewDonationService(simpleDonationRepository, simpleCategoryRepository, broker, simpleStatsService)
	scaleIntegrationWorker := workers.NewScaleIntegrationWorker(ticker, simpleCategoryService, simpleDonationService, mqttClient)
	return scaleIntegrationWorker, nil
}

// common.go:

func provideAppConfig() config.AppConfig {
	return config.LoadConfig()
}

func provideEnvironment() string {
	env, ok := os.LookupEnv("ENV")
	if !ok {
		env = "production"
	}

	return env
}

func provideDatabase(config2 config.AppConfig) sql.ORM {
	if provideEnvironment() == "local" {
		orm, err := sql.NewMemoryORM()
		if err != nil {
			panic(err)
		}

		return orm
	}

	db := sql.NewPosgreDatabase(config2.Postgresql.URL)
	if err := db.Open(); err != nil {
		panic(err)
	}

	orm, err := sql.NewPosgreORM(config2.Postgresql.DSN)
	if err != nil {
		panic(err)
	}

	return orm
}

func providePubSubFactory(config2 config.AppConfig) *pubsub.Factory {
	return pubsub.NewFactory(pubsub.FactoryOptions{
		Environment:       provideEnvironment(),
		KafkaBrokers:      config2.Kafka.Brokers,
		ConsumerGroup:     config2.Kafka.Group,
		SchemaRegistryURL: config2.Kafka.SchemaRegistry,
	})
}

func providePublisherFactory(factory *pubsub.Factory) pubsub.PublisherFactory {
	return factory.GetPublisherFactory()
}

func provideConsumerFactory(factory *pubsub.Factory) pubsub.ConsumerFactory {
	return factory.GetConsumerFactory()
}

func provideTicker() *time.Ticker {
	ticker := time.NewTicker(30 * time.Second)
	return ticker
}

func provideStatsCache(cfg config.AppConfig) (cache.Cache, error) {
	if cfg.Redis.Addr == "" || provideEnvironment() == "local" {
		return cache.New(nil)
	}

	return cache.NewRedisCache(&cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func provideCompositeNotificationClient(cfg config.AppConfig) (notification.NotificationClient, error) {
	mailerSendConfig := notification.MailerSendConfig{
		APIKey:    cfg.MailerSend.APIKey,
		FromEmail: cfg.MailerSend.FromEmail,
		FromName:  cfg.MailerSend.FromName,
	}
	emailClient := notification.NewMailerSendClient(mailerSendConfig)

	fcmConfig := notification.FCMConfig{
		ProjectID:          cfg.FCM.ProjectID,
		ServiceAccountPath: cfg.FCM.ServiceAccountPath,
	}
	pushClient, err := notification.NewFCMClient(context.Background(), fcmConfig)
	if err != nil {
		return nil, err
	}

	return notification.NewCompositeNotificationClient(emailClient, pushClient), nil
}

// messaging.go:

var TemplateServiceSet = wire.NewSet(
	provideDatabase,
	providePubSubFactory,
	providePublisherFactory, persistence.NewTemplateRepository, wire.Bind(new(usecases.TemplateRepository), new(*persistence.SimpleTemplateRepository)), usecases.NewTemplateService, wire.Bind(new(usecases.TemplateService), new(*usecases.SimpleTemplateService)),
)

func provideNotificationWorker(
	cfg config.AppConfig,
	broker async.InternalBroker,
	templateService usecases.TemplateService,
	client notification.NotificationClient,
) *usecases.NotificationWorker {
	return usecases.NewNotificationWorker(
		broker,
		templateService,
		client,
		cfg.Notification.Recipient,
		cfg.Notification.RegistrationTemplate,
	)
}

// registration.go:

var RegistrationServiceSet = wire.NewSet(
	provideDatabase,
	providePubSubFactory,
	providePublisherFactory, persistence2.NewOrganizationRepository, wire.Bind(new(usecases2.OrganizationRepository), new(*persistence2.SimpleOrganizationRepository)), persistence2.NewFieldRepository, wire.Bind(new(usecases2.FieldRepository), new(*persistence2.SimpleFieldRepository)), persistence2.NewRegistrationRepository, wire.Bind(new(usecases2.RegistrationRepository), new(*persistence2.SimpleRegistrationRepository)), usecases2.NewOrganizationService, wire.Bind(new(usecases2.OrganizationService), new(*usecases2.SimpleOrganizationService)), usecases2.NewFieldService, wire.Bind(new(usecases2.FieldService), new(*usecases2.SimpleFieldService)), usecases2.NewRegistrationService, wire.Bind(new(usecases2.RegistrationService), new(*usecases2.SimpleRegistrationService)),
)

// stats.go:

var StatsServiceSet = wire.NewSet(
	provideDatabase,
	providePubSubFactory,
	providePublisherFactory,
	provideStatsCache, persistence3.NewCategoryRepository, wire.Bind(new(usecases3.CategoryRepository), new(*persistence3.SimpleCategoryRepository)), persistence3.NewDonationRepository, wire.Bind(new(usecases3.DonationRepository), new(*persistence3.SimpleDonationRepository)), usecases3.NewStatsService, wire.Bind(new(usecases3.StatsService), new(*usecases3.SimpleStatsService)), wire.Bind(new(usecases3.StatsInvalidator), new(*usecases3.SimpleStatsService)),
)

func provideStatsRefreshWorker(cfg config.AppConfig, ticker *time.Ticker, statsService usecases3.StatsService) *usecases3.StatsRefreshWorker {
	return usecases3.NewStatsRefreshWorker(ticker, cfg.Stats.RefreshSchedule, statsService)
}
