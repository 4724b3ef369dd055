//go:build wireinject
// +build wireinject

package wire

import (
	"context"
	"os"
	"time"

	"foodops-server/cmd/config"
	"foodops-server/internal/infra/cache"
	"foodops-server/internal/infra/notification"
	"foodops-server/internal/infra/pubsub"
	"foodops-server/internal/infra/replication"
	"foodops-server/internal/infra/replication/handlers"
	"foodops-server/internal/infra/sql"

	"github.com/google/wire"
)

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

func provideDatabase(config config.AppConfig) sql.ORM {
	if provideEnvironment() == "local" {
		orm, err := sql.NewMemoryORM()
		if err != nil {
			panic(err)
		}

		return orm
	}

	db := sql.NewPosgreDatabase(config.Postgresql.URL)
	if err := db.Open(); err != nil {
		panic(err)
	}

	orm, err := sql.NewPosgreORM(config.Postgresql.DSN)
	if err != nil {
		panic(err)
	}

	return orm
}

func providePubSubFactory(config config.AppConfig) *pubsub.Factory {
	return pubsub.NewFactory(pubsub.FactoryOptions{
		Environment:       provideEnvironment(),
		KafkaBrokers:      config.Kafka.Brokers,
		ConsumerGroup:     config.Kafka.Group,
		SchemaRegistryURL: config.Kafka.SchemaRegistry,
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

func InitializeReplicationService() (*replication.Service, error) {
	wire.Build(
		provideAppConfig,
		provideDatabase,
		providePubSubFactory,
		provideConsumerFactory,
		replication.NewService,
	)
	return nil, nil
}

func InitializeOrganizationHandler() (*handlers.OrganizationHandler, error) {
	wire.Build(
		provideAppConfig,
		provideDatabase,
		handlers.NewOrganizationHandler,
	)
	return nil, nil
}

func InitializeRegistrationFieldHandler() (*handlers.RegistrationFieldHandler, error) {
	wire.Build(
		provideAppConfig,
		provideDatabase,
		handlers.NewRegistrationFieldHandler,
	)
	return nil, nil
}

func InitializeVolunteerRegistrationHandler() (*handlers.VolunteerRegistrationHandler, error) {
	wire.Build(
		provideAppConfig,
		provideDatabase,
		handlers.NewVolunteerRegistrationHandler,
	)
	return nil, nil
}

func InitializeShiftSignupHandler() (*handlers.ShiftSignupHandler, error) {
	wire.Build(
		provideAppConfig,
		provideDatabase,
		handlers.NewShiftSignupHandler,
	)
	return nil, nil
}

func InitializeWeighingCategoryHandler() (*handlers.WeighingCategoryHandler, error) {
	wire.Build(
		provideAppConfig,
		provideDatabase,
		handlers.NewWeighingCategoryHandler,
	)
	return nil, nil
}

func InitializeDonationHandler() (*handlers.DonationHandler, error) {
	wire.Build(
		provideAppConfig,
		provideDatabase,
		handlers.NewDonationHandler,
	)
	return nil, nil
}

func InitializeEmailTemplateHandler() (*handlers.EmailTemplateHandler, error) {
	wire.Build(
		provideAppConfig,
		provideDatabase,
		handlers.NewEmailTemplateHandler,
	)
	return nil, nil
}
