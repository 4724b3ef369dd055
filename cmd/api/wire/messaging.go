//go:build wireinject
// +build wireinject

package wire

import (
	"foodops-server/cmd/config"
	"foodops-server/internal/infra/async"
	"foodops-server/internal/infra/notification"
	"foodops-server/internal/messaging/httpapi"
	"foodops-server/internal/messaging/persistence"
	"foodops-server/internal/messaging/usecases"

	"github.com/google/wire"
)

var TemplateServiceSet = wire.NewSet(
	provideDatabase,
	providePubSubFactory,
	providePublisherFactory,
	persistence.NewTemplateRepository,
	wire.Bind(new(usecases.TemplateRepository), new(*persistence.SimpleTemplateRepository)),
	usecases.NewTemplateService,
	wire.Bind(new(usecases.TemplateService), new(*usecases.SimpleTemplateService)),
)

func InitializeTemplateController() (*httpapi.TemplateController, error) {
	wire.Build(
		provideAppConfig,
		TemplateServiceSet,
		httpapi.NewTemplateController,
	)
	return nil, nil
}

func InitializeNotificationWorker(broker async.InternalBroker) (*usecases.NotificationWorker, error) {
	wire.Build(
		provideAppConfig,
		TemplateServiceSet,
		provideCompositeNotificationClient,
		provideNotificationWorker,
	)
	return nil, nil
}

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
