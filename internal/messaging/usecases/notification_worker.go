package usecases

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"foodops-server/internal/infra/async"
	"foodops-server/internal/infra/notification"
	regdomain "foodops-server/internal/registration/domain"
	regusecases "foodops-server/internal/registration/usecases"
)

// DefaultRegistrationTemplateName is the template the worker renders when
// the deployment does not configure its own.
const DefaultRegistrationTemplateName = "volunteer-registration"

// NewNotificationWorker builds the worker that mails admins when a
// volunteer registers. Events carry a timestamp precisely so consumers can
// drop replays; the worker keeps the newest one it has handled and ignores
// anything at or before it.
func NewNotificationWorker(
	broker async.InternalBroker,
	templateService TemplateService,
	client notification.NotificationClient,
	recipient string,
	templateName string,
) *NotificationWorker {
	if templateName == "" {
		templateName = DefaultRegistrationTemplateName
	}
	return &NotificationWorker{
		broker:          broker,
		templateService: templateService,
		client:          client,
		recipient:       recipient,
		templateName:    templateName,
	}
}

var _ async.Worker = &NotificationWorker{}

type NotificationWorker struct {
	broker          async.InternalBroker
	templateService TemplateService
	client          notification.NotificationClient
	recipient       string
	templateName    string
	lastSeen        time.Time
}

func (w *NotificationWorker) Run(ctx context.Context, done func()) {
	slog.Info("notification worker started", slog.String("template", w.templateName))
	defer done()

	subscription, err := w.broker.Subscribe(regusecases.BrokerTopicRegistrationEvents)
	if err != nil {
		slog.Error("subscribing to registration events", slog.String("error", err.Error()))
		return
	}
	defer w.broker.Unsubscribe(regusecases.BrokerTopicRegistrationEvents, subscription)

	for {
		select {
		case <-ctx.Done():
			slog.Info("notification worker cancelled")
			return
		case msg := <-subscription.Receiver:
			w.handle(ctx, msg)
		}
	}
}

func (w *NotificationWorker) handle(ctx context.Context, msg async.BrokerMessage) {
	event, ok := msg.Value.(regdomain.RegistrationRecorded)
	if !ok {
		return
	}

	if !event.Timestamp.After(w.lastSeen) {
		slog.Debug("ignoring stale registration event",
			slog.Time("timestamp", event.Timestamp),
			slog.Time("last_seen", w.lastSeen))
		return
	}
	w.lastSeen = event.Timestamp

	subject, body, err := w.templateService.RenderTemplate(ctx, w.templateName, map[string]string{
		"organization_name": event.OrganizationName,
		"count":             strconv.Itoa(event.Count),
		"type":              event.Type,
	})
	if err != nil {
		slog.Error("rendering registration template",
			slog.String("template", w.templateName),
			slog.String("error", err.Error()))
		return
	}

	err = w.client.SendEmail(ctx, notification.EmailRequest{
		To:      w.recipient,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		slog.Error("sending registration notification", slog.String("error", err.Error()))
		return
	}

	slog.Info("registration notification sent",
		slog.String("organization", event.OrganizationName),
		slog.Int("count", event.Count))
}

func (w *NotificationWorker) Shutdown() {
	slog.Warn("notification worker shutdown is not yet implemented")
}
