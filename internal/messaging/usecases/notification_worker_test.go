package usecases_test

import (
	"context"
	"sync"
	"time"

	"foodops-server/internal/infra/async"
	"foodops-server/internal/infra/notification"
	messagingdomain "foodops-server/internal/messaging/domain"
	messagingusecases "foodops-server/internal/messaging/usecases"
	regdomain "foodops-server/internal/registration/domain"
	regusecases "foodops-server/internal/registration/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("NotificationWorker", func() {
	var worker *messagingusecases.NotificationWorker
	var broker *async.LocalBroker
	var client *mockNotificationClient
	var cancel context.CancelFunc
	var stopped chan struct{}

	publish := func(count int, timestamp time.Time) {
		err := broker.Publish(context.Background(), regusecases.BrokerTopicRegistrationEvents, async.BrokerMessage{
			Event: regdomain.RegistrationRecordedType,
			Value: regdomain.RegistrationRecorded{
				Type:             regdomain.RegistrationRecordedType,
				Count:            count,
				Timestamp:        timestamp,
				OrganizationName: "Harvest Table Pantry",
			},
		})
		gomega.ExpectWithOffset(1, err).NotTo(gomega.HaveOccurred())
	}

	ginkgo.BeforeEach(func() {
		broker = async.NewLocalBroker()
		client = newMockNotificationClient()

		repository := newMockTemplateRepository()
		templateService := messagingusecases.NewTemplateService(repository)
		template, err := messagingdomain.NewEmailTemplateBuilder().
			WithName(messagingusecases.DefaultRegistrationTemplateName).
			WithSubject("New volunteer at {{organization_name}}").
			WithBody("Registrations so far: {{count}}").
			Build()
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(templateService.CreateTemplate(context.Background(), template)).To(gomega.Succeed())

		worker = messagingusecases.NewNotificationWorker(broker, templateService, client, "admin@foodops.org", "")

		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		stopped = make(chan struct{})
		go worker.Run(ctx, func() { close(stopped) })

		// wait for the subscription before publishing
		gomega.Eventually(func() error {
			return broker.Publish(context.Background(), regusecases.BrokerTopicRegistrationEvents, async.BrokerMessage{
				Event: "probe",
			})
		}).Should(gomega.Succeed())
	})

	ginkgo.AfterEach(func() {
		cancel()
		gomega.Eventually(stopped).Should(gomega.BeClosed())
		broker.Stop()
	})

	ginkgo.It("should render the template and send an email", func() {
		publish(3, time.Now())

		gomega.Eventually(client.Sent).Should(gomega.HaveLen(1))
		email := client.Sent()[0]
		gomega.Expect(email.To).To(gomega.Equal("admin@foodops.org"))
		gomega.Expect(email.Subject).To(gomega.Equal("New volunteer at Harvest Table Pantry"))
		gomega.Expect(email.Body).To(gomega.Equal("Registrations so far: 3"))
	})

	ginkgo.It("should ignore events that are not newer than the last handled one", func() {
		timestamp := time.Now()
		publish(1, timestamp)
		gomega.Eventually(client.Sent).Should(gomega.HaveLen(1))

		publish(1, timestamp)
		publish(1, timestamp.Add(-time.Second))
		gomega.Consistently(client.Sent).Should(gomega.HaveLen(1))

		publish(2, timestamp.Add(time.Second))
		gomega.Eventually(client.Sent).Should(gomega.HaveLen(2))
	})

	ginkgo.It("should keep running when sending fails", func() {
		client.setError()
		publish(1, time.Now())
		gomega.Eventually(client.Attempts).Should(gomega.Equal(1))

		client.clearError()
		publish(2, time.Now().Add(time.Second))
		gomega.Eventually(client.Sent).Should(gomega.HaveLen(1))
	})
})

type mockNotificationClient struct {
	mu       sync.Mutex
	sent     []notification.EmailRequest
	attempts int
	err      error
}

func newMockNotificationClient() *mockNotificationClient {
	return &mockNotificationClient{}
}

func (m *mockNotificationClient) SendEmail(ctx context.Context, request notification.EmailRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts++
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, request)
	return nil
}

func (m *mockNotificationClient) SendPushNotification(ctx context.Context, request notification.PushNotificationRequest) error {
	return nil
}

func (m *mockNotificationClient) Sent() []notification.EmailRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notification.EmailRequest(nil), m.sent...)
}

func (m *mockNotificationClient) Attempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}

func (m *mockNotificationClient) setError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = &notification.NotificationError{Message: "smtp unavailable"}
}

func (m *mockNotificationClient) clearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = nil
}
