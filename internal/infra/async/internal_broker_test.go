package async_test

import (
	"context"

	"foodops-server/internal/infra/async"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Local Broker", func() {
	var broker *async.LocalBroker
	var topic async.BrokerTopicName
	var subscription async.Subscription
	var message async.BrokerMessage
	var ctx context.Context

	BeforeEach(func() {
		broker = async.NewLocalBroker()
		ctx = context.TODO()
	})

	Context("Subscribe", func() {
		When("add a new subscriber for a topic", func() {
			BeforeEach(func() {
				topic = "volunteer_registrations"
			})

			It("should deliver published messages", func() {
				subscription, _ = broker.Subscribe(topic)

				broker.Publish(ctx, topic, async.BrokerMessage{})

				Eventually(subscription.Receiver).Should(Receive(&async.BrokerMessage{}))
			})
		})

		When("multiple subscriptors", func() {
			var subscription2 async.Subscription
			BeforeEach(func() {
				topic = "volunteer_registrations"
			})

			It("should deliver to every subscriptor", func() {
				subscription, _ = broker.Subscribe(topic)
				subscription2, _ = broker.Subscribe(topic)

				broker.Publish(ctx, topic, async.BrokerMessage{})

				Eventually(subscription.Receiver).Should(Receive(&async.BrokerMessage{}))
				Eventually(subscription2.Receiver).Should(Receive(&async.BrokerMessage{}))
			})
		})

		When("a new message arrives", func() {
			BeforeEach(func() {
				topic = "donation_entries"
				subscription, _ = broker.Subscribe(topic)
				message = async.BrokerMessage{
					Event: "donation_recorded",
					Value: "harvest-pantry",
				}
			})

			It("should receive the message from the channel", func() {
				broker.Publish(context.TODO(), topic, message)

				Eventually(subscription.Receiver).Should(Receive(And(
					HaveField("Event", "donation_recorded"),
					HaveField("Value", "harvest-pantry"),
				)))
			})
		})

		When("stop broker", func() {
			BeforeEach(func() {
				topic = "donation_entries"
				subscription, _ = broker.Subscribe(topic)
			})

			It("should close the receiver channel", func() {
				go broker.Stop()

				Eventually(subscription.Receiver).Should(BeClosed())
			})
		})
	})

	Context("Unsubscribe", func() {
		When("there is no topic", func() {
			BeforeEach(func() {
				topic = "shift_signups"
				subscription = async.Subscription{
					ID: "2d582ce4-88e1-40a8-bc14-5cf0311943fd",
				}
			})

			It("should report the missing topic", func() {
				err := broker.Unsubscribe(topic, subscription)

				Expect(err).Should(MatchError(async.ErrTopicNotFound))
			})
		})
		When("subscriptor doesn't exist", func() {
			var subscription2 async.Subscription
			BeforeEach(func() {
				topic = "shift_signups"
				subscription, _ = broker.Subscribe(topic)
				subscription2 = async.Subscription{
					ID: "2d582ce4-88e1-40a8-bc14-5cf0311943fd",
				}
			})

			It("should report the missing subscriptor", func() {
				err := broker.Unsubscribe(topic, subscription2)

				Expect(err).Should(MatchError(async.ErrSubscriptorNotFound))
			})
		})
		When("subscriptor does exist", func() {
			BeforeEach(func() {
				topic = "shift_signups"
				subscription, _ = broker.Subscribe(topic)
				broker.Unsubscribe(topic, subscription)
				message = async.BrokerMessage{
					Event: "signup_recorded",
					Value: "tuesday-sort",
				}
			})

			It("should not deliver to the removed subscriptor", func() {
				broker.Publish(context.TODO(), topic, message)

				Eventually(subscription.Receiver).ShouldNot(Receive(And(
					HaveField("Event", "signup_recorded"),
					HaveField("Value", "tuesday-sort"),
				)))
			})
		})
		When("is called twice", func() {
			BeforeEach(func() {
				topic = "shift_signups"
				subscription, _ = broker.Subscribe(topic)
				broker.Unsubscribe(topic, subscription)
			})

			It("should remove subscriptor and not panic", func() {
				err := broker.Unsubscribe(topic, subscription)

				Expect(err).Should(Succeed())
			})
		})
	})

	Context("Publish", func() {
		When("topic doesn't exist", func() {
			BeforeEach(func() {
				topic = "unknown_topic"
			})

			It("should return an error", func() {
				err := broker.Publish(context.TODO(), topic, async.BrokerMessage{})

				Expect(err).ShouldNot(Succeed())
			})
		})

		When("there is at least one subscriptor", func() {
			BeforeEach(func() {
				topic = "volunteer_registrations"
				subscription, _ = broker.Subscribe(topic)
			})

			It("should return no error", func() {
				err := broker.Publish(context.TODO(), topic, async.BrokerMessage{})

				Expect(err).Should(Succeed())
			})
		})
	})
})
