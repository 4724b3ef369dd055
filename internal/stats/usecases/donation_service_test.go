package usecases_test

import (
	"context"
	"errors"
	"time"

	"foodops-server/internal/infra/async"
	"foodops-server/internal/infra/utils"
	statsdomain "foodops-server/internal/stats/domain"
	statsusecases "foodops-server/internal/stats/usecases"
	shareddomain "foodops-server/internal/shared_kernel/domain"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("DonationService", func() {
	var service statsusecases.DonationService
	var donationRepository *mockDonationRepository
	var categoryRepository *mockCategoryRepository
	var invalidator *mockInvalidator
	var broker *async.LocalBroker
	var subscription async.Subscription
	var bananaBox statsdomain.WeighingCategory
	var dropOffDate utils.Date

	ginkgo.BeforeEach(func() {
		donationRepository = newMockDonationRepository()
		categoryRepository = newMockCategoryRepository()
		invalidator = &mockInvalidator{}
		broker = async.NewLocalBroker()
		subscription, _ = broker.Subscribe(statsusecases.BrokerTopicDonationEvents)
		service = statsusecases.NewDonationService(
			donationRepository,
			categoryRepository,
			broker,
			invalidator,
		)

		bananaBox, _ = statsdomain.NewWeighingCategoryBuilder().
			WithName("Banana Box").
			WithKgPerUnit(18.2).
			Build()
		categoryRepository.categories[bananaBox.ID.String()] = bananaBox

		dropOffDate, _ = utils.ParseDate("2026-03-14")
	})

	ginkgo.AfterEach(func() {
		broker.Stop()
	})

	ginkgo.Context("RecordDonation", func() {
		var input statsusecases.DonationInput

		ginkgo.BeforeEach(func() {
			input = statsusecases.DonationInput{
				CategoryID:  bananaBox.ID,
				Donor:       "Riverside Grocers",
				WeightValue: 2,
				Date:        dropOffDate,
			}
		})

		ginkgo.When("the input is valid", func() {
			ginkgo.It("should store the weight in canonical kilograms", func() {
				donation, err := service.RecordDonation(context.Background(), input)
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(donationRepository.createCalled).To(gomega.BeTrue())
				gomega.Expect(donation.WeightKg).To(gomega.BeNumerically("~", 36.4, 1e-9))
				gomega.Expect(donation.Donor).To(gomega.Equal("Riverside Grocers"))
				gomega.Expect(donation.Date.String()).To(gomega.Equal("2026-03-14"))
			})

			ginkgo.It("should publish a donation event", func() {
				donation, err := service.RecordDonation(context.Background(), input)
				gomega.Expect(err).NotTo(gomega.HaveOccurred())

				var msg async.BrokerMessage
				gomega.Eventually(subscription.Receiver).Should(gomega.Receive(&msg))
				event, ok := msg.Value.(statsdomain.DonationRecorded)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(event.Type).To(gomega.Equal(statsdomain.DonationRecordedType))
				gomega.Expect(event.DonationID).To(gomega.Equal(donation.ID))
				gomega.Expect(event.WeightKg).To(gomega.BeNumerically("~", 36.4, 1e-9))
			})

			ginkgo.It("should invalidate cached stats", func() {
				_, err := service.RecordDonation(context.Background(), input)
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(invalidator.calls).To(gomega.Equal(1))
			})
		})

		ginkgo.When("the category is unknown", func() {
			ginkgo.It("should reject the donation", func() {
				input.CategoryID = shareddomain.ID("missing")
				_, err := service.RecordDonation(context.Background(), input)
				gomega.Expect(err).To(gomega.MatchError(statsusecases.ErrCategoryNotFound))
				gomega.Expect(donationRepository.createCalled).To(gomega.BeFalse())
			})
		})

		ginkgo.When("the category was deleted", func() {
			ginkgo.It("should reject the donation", func() {
				bananaBox.SoftDelete()
				categoryRepository.categories[bananaBox.ID.String()] = bananaBox
				_, err := service.RecordDonation(context.Background(), input)
				gomega.Expect(err).To(gomega.MatchError(statsusecases.ErrCategoryNotFound))
			})
		})

		ginkgo.When("the weight is negative", func() {
			ginkgo.It("should reject the donation without publishing", func() {
				input.WeightValue = -1
				_, err := service.RecordDonation(context.Background(), input)
				gomega.Expect(err).To(gomega.MatchError(statsdomain.ErrNegativeWeight))
				gomega.Expect(donationRepository.createCalled).To(gomega.BeFalse())
				gomega.Expect(subscription.Receiver).NotTo(gomega.Receive())
			})
		})

		ginkgo.When("the repository fails", func() {
			ginkgo.It("should surface the error and skip the event", func() {
				donationRepository.createError = errors.New("db down")
				_, err := service.RecordDonation(context.Background(), input)
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(subscription.Receiver).NotTo(gomega.Receive())
				gomega.Expect(invalidator.calls).To(gomega.Equal(0))
			})
		})
	})

	ginkgo.Context("UpdateDonation", func() {
		var donation statsdomain.Donation

		ginkgo.BeforeEach(func() {
			donation, _ = service.RecordDonation(context.Background(), statsusecases.DonationInput{
				CategoryID:  bananaBox.ID,
				Donor:       "Riverside Grocers",
				WeightValue: 2,
				Date:        dropOffDate,
			})
			invalidator.calls = 0
		})

		ginkgo.It("should convert the corrected weight through the category unit", func() {
			updated, err := service.UpdateDonation(context.Background(), donation.ID, statsusecases.DonationInput{
				Donor:       "Riverside Grocers",
				WeightValue: 3,
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(updated.WeightKg).To(gomega.BeNumerically("~", 54.6, 1e-9))
			gomega.Expect(updated.Date.String()).To(gomega.Equal("2026-03-14"))
			gomega.Expect(invalidator.calls).To(gomega.Equal(1))
		})

		ginkgo.It("should reject an unknown donation", func() {
			_, err := service.UpdateDonation(context.Background(), shareddomain.ID("missing"), statsusecases.DonationInput{})
			gomega.Expect(err).To(gomega.MatchError(statsusecases.ErrDonationNotFound))
		})

		ginkgo.It("should refuse a deleted donation", func() {
			gomega.Expect(service.DeleteDonation(context.Background(), donation.ID)).To(gomega.Succeed())
			_, err := service.UpdateDonation(context.Background(), donation.ID, statsusecases.DonationInput{})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Context("DeleteDonation", func() {
		var donation statsdomain.Donation

		ginkgo.BeforeEach(func() {
			donation, _ = service.RecordDonation(context.Background(), statsusecases.DonationInput{
				CategoryID:  bananaBox.ID,
				Donor:       "Riverside Grocers",
				WeightValue: 1,
				Date:        dropOffDate,
			})
			invalidator.calls = 0
		})

		ginkgo.It("should soft delete and invalidate cached stats", func() {
			gomega.Expect(service.DeleteDonation(context.Background(), donation.ID)).To(gomega.Succeed())
			stored := donationRepository.donations[donation.ID.String()]
			gomega.Expect(stored.IsDeleted()).To(gomega.BeTrue())
			gomega.Expect(invalidator.calls).To(gomega.Equal(1))
		})

		ginkgo.It("should refuse a second delete", func() {
			gomega.Expect(service.DeleteDonation(context.Background(), donation.ID)).To(gomega.Succeed())
			gomega.Expect(service.DeleteDonation(context.Background(), donation.ID)).NotTo(gomega.Succeed())
		})
	})
})

type mockInvalidator struct {
	calls int
}

func (m *mockInvalidator) InvalidateStats(ctx context.Context) {
	m.calls++
}

type mockCategoryRepository struct {
	categories   map[string]statsdomain.WeighingCategory
	createCalled bool
	createError  error
	getError     error
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{
		categories: make(map[string]statsdomain.WeighingCategory),
	}
}

func (m *mockCategoryRepository) Create(ctx context.Context, category statsdomain.WeighingCategory) error {
	m.createCalled = true
	if m.createError != nil {
		return m.createError
	}
	m.categories[category.ID.String()] = category
	return nil
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id shareddomain.ID) (statsdomain.WeighingCategory, error) {
	if m.getError != nil {
		return statsdomain.WeighingCategory{}, m.getError
	}
	category, ok := m.categories[id.String()]
	if !ok {
		return statsdomain.WeighingCategory{}, statsusecases.ErrCategoryNotFound
	}
	return category, nil
}

func (m *mockCategoryRepository) GetByName(ctx context.Context, name string) (statsdomain.WeighingCategory, error) {
	for _, category := range m.categories {
		if category.Name.String() == name && !category.IsDeleted() {
			return category, nil
		}
	}
	return statsdomain.WeighingCategory{}, statsusecases.ErrCategoryNotFound
}

func (m *mockCategoryRepository) FindAll(ctx context.Context, pagination statsusecases.Pagination) ([]statsdomain.WeighingCategory, int, error) {
	result := make([]statsdomain.WeighingCategory, 0)
	for _, category := range m.categories {
		if !category.IsDeleted() {
			result = append(result, category)
		}
	}
	return result, len(result), nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, category statsdomain.WeighingCategory) error {
	m.categories[category.ID.String()] = category
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id shareddomain.ID) error {
	category, ok := m.categories[id.String()]
	if !ok {
		return statsusecases.ErrCategoryNotFound
	}
	category.SoftDelete()
	m.categories[id.String()] = category
	return nil
}

type mockDonationRepository struct {
	donations    map[string]statsdomain.Donation
	createCalled bool
	createError  error
	findAllCalls int
	findAllError error
}

func newMockDonationRepository() *mockDonationRepository {
	return &mockDonationRepository{
		donations: make(map[string]statsdomain.Donation),
	}
}

func (m *mockDonationRepository) Create(ctx context.Context, donation statsdomain.Donation) error {
	m.createCalled = true
	if m.createError != nil {
		return m.createError
	}
	m.donations[donation.ID.String()] = donation
	return nil
}

func (m *mockDonationRepository) GetByID(ctx context.Context, id shareddomain.ID) (statsdomain.Donation, error) {
	donation, ok := m.donations[id.String()]
	if !ok {
		return statsdomain.Donation{}, statsusecases.ErrDonationNotFound
	}
	return donation, nil
}

func (m *mockDonationRepository) FindAllByDate(ctx context.Context, date string, pagination statsusecases.Pagination) ([]statsdomain.Donation, int, error) {
	result := make([]statsdomain.Donation, 0)
	for _, donation := range m.donations {
		if donation.Date.String() == date && !donation.IsDeleted() {
			result = append(result, donation)
		}
	}
	return result, len(result), nil
}

func (m *mockDonationRepository) FindAllByPeriod(ctx context.Context, year int, month time.Month) ([]statsdomain.Donation, error) {
	m.findAllCalls++
	if m.findAllError != nil {
		return nil, m.findAllError
	}
	result := make([]statsdomain.Donation, 0)
	for _, donation := range m.donations {
		if donation.IsDeleted() || donation.Date.Year() != year {
			continue
		}
		if month != 0 && donation.Date.Month() != month {
			continue
		}
		result = append(result, donation)
	}
	return result, nil
}

func (m *mockDonationRepository) Update(ctx context.Context, donation statsdomain.Donation) error {
	m.donations[donation.ID.String()] = donation
	return nil
}

func (m *mockDonationRepository) Delete(ctx context.Context, id shareddomain.ID) error {
	donation, ok := m.donations[id.String()]
	if !ok {
		return statsusecases.ErrDonationNotFound
	}
	donation.SoftDelete()
	m.donations[id.String()] = donation
	return nil
}
