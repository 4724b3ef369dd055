package persistence_test

import (
	"context"
	"time"

	"foodops-server/internal/infra/pubsub"
	"foodops-server/internal/infra/sql"
	"foodops-server/internal/infra/utils"
	statsdomain "foodops-server/internal/stats/domain"
	statspersistence "foodops-server/internal/stats/persistence"
	statsusecases "foodops-server/internal/stats/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("DonationRepository", func() {
	var (
		orm         sql.ORM
		mockFactory pubsub.PublisherFactory
		repo        statsusecases.DonationRepository
		ctx         context.Context
	)

	ginkgo.BeforeEach(func() {
		var err error
		orm, err = sql.NewMemoryORM()
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		mockFactory = pubsub.NewMemoryPublisherFactory()

		repo, err = statspersistence.NewDonationRepository(mockFactory, orm)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		ctx = context.Background()
	})

	newDonation := func(donor string, weightKg float64, date string) statsdomain.Donation {
		day, err := utils.ParseDate(date)
		gomega.ExpectWithOffset(1, err).NotTo(gomega.HaveOccurred())
		donation, err := statsdomain.NewDonationBuilder().
			WithDonor(donor).
			WithWeightKg(weightKg).
			WithDate(day).
			WithNotes("dock drop-off").
			Build()
		gomega.ExpectWithOffset(1, err).NotTo(gomega.HaveOccurred())
		return donation
	}

	ginkgo.Context("Create and GetByID", func() {
		ginkgo.It("should round trip the date column", func() {
			donation := newDonation("Riverside Grocers", 36.4, "2026-03-14")
			gomega.Expect(repo.Create(ctx, donation)).To(gomega.Succeed())

			found, err := repo.GetByID(ctx, donation.ID)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(found.Date.String()).To(gomega.Equal("2026-03-14"))
			gomega.Expect(found.WeightKg).To(gomega.Equal(36.4))
			gomega.Expect(found.Notes).To(gomega.Equal("dock drop-off"))
		})
	})

	ginkgo.Context("FindAllByDate", func() {
		ginkgo.BeforeEach(func() {
			gomega.Expect(repo.Create(ctx, newDonation("Riverside Grocers", 10, "2026-03-14"))).To(gomega.Succeed())
			gomega.Expect(repo.Create(ctx, newDonation("Acorn Kitchen", 5, "2026-03-14"))).To(gomega.Succeed())
			gomega.Expect(repo.Create(ctx, newDonation("Riverside Grocers", 7, "2026-03-15"))).To(gomega.Succeed())
		})

		ginkgo.It("should only return the requested date", func() {
			result, total, err := repo.FindAllByDate(ctx, "2026-03-14", statsusecases.Pagination{Limit: 10, Offset: 0})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(total).To(gomega.Equal(2))
			gomega.Expect(result).To(gomega.HaveLen(2))
		})

		ginkgo.It("should exclude soft deleted donations", func() {
			result, _, err := repo.FindAllByDate(ctx, "2026-03-14", statsusecases.Pagination{Limit: 10, Offset: 0})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(repo.Delete(ctx, result[0].ID)).To(gomega.Succeed())

			_, total, err := repo.FindAllByDate(ctx, "2026-03-14", statsusecases.Pagination{Limit: 10, Offset: 0})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(total).To(gomega.Equal(1))
		})
	})

	ginkgo.Context("FindAllByPeriod", func() {
		ginkgo.BeforeEach(func() {
			gomega.Expect(repo.Create(ctx, newDonation("Riverside Grocers", 10, "2026-01-15"))).To(gomega.Succeed())
			gomega.Expect(repo.Create(ctx, newDonation("Riverside Grocers", 5, "2026-12-31"))).To(gomega.Succeed())
			gomega.Expect(repo.Create(ctx, newDonation("Riverside Grocers", 7, "2025-12-31"))).To(gomega.Succeed())
		})

		ginkgo.It("should fetch a whole year when the month is zero", func() {
			result, err := repo.FindAllByPeriod(ctx, 2026, 0)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(result).To(gomega.HaveLen(2))
		})

		ginkgo.It("should scope to a single month", func() {
			result, err := repo.FindAllByPeriod(ctx, 2026, time.January)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(result).To(gomega.HaveLen(1))
			gomega.Expect(result[0].Date.String()).To(gomega.Equal("2026-01-15"))
		})

		ginkgo.It("should include December through the year boundary", func() {
			result, err := repo.FindAllByPeriod(ctx, 2026, time.December)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(result).To(gomega.HaveLen(1))
			gomega.Expect(result[0].Date.String()).To(gomega.Equal("2026-12-31"))
		})
	})
})
