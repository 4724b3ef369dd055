package usecases_test

import (
	"context"
	"fmt"
	"time"

	"foodops-server/internal/infra/cache"
	"foodops-server/internal/infra/utils"
	statsdomain "foodops-server/internal/stats/domain"
	statsusecases "foodops-server/internal/stats/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("StatsService", func() {
	var service *statsusecases.SimpleStatsService
	var donationRepository *mockDonationRepository
	var categoryRepository *mockCategoryRepository
	var tableCache *mockCache
	var year int

	seedDonation := func(donor string, weightKg float64, date string) {
		day, err := utils.ParseDate(date)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		donation, err := statsdomain.NewDonationBuilder().
			WithDonor(donor).
			WithWeightKg(weightKg).
			WithDate(day).
			Build()
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		donationRepository.donations[donation.ID.String()] = donation
	}

	ginkgo.BeforeEach(func() {
		donationRepository = newMockDonationRepository()
		categoryRepository = newMockCategoryRepository()
		tableCache = newMockCache()
		service = statsusecases.NewStatsService(donationRepository, categoryRepository, tableCache)

		year = time.Now().Year()
		seedDonation("Alice", 10, fmt.Sprintf("%d-01-15", year))
		seedDonation("Bob", 5, fmt.Sprintf("%d-01-20", year))
		seedDonation("Alice", 2.5, fmt.Sprintf("%d-03-03", year))
	})

	ginkgo.Context("all months view", func() {
		ginkgo.It("should always produce twelve rows", func() {
			stats, err := service.GetIncomingStats(context.Background(), statsdomain.AllMonths, year, "")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(stats.Mode).To(gomega.Equal(statsdomain.TableModePerMonth))
			gomega.Expect(stats.TableData).To(gomega.HaveLen(12))
			gomega.Expect(stats.RowTotals).To(gomega.HaveLen(12))
			gomega.Expect(stats.TableData[0].Label).To(gomega.Equal("January"))
			gomega.Expect(stats.TableData[11].Label).To(gomega.Equal("December"))
		})

		ginkgo.It("should aggregate per donor with zero-filled gaps", func() {
			stats, err := service.GetIncomingStats(context.Background(), statsdomain.AllMonths, year, "")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(stats.Donors).To(gomega.Equal([]string{"Alice", "Bob"}))

			january := stats.TableData[0]
			gomega.Expect(january.Values["Alice"]).To(gomega.Equal("10.00"))
			gomega.Expect(january.Values["Bob"]).To(gomega.Equal("5.00"))
			gomega.Expect(january.Total).To(gomega.Equal("15.00"))

			february := stats.TableData[1]
			gomega.Expect(february.Values["Alice"]).To(gomega.Equal("0.00"))
			gomega.Expect(february.Total).To(gomega.Equal("0.00"))
		})

		ginkgo.It("should sum canonical kilograms before converting totals", func() {
			stats, err := service.GetIncomingStats(context.Background(), statsdomain.AllMonths, year, "")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(stats.Totals["Alice"]).To(gomega.Equal("12.50"))
			gomega.Expect(stats.Totals["Bob"]).To(gomega.Equal("5.00"))
			gomega.Expect(stats.GrandTotal).To(gomega.Equal("17.50"))
		})
	})

	ginkgo.Context("single month view", func() {
		ginkgo.It("should list raw per-date rows", func() {
			stats, err := service.GetIncomingStats(context.Background(), 1, year, "")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(stats.Mode).To(gomega.Equal(statsdomain.TableModePerDate))
			gomega.Expect(stats.TableData).To(gomega.HaveLen(2))
			gomega.Expect(stats.TableData[0].Label).To(gomega.Equal(fmt.Sprintf("%d-01-15", year)))
			gomega.Expect(stats.TableData[1].Label).To(gomega.Equal(fmt.Sprintf("%d-01-20", year)))
			gomega.Expect(stats.GrandTotal).To(gomega.Equal("15.00"))
		})
	})

	ginkgo.Context("display units", func() {
		ginkgo.It("should convert to pounds exactly once", func() {
			stats, err := service.GetIncomingStats(context.Background(), statsdomain.AllMonths, year, "lb")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(stats.Unit).To(gomega.Equal(statsdomain.UnitPounds.Label))
			gomega.Expect(stats.Totals["Alice"]).To(gomega.Equal("27.56"))
			gomega.Expect(stats.GrandTotal).To(gomega.Equal("38.58"))
		})

		ginkgo.It("should resolve weighing categories as custom units", func() {
			category, err := statsdomain.NewWeighingCategoryBuilder().
				WithName("Banana Box").
				WithKgPerUnit(17.5).
				Build()
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			categoryRepository.categories[category.ID.String()] = category

			stats, err := service.GetIncomingStats(context.Background(), statsdomain.AllMonths, year, "Banana Box")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(stats.Unit).To(gomega.Equal("Banana Box"))
			gomega.Expect(stats.GrandTotal).To(gomega.Equal("1.00"))
		})

		ginkgo.It("should fall back to kilograms for unknown units", func() {
			stats, err := service.GetIncomingStats(context.Background(), statsdomain.AllMonths, year, "stone")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(stats.Unit).To(gomega.Equal(statsdomain.UnitKilograms.Label))
		})
	})

	ginkgo.Context("month filter validation", func() {
		ginkgo.It("should reject out-of-range months", func() {
			_, err := service.GetIncomingStats(context.Background(), 13, year, "")
			gomega.Expect(err).To(gomega.MatchError(statsusecases.ErrInvalidMonth))
			_, err = service.GetIncomingStats(context.Background(), -1, year, "")
			gomega.Expect(err).To(gomega.MatchError(statsusecases.ErrInvalidMonth))
		})
	})

	ginkgo.Context("caching", func() {
		ginkgo.It("should compute once per selection until invalidated", func() {
			_, err := service.GetIncomingStats(context.Background(), statsdomain.AllMonths, year, "")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			_, err = service.GetIncomingStats(context.Background(), statsdomain.AllMonths, year, "")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(donationRepository.findAllCalls).To(gomega.Equal(1))

			service.InvalidateStats(context.Background())
			_, err = service.GetIncomingStats(context.Background(), statsdomain.AllMonths, year, "")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(donationRepository.findAllCalls).To(gomega.Equal(2))
		})

		ginkgo.It("should prime the current-year overview on refresh", func() {
			gomega.Expect(service.RefreshStats(context.Background())).To(gomega.Succeed())
			calls := donationRepository.findAllCalls

			_, err := service.GetIncomingStats(context.Background(), statsdomain.AllMonths, year, "")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(donationRepository.findAllCalls).To(gomega.Equal(calls))
		})
	})
})

var _ = ginkgo.Describe("StatsRefreshWorker", func() {
	ginkgo.It("should stop when the context is cancelled", func() {
		donationRepository := newMockDonationRepository()
		categoryRepository := newMockCategoryRepository()
		service := statsusecases.NewStatsService(donationRepository, categoryRepository, newMockCache())

		ticker := time.NewTicker(time.Millisecond)
		defer ticker.Stop()
		worker := statsusecases.NewStatsRefreshWorker(ticker, "", service)

		ctx, cancel := context.WithCancel(context.Background())
		stopped := make(chan struct{})
		go worker.Run(ctx, func() { close(stopped) })
		cancel()
		gomega.Eventually(stopped).Should(gomega.BeClosed())
	})

	ginkgo.It("should bail out on a malformed schedule", func() {
		donationRepository := newMockDonationRepository()
		categoryRepository := newMockCategoryRepository()
		service := statsusecases.NewStatsService(donationRepository, categoryRepository, newMockCache())

		ticker := time.NewTicker(time.Millisecond)
		defer ticker.Stop()
		worker := statsusecases.NewStatsRefreshWorker(ticker, "not a schedule", service)

		stopped := make(chan struct{})
		go worker.Run(context.Background(), func() { close(stopped) })
		gomega.Eventually(stopped).Should(gomega.BeClosed())
	})
})

// mockCache is a deterministic stand-in: ristretto admits entries
// asynchronously, which would make cache-hit assertions racy.
type mockCache struct {
	entries map[string]any
}

var _ cache.Cache = (*mockCache)(nil)

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]any)}
}

func (c *mockCache) Get(ctx context.Context, key string) (any, bool) {
	value, ok := c.entries[key]
	return value, ok
}

func (c *mockCache) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	c.entries[key] = value
	return true
}

func (c *mockCache) Delete(ctx context.Context, key string) {
	delete(c.entries, key)
}

func (c *mockCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, loader func() (any, error)) (any, error) {
	if value, ok := c.entries[key]; ok {
		return value, nil
	}
	value, err := loader()
	if err != nil {
		return nil, err
	}
	c.entries[key] = value
	return value, nil
}

func (c *mockCache) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	return keys, nil
}
