package usecases_test

import (
	"context"

	statsdomain "foodops-server/internal/stats/domain"
	statsusecases "foodops-server/internal/stats/usecases"
	shareddomain "foodops-server/internal/shared_kernel/domain"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("CategoryService", func() {
	var service statsusecases.CategoryService
	var repository *mockCategoryRepository
	var invalidator *mockInvalidator
	var category statsdomain.WeighingCategory

	ginkgo.BeforeEach(func() {
		repository = newMockCategoryRepository()
		invalidator = &mockInvalidator{}
		service = statsusecases.NewCategoryService(repository, invalidator)

		category, _ = statsdomain.NewWeighingCategoryBuilder().
			WithName("Bread Tray").
			WithKgPerUnit(7.5).
			WithDisplayOrder(1).
			Build()
	})

	ginkgo.Context("CreateCategory", func() {
		ginkgo.It("should persist and invalidate cached stats", func() {
			gomega.Expect(service.CreateCategory(context.Background(), category)).To(gomega.Succeed())
			gomega.Expect(repository.createCalled).To(gomega.BeTrue())
			gomega.Expect(invalidator.calls).To(gomega.Equal(1))
		})
	})

	ginkgo.Context("GetCategoryByName", func() {
		ginkgo.It("should find the category by its unit label", func() {
			gomega.Expect(service.CreateCategory(context.Background(), category)).To(gomega.Succeed())
			found, err := service.GetCategoryByName(context.Background(), "Bread Tray")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(found.Unit().KgPerUnit).To(gomega.Equal(7.5))
		})

		ginkgo.It("should report unknown names", func() {
			_, err := service.GetCategoryByName(context.Background(), "Milk Crate")
			gomega.Expect(err).To(gomega.MatchError(statsusecases.ErrCategoryNotFound))
		})
	})

	ginkgo.Context("UpdateCategory", func() {
		ginkgo.BeforeEach(func() {
			gomega.Expect(service.CreateCategory(context.Background(), category)).To(gomega.Succeed())
			invalidator.calls = 0
		})

		ginkgo.It("should apply changes and invalidate cached stats", func() {
			category.KgPerUnit = 8
			gomega.Expect(service.UpdateCategory(context.Background(), category)).To(gomega.Succeed())
			gomega.Expect(repository.categories[category.ID.String()].KgPerUnit).To(gomega.Equal(8.0))
			gomega.Expect(invalidator.calls).To(gomega.Equal(1))
		})

		ginkgo.It("should refuse a non-positive conversion factor", func() {
			category.KgPerUnit = 0
			err := service.UpdateCategory(context.Background(), category)
			gomega.Expect(err).To(gomega.MatchError(statsdomain.ErrInvalidKgPerUnit))
		})

		ginkgo.It("should refuse an unknown category", func() {
			unknown := category
			unknown.ID = shareddomain.ID("missing")
			err := service.UpdateCategory(context.Background(), unknown)
			gomega.Expect(err).To(gomega.MatchError(statsusecases.ErrCategoryNotFound))
		})
	})

	ginkgo.Context("DeleteCategory", func() {
		ginkgo.BeforeEach(func() {
			gomega.Expect(service.CreateCategory(context.Background(), category)).To(gomega.Succeed())
			invalidator.calls = 0
		})

		ginkgo.It("should soft delete and invalidate cached stats", func() {
			gomega.Expect(service.DeleteCategory(context.Background(), category.ID)).To(gomega.Succeed())
			stored := repository.categories[category.ID.String()]
			gomega.Expect(stored.IsDeleted()).To(gomega.BeTrue())
			gomega.Expect(invalidator.calls).To(gomega.Equal(1))
		})

		ginkgo.It("should refuse a second delete", func() {
			gomega.Expect(service.DeleteCategory(context.Background(), category.ID)).To(gomega.Succeed())
			gomega.Expect(service.DeleteCategory(context.Background(), category.ID)).NotTo(gomega.Succeed())
		})
	})
})
