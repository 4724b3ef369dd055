package persistence_test

import (
	"context"

	"foodops-server/internal/infra/pubsub"
	"foodops-server/internal/infra/sql"
	regdomain "foodops-server/internal/registration/domain"
	regpersistence "foodops-server/internal/registration/persistence"
	regusecases "foodops-server/internal/registration/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("OrganizationRepository", func() {
	var (
		orm         sql.ORM
		mockFactory pubsub.PublisherFactory
		repo        regusecases.OrganizationRepository
		ctx         context.Context
	)

	ginkgo.BeforeEach(func() {
		var err error
		orm, err = sql.NewMemoryORM()
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		mockFactory = pubsub.NewMemoryPublisherFactory()

		repo, err = regpersistence.NewOrganizationRepository(mockFactory, orm)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		ctx = context.Background()
	})

	newOrganization := func(name string) regdomain.Organization {
		organization, err := regdomain.NewOrganizationBuilder().
			WithName(name).
			WithEmail("hello@example.org").
			Build()
		gomega.ExpectWithOffset(1, err).NotTo(gomega.HaveOccurred())
		return organization
	}

	ginkgo.Context("Create and GetBySlug", func() {
		ginkgo.It("should round trip through the database", func() {
			organization := newOrganization("Harvest Table Pantry")
			gomega.Expect(repo.Create(ctx, organization)).To(gomega.Succeed())

			found, err := repo.GetBySlug(ctx, "harvest-table-pantry")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(found.ID).To(gomega.Equal(organization.ID))
			gomega.Expect(found.Name.String()).To(gomega.Equal("Harvest Table Pantry"))
			gomega.Expect(found.IsActive).To(gomega.BeTrue())
		})

		ginkgo.When("no organization has the slug", func() {
			ginkgo.It("should return ErrOrganizationNotFound", func() {
				_, err := repo.GetBySlug(ctx, "nowhere")
				gomega.Expect(err).To(gomega.MatchError(regusecases.ErrOrganizationNotFound))
			})
		})
	})

	ginkgo.Context("FindAll", func() {
		ginkgo.BeforeEach(func() {
			for _, name := range []string{"Beacon Shelter", "Harvest Table Pantry", "Acorn Kitchen"} {
				gomega.Expect(repo.Create(ctx, newOrganization(name))).To(gomega.Succeed())
			}
		})

		ginkgo.It("should return organizations ordered by name", func() {
			result, total, err := repo.FindAll(ctx, regusecases.Pagination{Limit: 10, Offset: 0})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(total).To(gomega.Equal(3))
			gomega.Expect(result[0].Name.String()).To(gomega.Equal("Acorn Kitchen"))
			gomega.Expect(result[2].Name.String()).To(gomega.Equal("Harvest Table Pantry"))
		})

		ginkgo.It("should respect pagination", func() {
			result, total, err := repo.FindAll(ctx, regusecases.Pagination{Limit: 2, Offset: 2})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(total).To(gomega.Equal(3))
			gomega.Expect(result).To(gomega.HaveLen(1))
		})

		ginkgo.It("should exclude soft deleted organizations", func() {
			result, _, err := repo.FindAll(ctx, regusecases.Pagination{Limit: 10, Offset: 0})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(repo.Delete(ctx, result[0].ID)).To(gomega.Succeed())

			remaining, total, err := repo.FindAll(ctx, regusecases.Pagination{Limit: 10, Offset: 0})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(total).To(gomega.Equal(2))
			gomega.Expect(remaining).To(gomega.HaveLen(2))
		})
	})

	ginkgo.Context("Delete", func() {
		ginkgo.It("should keep the row retrievable by id", func() {
			organization := newOrganization("Harvest Table Pantry")
			gomega.Expect(repo.Create(ctx, organization)).To(gomega.Succeed())
			gomega.Expect(repo.Delete(ctx, organization.ID)).To(gomega.Succeed())

			found, err := repo.GetByID(ctx, organization.ID)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(found.IsDeleted()).To(gomega.BeTrue())
			gomega.Expect(found.IsActive).To(gomega.BeFalse())
		})
	})
})
