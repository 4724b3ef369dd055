package persistence_test

import (
	"context"

	"foodops-server/internal/infra/pubsub"
	"foodops-server/internal/infra/sql"
	"foodops-server/internal/infra/utils"
	regdomain "foodops-server/internal/registration/domain"
	regpersistence "foodops-server/internal/registration/persistence"
	regusecases "foodops-server/internal/registration/usecases"
	shareddomain "foodops-server/internal/shared_kernel/domain"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("FieldRepository", func() {
	var (
		orm         sql.ORM
		mockFactory pubsub.PublisherFactory
		repo        regusecases.FieldRepository
		ctx         context.Context
	)

	ginkgo.BeforeEach(func() {
		var err error
		orm, err = sql.NewMemoryORM()
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		mockFactory = pubsub.NewMemoryPublisherFactory()

		repo, err = regpersistence.NewFieldRepository(mockFactory, orm)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		ctx = context.Background()
	})

	newField := func(name string, fieldType regdomain.FieldType, options ...string) regdomain.FieldDefinition {
		return regdomain.FieldDefinition{
			ID:      shareddomain.ID(utils.GenerateUUID()),
			Name:    shareddomain.Name(name),
			Label:   shareddomain.Label(name),
			Type:    fieldType,
			Options: options,
		}
	}

	ginkgo.Context("Create and GetByID", func() {
		ginkgo.It("should round trip options through the json column", func() {
			field := newField("tshirt_size", regdomain.FieldTypeSelect, "S", "M", "L")
			gomega.Expect(repo.Create(ctx, field)).To(gomega.Succeed())

			found, err := repo.GetByID(ctx, field.ID)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(found.Type).To(gomega.Equal(regdomain.FieldTypeSelect))
			gomega.Expect(found.Options).To(gomega.Equal([]string{"S", "M", "L"}))
		})

		ginkgo.When("the field does not exist", func() {
			ginkgo.It("should return ErrFieldNotFound", func() {
				_, err := repo.GetByID(ctx, shareddomain.ID(utils.GenerateUUID()))
				gomega.Expect(err).To(gomega.MatchError(regusecases.ErrFieldNotFound))
			})
		})
	})

	ginkgo.Context("Requirements", func() {
		var organizationID shareddomain.ID
		var emailField, phoneField regdomain.FieldDefinition

		ginkgo.BeforeEach(func() {
			organizationID = shareddomain.ID(utils.GenerateUUID())
			emailField = newField("email", regdomain.FieldTypeEmail)
			phoneField = newField("phone", regdomain.FieldTypePhone)
			gomega.Expect(repo.Create(ctx, emailField)).To(gomega.Succeed())
			gomega.Expect(repo.Create(ctx, phoneField)).To(gomega.Succeed())
		})

		ginkgo.It("should persist and return requirements in display order", func() {
			requirements := []regdomain.FieldRequirement{
				{Field: phoneField, IsRequired: false, IsActive: true, Order: 2},
				{Field: emailField, IsRequired: true, IsActive: true, Order: 1},
			}
			gomega.Expect(repo.ReplaceRequirementsForOrganization(ctx, organizationID, requirements)).To(gomega.Succeed())

			found, err := repo.FindRequirementsByOrganization(ctx, organizationID)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(found).To(gomega.HaveLen(2))
			gomega.Expect(found[0].Field.Name.String()).To(gomega.Equal("email"))
			gomega.Expect(found[0].IsRequired).To(gomega.BeTrue())
			gomega.Expect(found[1].Field.Name.String()).To(gomega.Equal("phone"))
		})

		ginkgo.It("should replace the previous requirement set", func() {
			first := []regdomain.FieldRequirement{
				{Field: emailField, IsRequired: true, IsActive: true, Order: 1},
				{Field: phoneField, IsRequired: false, IsActive: true, Order: 2},
			}
			gomega.Expect(repo.ReplaceRequirementsForOrganization(ctx, organizationID, first)).To(gomega.Succeed())

			second := []regdomain.FieldRequirement{
				{Field: emailField, IsRequired: true, IsActive: true, Order: 1},
			}
			gomega.Expect(repo.ReplaceRequirementsForOrganization(ctx, organizationID, second)).To(gomega.Succeed())

			found, err := repo.FindRequirementsByOrganization(ctx, organizationID)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(found).To(gomega.HaveLen(1))
		})

		ginkgo.It("should skip bindings to deleted definitions", func() {
			requirements := []regdomain.FieldRequirement{
				{Field: emailField, IsRequired: true, IsActive: true, Order: 1},
				{Field: phoneField, IsRequired: false, IsActive: true, Order: 2},
			}
			gomega.Expect(repo.ReplaceRequirementsForOrganization(ctx, organizationID, requirements)).To(gomega.Succeed())
			gomega.Expect(repo.Delete(ctx, phoneField.ID)).To(gomega.Succeed())

			found, err := repo.FindRequirementsByOrganization(ctx, organizationID)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(found).To(gomega.HaveLen(1))
			gomega.Expect(found[0].Field.Name.String()).To(gomega.Equal("email"))
		})
	})
})
