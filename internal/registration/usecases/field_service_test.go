package usecases_test

import (
	"context"
	"errors"

	regdomain "foodops-server/internal/registration/domain"
	regusecases "foodops-server/internal/registration/usecases"
	shareddomain "foodops-server/internal/shared_kernel/domain"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("FieldService", func() {
	var service regusecases.FieldService
	var repository *mockFieldRepository
	var field regdomain.FieldDefinition

	ginkgo.BeforeEach(func() {
		repository = newMockFieldRepository()
		service = regusecases.NewFieldService(repository)

		field = regdomain.FieldDefinition{
			ID:      shareddomain.ID("field-tshirt"),
			Name:    shareddomain.Name("tshirt_size"),
			Label:   shareddomain.Label("T-Shirt Size"),
			Type:    regdomain.FieldTypeSelect,
			Options: []string{"S", "M", "L"},
		}
		repository.fields[field.ID.String()] = field
	})

	ginkgo.Context("CreateField", func() {
		ginkgo.It("should persist the definition", func() {
			newField := regdomain.FieldDefinition{
				ID:   shareddomain.ID("field-interests"),
				Name: shareddomain.Name("interests"),
				Type: regdomain.FieldTypeMultiselect,
			}
			err := service.CreateField(context.Background(), newField)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(repository.createCalled).To(gomega.BeTrue())
		})

		ginkgo.When("the repository fails", func() {
			ginkgo.BeforeEach(func() {
				repository.createError = errors.New("database error")
			})

			ginkgo.It("should return the error", func() {
				err := service.CreateField(context.Background(), field)
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("creating field definition"))
			})
		})
	})

	ginkgo.Context("UpdateField", func() {
		ginkgo.It("should update a custom field", func() {
			field.Label = shareddomain.Label("Shirt Size")
			err := service.UpdateField(context.Background(), field)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(repository.updateCalled).To(gomega.BeTrue())
		})

		ginkgo.When("the field is a system field", func() {
			ginkgo.BeforeEach(func() {
				field.IsSystemField = true
				repository.fields[field.ID.String()] = field
			})

			ginkgo.It("should refuse the update", func() {
				err := service.UpdateField(context.Background(), field)
				gomega.Expect(err).To(gomega.MatchError(regusecases.ErrSystemFieldImmutable))
				gomega.Expect(repository.updateCalled).To(gomega.BeFalse())
			})
		})

		ginkgo.When("the field does not exist", func() {
			ginkgo.It("should return ErrFieldNotFound", func() {
				missing := regdomain.FieldDefinition{ID: shareddomain.ID("field-ghost")}
				err := service.UpdateField(context.Background(), missing)
				gomega.Expect(err).To(gomega.MatchError(regusecases.ErrFieldNotFound))
			})
		})
	})

	ginkgo.Context("DeleteField", func() {
		ginkgo.It("should delete a custom field", func() {
			err := service.DeleteField(context.Background(), field.ID)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(repository.deleteCalled).To(gomega.BeTrue())
		})

		ginkgo.When("the field is a system field", func() {
			ginkgo.BeforeEach(func() {
				field.IsSystemField = true
				repository.fields[field.ID.String()] = field
			})

			ginkgo.It("should refuse the delete", func() {
				err := service.DeleteField(context.Background(), field.ID)
				gomega.Expect(err).To(gomega.MatchError(regusecases.ErrSystemFieldImmutable))
				gomega.Expect(repository.deleteCalled).To(gomega.BeFalse())
			})
		})
	})

	ginkgo.Context("ListFormFields", func() {
		var organizationID shareddomain.ID

		ginkgo.BeforeEach(func() {
			organizationID = shareddomain.ID("org-1")
			repository.requirementsByOrganization[organizationID.String()] = []regdomain.FieldRequirement{
				namedRequirement("availability", regdomain.FieldTypeMultiselect, false, 3),
				namedRequirement(regdomain.FieldNameFirstName, regdomain.FieldTypeText, true, 1),
				namedRequirement(regdomain.FieldNameEmail, regdomain.FieldTypeEmail, true, 2),
			}
		})

		ginkgo.It("should return requirements in render order", func() {
			result, err := service.ListFormFields(context.Background(), organizationID)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(result).To(gomega.HaveLen(3))
			gomega.Expect(result[0].Field.Name.String()).To(gomega.Equal(regdomain.FieldNameFirstName))
			gomega.Expect(result[1].Field.Name.String()).To(gomega.Equal(regdomain.FieldNameEmail))
			gomega.Expect(result[2].Field.Name.String()).To(gomega.Equal("availability"))
		})
	})

	ginkgo.Context("ReplaceFormFields", func() {
		ginkgo.It("should store the new requirement set", func() {
			organizationID := shareddomain.ID("org-1")
			requirements := []regdomain.FieldRequirement{
				namedRequirement(regdomain.FieldNameEmail, regdomain.FieldTypeEmail, true, 1),
			}
			err := service.ReplaceFormFields(context.Background(), organizationID, requirements)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(repository.replaceCalled).To(gomega.BeTrue())
			gomega.Expect(repository.requirementsByOrganization[organizationID.String()]).To(gomega.HaveLen(1))
		})
	})
})

var _ = ginkgo.Describe("OrganizationService", func() {
	var service regusecases.OrganizationService
	var repository *mockOrganizationRepository
	var organization regdomain.Organization

	ginkgo.BeforeEach(func() {
		repository = newMockOrganizationRepository()
		service = regusecases.NewOrganizationService(repository)

		organization, _ = regdomain.NewOrganizationBuilder().
			WithName("Harvest Table Pantry").
			Build()
		repository.organizations[organization.Slug] = organization
	})

	ginkgo.Context("GetOrganizationBySlug", func() {
		ginkgo.It("should resolve by the generated slug", func() {
			result, err := service.GetOrganizationBySlug(context.Background(), "harvest-table-pantry")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(result.ID).To(gomega.Equal(organization.ID))
		})

		ginkgo.When("no organization matches", func() {
			ginkgo.It("should return ErrOrganizationNotFound", func() {
				_, err := service.GetOrganizationBySlug(context.Background(), "nowhere")
				gomega.Expect(err).To(gomega.MatchError(regusecases.ErrOrganizationNotFound))
			})
		})
	})

	ginkgo.Context("UpdateOrganization", func() {
		ginkgo.It("should update an existing organization", func() {
			organization.Description = shareddomain.Description("Neighborhood food pantry")
			err := service.UpdateOrganization(context.Background(), organization)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(repository.updateCalled).To(gomega.BeTrue())
		})

		ginkgo.When("the organization is deleted", func() {
			ginkgo.BeforeEach(func() {
				organization.SoftDelete()
				repository.organizations[organization.Slug] = organization
			})

			ginkgo.It("should return an error", func() {
				err := service.UpdateOrganization(context.Background(), organization)
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("deleted"))
			})
		})
	})

	ginkgo.Context("DeleteOrganization", func() {
		ginkgo.It("should soft delete an existing organization", func() {
			err := service.DeleteOrganization(context.Background(), organization.ID)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(repository.deleteCalled).To(gomega.BeTrue())
		})
	})
})
