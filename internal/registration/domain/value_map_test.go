package domain_test

import (
	"foodops-server/internal/registration/domain"
	shareddomain "foodops-server/internal/shared_kernel/domain"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func textRequirement(name, label string, required bool, order int) domain.FieldRequirement {
	return domain.FieldRequirement{
		Field: domain.FieldDefinition{
			ID:    shareddomain.ID("field-" + name),
			Name:  shareddomain.Name(name),
			Label: shareddomain.Label(label),
			Type:  domain.FieldTypeText,
		},
		IsRequired: required,
		IsActive:   true,
		Order:      order,
	}
}

func typedRequirement(name string, fieldType domain.FieldType, required bool, order int) domain.FieldRequirement {
	req := textRequirement(name, name, required, order)
	req.Field.Type = fieldType
	return req
}

var _ = ginkgo.Describe("ValueMap", func() {
	ginkgo.Context("InitializeValues", func() {
		ginkgo.When("seeding defaults for mixed field types", func() {
			var requirements []domain.FieldRequirement
			var values domain.ValueMap

			ginkgo.BeforeEach(func() {
				requirements = []domain.FieldRequirement{
					typedRequirement("full_name", domain.FieldTypeText, true, 1),
					typedRequirement("newsletter", domain.FieldTypeBoolean, false, 2),
					typedRequirement("skills", domain.FieldTypeMultiselect, false, 3),
					typedRequirement("notes", domain.FieldTypeTextarea, false, 4),
				}
				values = domain.InitializeValues(requirements)
			})

			ginkgo.It("should have a key for every requirement", func() {
				gomega.Expect(values).To(gomega.HaveLen(len(requirements)))
				for _, req := range requirements {
					gomega.Expect(values).To(gomega.HaveKey(req.Field.Name.String()))
				}
			})

			ginkgo.It("should seed type-appropriate defaults", func() {
				gomega.Expect(values["full_name"]).To(gomega.Equal(""))
				gomega.Expect(values["newsletter"]).To(gomega.Equal(false))
				gomega.Expect(values["skills"]).To(gomega.Equal([]string{}))
				gomega.Expect(values["notes"]).To(gomega.Equal(""))
			})
		})

		ginkgo.When("given no requirements", func() {
			ginkgo.It("should return an empty map", func() {
				gomega.Expect(domain.InitializeValues(nil)).To(gomega.BeEmpty())
			})
		})

		ginkgo.When("a definition carries an unknown type", func() {
			ginkgo.It("should fall back to the text default", func() {
				req := typedRequirement("mystery", domain.FieldType("hologram"), false, 1)
				values := domain.InitializeValues([]domain.FieldRequirement{req})
				gomega.Expect(values["mystery"]).To(gomega.Equal(""))
			})
		})
	})

	ginkgo.Context("NormalizePhone", func() {
		ginkgo.When("input contains formatting characters", func() {
			ginkgo.It("should strip everything but digits", func() {
				gomega.Expect(domain.NormalizePhone("(902) 555-0100")).To(gomega.Equal("9025550100"))
			})
		})

		ginkgo.When("input has more than 10 digits", func() {
			ginkgo.It("should keep only the first 10", func() {
				gomega.Expect(domain.NormalizePhone("+1 (902) 555-01000")).To(gomega.Equal("1902555010"))
			})
		})

		ginkgo.When("a formatted number with an extension is pasted", func() {
			ginkgo.It("should store only the 10 leading digits", func() {
				gomega.Expect(domain.NormalizePhone("902-555-0100 ext 4")).To(gomega.Equal("9025550100"))
			})
		})

		ginkgo.When("input has letters only", func() {
			ginkgo.It("should produce an empty string", func() {
				gomega.Expect(domain.NormalizePhone("call me maybe")).To(gomega.Equal(""))
			})
		})
	})

	ginkgo.Context("SetValue", func() {
		ginkgo.It("should not mutate the original map", func() {
			original := domain.InitializeValues([]domain.FieldRequirement{
				textRequirement("full_name", "Full Name", true, 1),
			})
			updated := domain.SetValue(original, "full_name", "Ada")

			gomega.Expect(original["full_name"]).To(gomega.Equal(""))
			gomega.Expect(updated["full_name"]).To(gomega.Equal("Ada"))
		})
	})

	ginkgo.Context("ToggleOption", func() {
		var values domain.ValueMap

		ginkgo.BeforeEach(func() {
			values = domain.InitializeValues([]domain.FieldRequirement{
				typedRequirement("skills", domain.FieldTypeMultiselect, false, 1),
			})
		})

		ginkgo.When("checking options", func() {
			ginkgo.It("should append absent options in order", func() {
				values = domain.ToggleOption(values, "skills", "driving", true)
				values = domain.ToggleOption(values, "skills", "cooking", true)
				gomega.Expect(values["skills"]).To(gomega.Equal([]string{"driving", "cooking"}))
			})

			ginkgo.It("should not duplicate an already-checked option", func() {
				values = domain.ToggleOption(values, "skills", "driving", true)
				values = domain.ToggleOption(values, "skills", "driving", true)
				gomega.Expect(values["skills"]).To(gomega.Equal([]string{"driving"}))
			})
		})

		ginkgo.When("unchecking an option", func() {
			ginkgo.It("should remove the matching entry", func() {
				values = domain.ToggleOption(values, "skills", "driving", true)
				values = domain.ToggleOption(values, "skills", "cooking", true)
				values = domain.ToggleOption(values, "skills", "driving", false)
				gomega.Expect(values["skills"]).To(gomega.Equal([]string{"cooking"}))
			})
		})
	})

	ginkgo.Context("Validate", func() {
		ginkgo.When("a required field is empty", func() {
			ginkgo.It("should fail with the field's label", func() {
				reqs := []domain.FieldRequirement{
					textRequirement("full_name", "Full Name", true, 1),
				}
				values := domain.InitializeValues(reqs)

				err := domain.Validate(values, reqs)
				gomega.Expect(err).To(gomega.MatchError(domain.RequiredFieldError{Label: "Full Name"}))
			})
		})

		ginkgo.When("a required field is whitespace only", func() {
			ginkgo.It("should still count as empty", func() {
				reqs := []domain.FieldRequirement{
					textRequirement("full_name", "Full Name", true, 1),
				}
				values := domain.SetValue(domain.InitializeValues(reqs), "full_name", "   ")

				err := domain.Validate(values, reqs)
				gomega.Expect(err).To(gomega.MatchError(domain.RequiredFieldError{Label: "Full Name"}))
			})
		})

		ginkgo.When("multiple required fields are empty", func() {
			ginkgo.It("should report only the first in render order", func() {
				reqs := []domain.FieldRequirement{
					textRequirement("last_name", "Last Name", true, 2),
					textRequirement("first_name", "First Name", true, 1),
				}
				values := domain.InitializeValues(reqs)

				err := domain.Validate(values, reqs)
				gomega.Expect(err).To(gomega.MatchError(domain.RequiredFieldError{Label: "First Name"}))
			})
		})

		ginkgo.When("an inactive required field is empty", func() {
			ginkgo.It("should be skipped", func() {
				req := textRequirement("legacy", "Legacy", true, 1)
				req.IsActive = false

				err := domain.Validate(domain.ValueMap{}, []domain.FieldRequirement{req})
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
			})
		})

		ginkgo.When("checking email formats", func() {
			var reqs []domain.FieldRequirement

			ginkgo.BeforeEach(func() {
				reqs = []domain.FieldRequirement{
					typedRequirement("email", domain.FieldTypeEmail, false, 1),
				}
			})

			ginkgo.It("should reject plain words", func() {
				values := domain.SetValue(domain.InitializeValues(reqs), "email", "not-an-email")
				gomega.Expect(domain.Validate(values, reqs)).To(gomega.MatchError(domain.ErrInvalidEmail))
			})

			ginkgo.It("should reject a missing domain dot", func() {
				values := domain.SetValue(domain.InitializeValues(reqs), "email", "a@b")
				gomega.Expect(domain.Validate(values, reqs)).To(gomega.MatchError(domain.ErrInvalidEmail))
			})

			ginkgo.It("should reject a double at sign", func() {
				values := domain.SetValue(domain.InitializeValues(reqs), "email", "a@@b.com")
				gomega.Expect(domain.Validate(values, reqs)).To(gomega.MatchError(domain.ErrInvalidEmail))
			})

			ginkgo.It("should accept a well-formed address", func() {
				values := domain.SetValue(domain.InitializeValues(reqs), "email", "a@b.com")
				gomega.Expect(domain.Validate(values, reqs)).NotTo(gomega.HaveOccurred())
			})

			ginkgo.It("should skip the check when optional and empty", func() {
				gomega.Expect(domain.Validate(domain.InitializeValues(reqs), reqs)).NotTo(gomega.HaveOccurred())
			})

			ginkgo.It("should only check the first email field", func() {
				multi := []domain.FieldRequirement{
					typedRequirement("email", domain.FieldTypeEmail, false, 1),
					typedRequirement("backup_email", domain.FieldTypeEmail, false, 2),
				}
				values := domain.InitializeValues(multi)
				values = domain.SetValue(values, "email", "a@b.com")
				values = domain.SetValue(values, "backup_email", "broken")

				gomega.Expect(domain.Validate(values, multi)).NotTo(gomega.HaveOccurred())
			})
		})

		ginkgo.When("checking phone length", func() {
			var reqs []domain.FieldRequirement

			ginkgo.BeforeEach(func() {
				reqs = []domain.FieldRequirement{
					typedRequirement("phone", domain.FieldTypePhone, false, 1),
				}
			})

			ginkgo.It("should reject fewer than 10 digits", func() {
				values := domain.SetValue(domain.InitializeValues(reqs), "phone", domain.NormalizePhone("902-555"))
				gomega.Expect(domain.Validate(values, reqs)).To(gomega.MatchError(domain.ErrInvalidPhone))
			})

			ginkgo.It("should accept exactly 10 digits", func() {
				values := domain.SetValue(domain.InitializeValues(reqs), "phone", domain.NormalizePhone("(902) 555-0100"))
				gomega.Expect(domain.Validate(values, reqs)).NotTo(gomega.HaveOccurred())
			})
		})

		ginkgo.When("required and format checks both apply", func() {
			ginkgo.It("should report the required failure first", func() {
				reqs := []domain.FieldRequirement{
					textRequirement("full_name", "Full Name", true, 1),
					typedRequirement("email", domain.FieldTypeEmail, false, 2),
				}
				values := domain.InitializeValues(reqs)
				values = domain.SetValue(values, "email", "broken")

				err := domain.Validate(values, reqs)
				gomega.Expect(err).To(gomega.MatchError(domain.RequiredFieldError{Label: "Full Name"}))
			})
		})
	})

	ginkgo.Context("SubmissionPayload", func() {
		ginkgo.When("flattening a filled form", func() {
			var submission domain.Submission

			ginkgo.BeforeEach(func() {
				reqs := []domain.FieldRequirement{
					typedRequirement("email", domain.FieldTypeEmail, true, 1),
					typedRequirement("phone", domain.FieldTypePhone, false, 2),
					textRequirement("first_name", "First Name", true, 3),
					textRequirement("last_name", "Last Name", true, 4),
					typedRequirement("skills", domain.FieldTypeMultiselect, false, 5),
				}
				values := domain.InitializeValues(reqs)
				values = domain.SetValue(values, "email", "ada@example.org")
				values = domain.SetValue(values, "phone", domain.NormalizePhone("902-555-0100"))
				values = domain.SetValue(values, "first_name", "Ada")
				values = domain.SetValue(values, "last_name", "Lovelace")
				values = domain.ToggleOption(values, "skills", "driving", true)

				submission = domain.SubmissionPayload(values, reqs)
			})

			ginkgo.It("should extract the well-known fields", func() {
				gomega.Expect(submission.Email).To(gomega.Equal("ada@example.org"))
				gomega.Expect(submission.Phone).To(gomega.Equal("9025550100"))
				gomega.Expect(submission.FirstName).To(gomega.Equal("Ada"))
				gomega.Expect(submission.LastName).To(gomega.Equal("Lovelace"))
			})

			ginkgo.It("should keep entries in render order", func() {
				names := make([]string, 0, len(submission.FieldValues))
				for _, entry := range submission.FieldValues {
					names = append(names, entry.FieldName)
				}
				gomega.Expect(names).To(gomega.Equal([]string{"email", "phone", "first_name", "last_name", "skills"}))
			})
		})
	})
})
