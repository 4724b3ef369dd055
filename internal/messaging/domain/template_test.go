package domain_test

import (
	messagingdomain "foodops-server/internal/messaging/domain"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("EmailTemplate", func() {
	ginkgo.Context("Render", func() {
		var template messagingdomain.EmailTemplate

		ginkgo.BeforeEach(func() {
			var err error
			template, err = messagingdomain.NewEmailTemplateBuilder().
				WithName("volunteer-registration").
				WithSubject("New volunteer at {{organization_name}}").
				WithBody("{{organization_name}} now has {{count}} registrations. Welcome aboard, {{ count }}!").
				Build()
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		ginkgo.It("should substitute supplied placeholders", func() {
			subject, body := template.Render(map[string]string{
				"organization_name": "Harvest Table Pantry",
				"count":             "12",
			})
			gomega.Expect(subject).To(gomega.Equal("New volunteer at Harvest Table Pantry"))
			gomega.Expect(body).To(gomega.Equal("Harvest Table Pantry now has 12 registrations. Welcome aboard, 12!"))
		})

		ginkgo.It("should leave unknown placeholders verbatim", func() {
			subject, _ := template.Render(map[string]string{"count": "12"})
			gomega.Expect(subject).To(gomega.Equal("New volunteer at {{organization_name}}"))
		})

		ginkgo.It("should list distinct placeholders in order of first appearance", func() {
			gomega.Expect(template.Placeholders()).To(gomega.Equal([]string{"organization_name", "count"}))
		})
	})

	ginkgo.Context("builder", func() {
		ginkgo.It("should refuse an empty name", func() {
			_, err := messagingdomain.NewEmailTemplateBuilder().
				WithName("   ").
				Build()
			gomega.Expect(err).To(gomega.MatchError(messagingdomain.ErrEmptyTemplateName))
		})

		ginkgo.It("should default to active", func() {
			template, err := messagingdomain.NewEmailTemplateBuilder().
				WithName("weekly-digest").
				Build()
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(template.IsActive).To(gomega.BeTrue())
			gomega.Expect(template.ID).NotTo(gomega.BeEmpty())
		})
	})
})
