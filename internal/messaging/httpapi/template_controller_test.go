package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"foodops-server/internal/infra/pubsub"
	"foodops-server/internal/infra/sql"
	messaginghttpapi "foodops-server/internal/messaging/httpapi"
	messagingpersistence "foodops-server/internal/messaging/persistence"
	messagingusecases "foodops-server/internal/messaging/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("TemplateController", func() {
	var router *http.ServeMux

	ginkgo.BeforeEach(func() {
		orm, err := sql.NewMemoryORM()
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		publisherFactory := pubsub.NewMemoryPublisherFactory()

		repository, err := messagingpersistence.NewTemplateRepository(publisherFactory, orm)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		templateService := messagingusecases.NewTemplateService(repository)

		router = http.NewServeMux()
		messaginghttpapi.NewTemplateController(templateService).AddRoutes(router)
	})

	doRequest := func(method, target string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			gomega.ExpectWithOffset(1, json.NewEncoder(&buf).Encode(body)).To(gomega.Succeed())
		}
		request := httptest.NewRequest(method, target, &buf)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		return recorder
	}

	createTemplate := func(name, subject, body string) map[string]any {
		recorder := doRequest(http.MethodPost, "/v1/email-templates", map[string]any{
			"name":    name,
			"subject": subject,
			"body":    body,
		})
		gomega.ExpectWithOffset(1, recorder.Code).To(gomega.Equal(http.StatusCreated))
		var response map[string]any
		gomega.ExpectWithOffset(1, json.Unmarshal(recorder.Body.Bytes(), &response)).To(gomega.Succeed())
		return response
	}

	ginkgo.Context("POST /v1/email-templates", func() {
		ginkgo.It("should create a template and report its placeholders", func() {
			response := createTemplate(
				"volunteer-registration",
				"New volunteer at {{organization_name}}",
				"Total registrations: {{count}}",
			)
			gomega.Expect(response["name"]).To(gomega.Equal("volunteer-registration"))
			gomega.Expect(response["is_active"]).To(gomega.BeTrue())
			gomega.Expect(response["placeholders"]).To(gomega.Equal([]any{"organization_name", "count"}))
		})

		ginkgo.It("should refuse a blank name", func() {
			recorder := doRequest(http.MethodPost, "/v1/email-templates", map[string]any{
				"name":    "   ",
				"subject": "Welcome",
				"body":    "Hi",
			})
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Context("GET /v1/email-templates", func() {
		ginkgo.It("should list templates with pagination metadata", func() {
			createTemplate("volunteer-registration", "Welcome", "Hi")
			createTemplate("shift-reminder", "Reminder", "Your shift")

			recorder := doRequest(http.MethodGet, "/v1/email-templates", nil)
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusOK))

			var response map[string]any
			gomega.Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(gomega.Succeed())
			data := response["data"].([]any)
			gomega.Expect(data).To(gomega.HaveLen(2))
			gomega.Expect(data[0].(map[string]any)["name"]).To(gomega.Equal("shift-reminder"))

			pagination := response["pagination"].(map[string]any)
			gomega.Expect(pagination["total"]).To(gomega.BeEquivalentTo(2))
		})
	})

	ginkgo.Context("GET /v1/email-templates/{id}", func() {
		ginkgo.It("should fetch a template by id", func() {
			created := createTemplate("volunteer-registration", "Welcome", "Hi")

			recorder := doRequest(http.MethodGet, "/v1/email-templates/"+created["id"].(string), nil)
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusOK))

			var response map[string]any
			gomega.Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(gomega.Succeed())
			gomega.Expect(response["subject"]).To(gomega.Equal("Welcome"))
		})

		ginkgo.It("should return 404 for an unknown id", func() {
			recorder := doRequest(http.MethodGet, "/v1/email-templates/missing", nil)
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusNotFound))
		})
	})

	ginkgo.Context("PUT /v1/email-templates/{id}", func() {
		ginkgo.It("should patch only the provided fields", func() {
			created := createTemplate("volunteer-registration", "Welcome", "Hi")

			recorder := doRequest(http.MethodPut, "/v1/email-templates/"+created["id"].(string), map[string]any{
				"subject":   "Welcome aboard",
				"is_active": false,
			})
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusOK))

			var response map[string]any
			gomega.Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(gomega.Succeed())
			gomega.Expect(response["subject"]).To(gomega.Equal("Welcome aboard"))
			gomega.Expect(response["body"]).To(gomega.Equal("Hi"))
			gomega.Expect(response["is_active"]).To(gomega.BeFalse())
		})

		ginkgo.It("should return 404 for an unknown id", func() {
			recorder := doRequest(http.MethodPut, "/v1/email-templates/missing", map[string]any{
				"subject": "Welcome aboard",
			})
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusNotFound))
		})
	})

	ginkgo.Context("DELETE /v1/email-templates/{id}", func() {
		ginkgo.It("should soft delete the template", func() {
			created := createTemplate("volunteer-registration", "Welcome", "Hi")

			recorder := doRequest(http.MethodDelete, "/v1/email-templates/"+created["id"].(string), nil)
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusNoContent))

			recorder = doRequest(http.MethodGet, "/v1/email-templates", nil)
			var response map[string]any
			gomega.Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(gomega.Succeed())
			gomega.Expect(response["data"]).To(gomega.BeEmpty())
		})
	})
})
