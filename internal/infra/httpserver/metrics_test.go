package httpserver

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/metric"
)

var _ = ginkgo.Describe("Metrics", func() {
	ginkgo.Context("MetricsMiddleware", func() {
		ginkgo.When("using metrics middleware", func() {
			ginkgo.It("should collect metrics correctly", func() {
				reader := metric.NewManualReader()
				provider := metric.NewMeterProvider(metric.WithReader(reader))
				otel.SetMeterProvider(provider)

				ResetMetricsForTesting()

				testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					time.Sleep(10 * time.Millisecond)
					w.WriteHeader(http.StatusOK)
					w.Write([]byte("test response"))
				})

				middleware := MetricsMiddleware()
				handler := middleware(testHandler)

				req := httptest.NewRequest("GET", "/v1/incoming-stats", nil)
				w := httptest.NewRecorder()

				handler.ServeHTTP(w, req)

				gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
				gomega.Expect(w.Body.String()).To(gomega.Equal("test response"))
				gomega.Expect(IsMetricsInitialized()).To(gomega.BeTrue())
			})
		})
	})

	ginkgo.Context("NormalizeEndpoint", func() {
		ginkgo.When("normalizing plain paths", func() {
			ginkgo.It("should handle root path", func() {
				gomega.Expect(normalizeEndpoint("/")).To(gomega.Equal("root"))
			})

			ginkgo.It("should handle empty path", func() {
				gomega.Expect(normalizeEndpoint("")).To(gomega.Equal("root"))
			})

			ginkgo.It("should keep simple endpoints unchanged", func() {
				gomega.Expect(normalizeEndpoint("/healthz")).To(gomega.Equal("/healthz"))
				gomega.Expect(normalizeEndpoint("/v1/weighing-categories")).To(gomega.Equal("/v1/weighing-categories"))
			})
		})

		ginkgo.When("normalizing paths with UUIDs", func() {
			ginkgo.It("should replace a category UUID with _id", func() {
				gomega.Expect(normalizeEndpoint("/v1/weighing-categories/123e4567-e89b-12d3-a456-426614174000")).
					To(gomega.Equal("/v1/weighing-categories/_id"))
			})

			ginkgo.It("should replace a donation UUID with _id", func() {
				gomega.Expect(normalizeEndpoint("/v1/detail-donations/123e4567-e89b-12d3-a456-426614174000")).
					To(gomega.Equal("/v1/detail-donations/_id"))
			})

			ginkgo.It("should replace multiple UUIDs in one path", func() {
				gomega.Expect(normalizeEndpoint("/v1/organizations/123e4567-e89b-12d3-a456-426614174000/shifts/987fcdeb-51a2-43d7-8f9e-123456789abc")).
					To(gomega.Equal("/v1/organizations/_id/shifts/_id"))
			})
		})
	})

	ginkgo.Context("ResponseWriter", func() {
		var (
			recorder      *httptest.ResponseRecorder
			wrappedWriter *responseWriter
		)

		ginkgo.When("using response writer wrapper", func() {
			ginkgo.BeforeEach(func() {
				recorder = httptest.NewRecorder()
				wrappedWriter = &responseWriter{ResponseWriter: recorder, statusCode: http.StatusOK}
			})

			ginkgo.It("should handle WriteHeader correctly", func() {
				wrappedWriter.WriteHeader(http.StatusNotFound)
				gomega.Expect(wrappedWriter.statusCode).To(gomega.Equal(http.StatusNotFound))
				gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusNotFound))
			})

			ginkgo.It("should handle Write correctly", func() {
				_, err := wrappedWriter.Write([]byte("test"))
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(recorder.Body.String()).To(gomega.Equal("test"))
			})

			ginkgo.It("should implement http.Hijacker", func() {
				_, isHijacker := any(wrappedWriter).(http.Hijacker)
				gomega.Expect(isHijacker).To(gomega.BeTrue())

				_, _, err := wrappedWriter.Hijack()
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("underlying ResponseWriter does not support hijacking"))
			})
		})
	})
})
