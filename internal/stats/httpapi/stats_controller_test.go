package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"foodops-server/internal/infra/async"
	"foodops-server/internal/infra/cache"
	"foodops-server/internal/infra/pubsub"
	"foodops-server/internal/infra/sql"
	statsdomain "foodops-server/internal/stats/domain"
	statshttpapi "foodops-server/internal/stats/httpapi"
	statspersistence "foodops-server/internal/stats/persistence"
	statsusecases "foodops-server/internal/stats/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Stats controllers", func() {
	var (
		router          *http.ServeMux
		broker          *async.LocalBroker
		categoryService statsusecases.CategoryService
		bananaBox       statsdomain.WeighingCategory
	)

	ginkgo.BeforeEach(func() {
		orm, err := sql.NewMemoryORM()
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		publisherFactory := pubsub.NewMemoryPublisherFactory()
		broker = async.NewLocalBroker()

		tableCache, err := cache.New(nil)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		categoryRepo, err := statspersistence.NewCategoryRepository(publisherFactory, orm)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		donationRepo, err := statspersistence.NewDonationRepository(publisherFactory, orm)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		statsService := statsusecases.NewStatsService(donationRepo, categoryRepo, tableCache)
		categoryService = statsusecases.NewCategoryService(categoryRepo, statsService)
		donationService := statsusecases.NewDonationService(donationRepo, categoryRepo, broker, statsService)

		router = http.NewServeMux()
		statshttpapi.NewStatsController(statsService).AddRoutes(router)
		statshttpapi.NewCategoryController(categoryService).AddRoutes(router)
		statshttpapi.NewDonationController(donationService).AddRoutes(router)

		bananaBox, err = statsdomain.NewWeighingCategoryBuilder().
			WithName("Banana Box").
			WithKgPerUnit(18.2).
			WithDisplayOrder(1).
			Build()
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(categoryService.CreateCategory(context.Background(), bananaBox)).To(gomega.Succeed())
	})

	ginkgo.AfterEach(func() {
		broker.Stop()
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

	recordDonation := func(donor string, weight float64, date string) map[string]any {
		recorder := doRequest(http.MethodPost, "/v1/detail-donations", map[string]any{
			"category_id": bananaBox.ID.String(),
			"donor":       donor,
			"weight":      weight,
			"date":        date,
		})
		gomega.ExpectWithOffset(1, recorder.Code).To(gomega.Equal(http.StatusCreated))
		var response map[string]any
		gomega.ExpectWithOffset(1, json.Unmarshal(recorder.Body.Bytes(), &response)).To(gomega.Succeed())
		return response
	}

	ginkgo.Context("weighing categories", func() {
		ginkgo.It("should create a category", func() {
			recorder := doRequest(http.MethodPost, "/v1/weighing-categories", map[string]any{
				"name":          "Bread Tray",
				"kg_per_unit":   7.5,
				"display_order": 2,
			})
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusCreated))

			var response map[string]any
			gomega.Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(gomega.Succeed())
			gomega.Expect(response["name"]).To(gomega.Equal("Bread Tray"))
			gomega.Expect(response["kg_per_unit"]).To(gomega.Equal(7.5))
		})

		ginkgo.It("should refuse a non-positive conversion factor", func() {
			recorder := doRequest(http.MethodPost, "/v1/weighing-categories", map[string]any{
				"name":        "Broken",
				"kg_per_unit": 0,
			})
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusBadRequest))
		})

		ginkgo.It("should list categories in display order", func() {
			doRequest(http.MethodPost, "/v1/weighing-categories", map[string]any{
				"name":          "Apple Crate",
				"kg_per_unit":   12.0,
				"display_order": 0,
			})

			recorder := doRequest(http.MethodGet, "/v1/weighing-categories", nil)
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusOK))

			var response struct {
				Data []map[string]any `json:"data"`
			}
			gomega.Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(gomega.Succeed())
			gomega.Expect(response.Data).To(gomega.HaveLen(2))
			gomega.Expect(response.Data[0]["name"]).To(gomega.Equal("Apple Crate"))
			gomega.Expect(response.Data[1]["name"]).To(gomega.Equal("Banana Box"))
		})

		ginkgo.It("should update and delete a category", func() {
			recorder := doRequest(http.MethodPut, "/v1/weighing-categories/"+bananaBox.ID.String(), map[string]any{
				"kg_per_unit": 18.5,
			})
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusOK))

			recorder = doRequest(http.MethodDelete, "/v1/weighing-categories/"+bananaBox.ID.String(), nil)
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusNoContent))

			recorder = doRequest(http.MethodGet, "/v1/weighing-categories/"+bananaBox.ID.String(), nil)
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusOK))
			var response map[string]any
			gomega.Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(gomega.Succeed())
			gomega.Expect(response["is_active"]).To(gomega.Equal(false))
		})

		ginkgo.It("should return 404 for an unknown category", func() {
			recorder := doRequest(http.MethodPut, "/v1/weighing-categories/missing", map[string]any{})
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusNotFound))
		})
	})

	ginkgo.Context("detail donations", func() {
		ginkgo.It("should record a donation in canonical kilograms", func() {
			response := recordDonation("Riverside Grocers", 2, "2026-03-14")
			gomega.Expect(response["weight_kg"]).To(gomega.BeNumerically("~", 36.4, 1e-9))
			gomega.Expect(response["date"]).To(gomega.Equal("2026-03-14"))
		})

		ginkgo.It("should reject an unknown category", func() {
			recorder := doRequest(http.MethodPost, "/v1/detail-donations", map[string]any{
				"category_id": "missing",
				"donor":       "Riverside Grocers",
				"weight":      2,
				"date":        "2026-03-14",
			})
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusBadRequest))
		})

		ginkgo.It("should reject a malformed date", func() {
			recorder := doRequest(http.MethodPost, "/v1/detail-donations", map[string]any{
				"category_id": bananaBox.ID.String(),
				"donor":       "Riverside Grocers",
				"weight":      2,
				"date":        "14/03/2026",
			})
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusBadRequest))
		})

		ginkgo.It("should list donations for one date", func() {
			recordDonation("Riverside Grocers", 1, "2026-03-14")
			recordDonation("Acorn Kitchen", 2, "2026-03-14")
			recordDonation("Riverside Grocers", 3, "2026-03-15")

			recorder := doRequest(http.MethodGet, "/v1/detail-donations?date=2026-03-14", nil)
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusOK))

			var response struct {
				Data []map[string]any `json:"data"`
			}
			gomega.Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(gomega.Succeed())
			gomega.Expect(response.Data).To(gomega.HaveLen(2))
		})

		ginkgo.It("should require the date filter", func() {
			recorder := doRequest(http.MethodGet, "/v1/detail-donations", nil)
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusBadRequest))
		})

		ginkgo.It("should update and delete a donation", func() {
			created := recordDonation("Riverside Grocers", 2, "2026-03-14")
			id := created["id"].(string)

			recorder := doRequest(http.MethodPut, "/v1/detail-donations/"+id, map[string]any{
				"donor":  "Riverside Grocers",
				"weight": 3,
			})
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusOK))
			var response map[string]any
			gomega.Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(gomega.Succeed())
			gomega.Expect(response["weight_kg"]).To(gomega.BeNumerically("~", 54.6, 1e-9))

			recorder = doRequest(http.MethodDelete, "/v1/detail-donations/"+id, nil)
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusNoContent))

			recorder = doRequest(http.MethodDelete, "/v1/detail-donations/"+id, nil)
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusInternalServerError))
		})
	})

	ginkgo.Context("incoming stats", func() {
		ginkgo.BeforeEach(func() {
			recordDonation("Riverside Grocers", 1, "2026-01-15")
			recordDonation("Acorn Kitchen", 2, "2026-01-20")
			recordDonation("Riverside Grocers", 1, "2026-03-03")
		})

		ginkgo.It("should return the twelve-month table by default", func() {
			recorder := doRequest(http.MethodGet, "/v1/incoming-stats?year=2026", nil)
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusOK))

			var response struct {
				Mode      string   `json:"mode"`
				Donors    []string `json:"donors"`
				TableData []struct {
					Label  string            `json:"label"`
					Values map[string]string `json:"values"`
					Total  string            `json:"total"`
				} `json:"table_data"`
				Totals     map[string]string `json:"totals"`
				GrandTotal string            `json:"grand_total"`
			}
			gomega.Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(gomega.Succeed())
			gomega.Expect(response.Mode).To(gomega.Equal("per_month"))
			gomega.Expect(response.TableData).To(gomega.HaveLen(12))
			gomega.Expect(response.Donors).To(gomega.Equal([]string{"Acorn Kitchen", "Riverside Grocers"}))
			gomega.Expect(response.TableData[0].Values["Riverside Grocers"]).To(gomega.Equal("18.20"))
			gomega.Expect(response.TableData[0].Total).To(gomega.Equal("54.60"))
			gomega.Expect(response.GrandTotal).To(gomega.Equal("72.80"))
		})

		ginkgo.It("should scope a single month to per-date rows", func() {
			recorder := doRequest(http.MethodGet, "/v1/incoming-stats?month=1&year=2026", nil)
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusOK))

			var response struct {
				Mode      string `json:"mode"`
				TableData []struct {
					Label string `json:"label"`
				} `json:"table_data"`
			}
			gomega.Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(gomega.Succeed())
			gomega.Expect(response.Mode).To(gomega.Equal("per_date"))
			gomega.Expect(response.TableData).To(gomega.HaveLen(2))
			gomega.Expect(response.TableData[0].Label).To(gomega.Equal("2026-01-15"))
		})

		ginkgo.It("should convert the table into the requested unit", func() {
			recorder := doRequest(http.MethodGet, "/v1/incoming-stats?year=2026&unit=Banana+Box", nil)
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusOK))

			var response struct {
				Unit       string `json:"unit"`
				GrandTotal string `json:"grand_total"`
			}
			gomega.Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(gomega.Succeed())
			gomega.Expect(response.Unit).To(gomega.Equal("Banana Box"))
			gomega.Expect(response.GrandTotal).To(gomega.Equal("4.00"))
		})

		ginkgo.It("should reject an out-of-range month", func() {
			recorder := doRequest(http.MethodGet, "/v1/incoming-stats?month=13&year=2026", nil)
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusBadRequest))
		})

		ginkgo.It("should reject a non-numeric month", func() {
			recorder := doRequest(http.MethodGet, "/v1/incoming-stats?month=march&year=2026", nil)
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})
})
