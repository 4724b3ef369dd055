package domain_test

import (
	"math"
	"time"

	"foodops-server/internal/infra/utils"
	"foodops-server/internal/stats/domain"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func statRow(date string, key string, kg float64) domain.StatRow {
	parsed, err := utils.ParseDate(date)
	gomega.ExpectWithOffset(1, err).ToNot(gomega.HaveOccurred())
	return domain.StatRow{Date: parsed, EntityKey: key, ValueKg: kg}
}

var _ = ginkgo.Describe("Aggregation", func() {
	ginkgo.Context("ModeForMonth", func() {
		ginkgo.It("selects the per-month table for the all-months filter", func() {
			gomega.Expect(domain.ModeForMonth(domain.AllMonths)).To(gomega.Equal(domain.TableModePerMonth))
		})

		ginkgo.It("selects the per-date table for a specific month", func() {
			gomega.Expect(domain.ModeForMonth(7)).To(gomega.Equal(domain.TableModePerDate))
		})
	})

	ginkgo.Context("AggregateByMonth", func() {
		ginkgo.When("the input is empty", func() {
			ginkgo.It("still yields twelve zero-filled rows", func() {
				rows := domain.AggregateByMonth(nil, []string{"produce", "bakery"})
				gomega.Expect(rows).To(gomega.HaveLen(12))
				gomega.Expect(rows[0].Label).To(gomega.Equal("January"))
				gomega.Expect(rows[11].Label).To(gomega.Equal("December"))
				for _, row := range rows {
					gomega.Expect(row.TotalKg).To(gomega.BeZero())
					gomega.Expect(row.Values).To(gomega.Equal(domain.RowValues{"produce": 0, "bakery": 0}))
				}
			})
		})

		ginkgo.When("rows span several months", func() {
			ginkgo.It("buckets values into their calendar month", func() {
				rows := domain.AggregateByMonth([]domain.StatRow{
					statRow("2026-03-04", "produce", 10),
					statRow("2026-03-18", "produce", 5),
					statRow("2026-03-18", "bakery", 2),
					statRow("2026-11-01", "bakery", 7),
				}, []string{"produce", "bakery"})

				march := rows[int(time.March)-1]
				gomega.Expect(march.Values["produce"]).To(gomega.Equal(15.0))
				gomega.Expect(march.Values["bakery"]).To(gomega.Equal(2.0))
				gomega.Expect(march.TotalKg).To(gomega.Equal(17.0))

				november := rows[int(time.November)-1]
				gomega.Expect(november.TotalKg).To(gomega.Equal(7.0))
			})
		})

		ginkgo.When("a row carries a NaN value", func() {
			ginkgo.It("counts it as zero", func() {
				rows := domain.AggregateByMonth([]domain.StatRow{
					statRow("2026-05-10", "produce", math.NaN()),
					statRow("2026-05-10", "produce", 4),
				}, []string{"produce"})
				gomega.Expect(rows[int(time.May)-1].TotalKg).To(gomega.Equal(4.0))
			})
		})
	})

	ginkgo.Context("GroupByDate", func() {
		ginkgo.It("merges rows per date and orders by date ascending", func() {
			rows := domain.GroupByDate([]domain.StatRow{
				statRow("2026-06-20", "produce", 3),
				statRow("2026-06-01", "bakery", 1),
				statRow("2026-06-20", "bakery", 2),
			}, []string{"produce", "bakery"})

			gomega.Expect(rows).To(gomega.HaveLen(2))
			gomega.Expect(rows[0].Date.String()).To(gomega.Equal("2026-06-01"))
			gomega.Expect(rows[0].Values).To(gomega.Equal(domain.RowValues{"produce": 0, "bakery": 1}))
			gomega.Expect(rows[1].Date.String()).To(gomega.Equal("2026-06-20"))
			gomega.Expect(rows[1].TotalKg).To(gomega.Equal(5.0))
		})

		ginkgo.It("keeps dates whose values are all zero", func() {
			rows := domain.GroupByDate([]domain.StatRow{
				statRow("2026-06-02", "produce", 0),
			}, []string{"produce"})
			gomega.Expect(rows).To(gomega.HaveLen(1))
		})
	})

	ginkgo.Context("BuildColumnTotals", func() {
		ginkgo.It("sums canonical kilograms before converting", func() {
			// Converting each third first and summing would give "0.32".
			unit := domain.Unit{Label: "Crates", KgPerUnit: 3}
			rows := []domain.RowValues{
				{"produce": 1.0 / 3},
				{"produce": 1.0 / 3},
				{"produce": 1.0 / 3},
			}
			totals := domain.BuildColumnTotals(rows, []string{"produce"}, unit)
			gomega.Expect(totals["produce"]).To(gomega.Equal("0.33"))
		})

		ginkgo.It("skips NaN values and zero-fills absent keys", func() {
			rows := []domain.RowValues{
				{"produce": math.NaN(), "bakery": 2},
				{"produce": 8},
			}
			totals := domain.BuildColumnTotals(rows, []string{"produce", "bakery", "dairy"}, domain.UnitKilograms)
			gomega.Expect(totals).To(gomega.Equal(map[string]string{
				"produce": "8.00",
				"bakery":  "2.00",
				"dairy":   "0.00",
			}))
		})
	})

	ginkgo.Context("GrandTotal", func() {
		ginkgo.It("sums every column of every row and converts once", func() {
			rows := []domain.RowValues{
				{"produce": 1, "bakery": 2},
				{"produce": 3, "bakery": math.NaN()},
			}
			gomega.Expect(domain.GrandTotal(rows, []string{"produce", "bakery"}, domain.UnitKilograms)).To(gomega.Equal("6.00"))
		})
	})

	ginkgo.Context("FilterNonEmptyRows", func() {
		ginkgo.It("drops rows whose tracked columns are all zero", func() {
			rows := []domain.DateRow{
				{Values: domain.RowValues{"produce": 0, "bakery": 0}},
				{Values: domain.RowValues{"produce": 4, "bakery": 0}},
				{Values: domain.RowValues{"produce": math.NaN()}},
			}
			kept := domain.FilterNonEmptyRows(rows, func(r domain.DateRow) domain.RowValues { return r.Values }, []string{"produce", "bakery"})
			gomega.Expect(kept).To(gomega.HaveLen(1))
			gomega.Expect(kept[0].Values["produce"]).To(gomega.Equal(4.0))
		})

		ginkgo.It("ignores columns outside the tracked set", func() {
			rows := []domain.DateRow{
				{Values: domain.RowValues{"other": 9}},
			}
			kept := domain.FilterNonEmptyRows(rows, func(r domain.DateRow) domain.RowValues { return r.Values }, []string{"produce"})
			gomega.Expect(kept).To(gomega.BeEmpty())
		})
	})
})
