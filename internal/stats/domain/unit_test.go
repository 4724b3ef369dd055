package domain_test

import (
	"math"

	"foodops-server/internal/stats/domain"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Unit", func() {
	ginkgo.Context("ConvertWeight", func() {
		ginkgo.When("converting canonical kilograms into display units", func() {
			ginkgo.It("keeps kilograms unchanged", func() {
				gomega.Expect(domain.ConvertWeight(12.5, domain.UnitKilograms)).To(gomega.Equal("12.50"))
			})

			ginkgo.It("divides by the pound factor", func() {
				gomega.Expect(domain.ConvertWeight(1, domain.UnitPounds)).To(gomega.Equal("2.20"))
			})

			ginkgo.It("formats zero as 0.00", func() {
				gomega.Expect(domain.ConvertWeight(0, domain.UnitPounds)).To(gomega.Equal("0.00"))
			})

			ginkgo.It("rounds half away from zero", func() {
				gomega.Expect(domain.ConvertWeight(0.125, domain.UnitKilograms)).To(gomega.Equal("0.13"))
				gomega.Expect(domain.ConvertWeight(-0.125, domain.UnitKilograms)).To(gomega.Equal("-0.13"))
			})
		})

		ginkgo.When("the value is not a number", func() {
			ginkgo.It("returns the sentinel", func() {
				gomega.Expect(domain.ConvertWeight(math.NaN(), domain.UnitKilograms)).To(gomega.Equal("-"))
			})
		})

		ginkgo.When("the unit has no conversion factor", func() {
			ginkgo.It("falls back to kilograms", func() {
				unnamed := domain.Unit{Label: "Boxes"}
				gomega.Expect(domain.ConvertWeight(3.4, unnamed)).To(gomega.Equal("3.40"))
			})
		})
	})

	ginkgo.Context("ToCanonicalKg", func() {
		ginkgo.It("multiplies display units back into kilograms", func() {
			kg := domain.ToCanonicalKg(10, domain.UnitPounds)
			gomega.Expect(kg).To(gomega.BeNumerically("~", 4.5359237, 1e-9))
		})

		ginkgo.It("round-trips through ConvertWeight", func() {
			kg := domain.ToCanonicalKg(2.20, domain.UnitPounds)
			gomega.Expect(domain.ConvertWeight(kg, domain.UnitPounds)).To(gomega.Equal("2.20"))
		})

		ginkgo.It("treats a missing factor as kilograms", func() {
			gomega.Expect(domain.ToCanonicalKg(5, domain.Unit{})).To(gomega.Equal(5.0))
		})
	})
})
