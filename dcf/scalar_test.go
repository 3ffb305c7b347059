// Copyright 2025-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dcf_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/valuation-tools/dcfval/dcf"
)

func referenceInput() dcf.ScalarInput {
	return dcf.ScalarInput{
		CurrentFCF:         100,
		GrowthRates:        []float64{0.15, 0.10, 0.08, 0.05, 0.03},
		TerminalGrowthRate: 0.02,
		WACC:               0.09,
		CashAndEquivalents: 50,
		TotalDebt:          20,
		SharesOutstanding:  100,
	}
}

var _ = Describe("Scalar valuation", func() {
	Describe("When calculating with the reference inputs", func() {
		var valuation *dcf.Valuation

		BeforeEach(func() {
			in := referenceInput()
			Expect(in.Validate()).To(Succeed())

			var err error
			valuation, err = in.Calculate()
			Expect(err).NotTo(HaveOccurred())
		})

		It("projects one flow per growth rate", func() {
			Expect(valuation.ProjectedFlows).To(HaveLen(5))
			Expect(valuation.PresentValues).To(HaveLen(5))
		})

		It("compounds each flow from its predecessor", func() {
			expected := []float64{115.0, 126.5, 136.62, 143.451, 147.75453}
			for ii := range expected {
				Expect(valuation.ProjectedFlows[ii]).To(BeNumerically("~", expected[ii], 1e-9))
			}

			rates := referenceInput().GrowthRates
			last := 100.0
			for ii, rate := range rates {
				Expect(valuation.ProjectedFlows[ii]).To(BeNumerically("~", last*(1+rate), 1e-12))
				last = valuation.ProjectedFlows[ii]
			}
		})

		It("discounts flows and terminal value per the model formulas", func() {
			in := referenceInput()

			pvSum := 0.0
			last := in.CurrentFCF
			for ii, rate := range in.GrowthRates {
				last *= 1 + rate
				pvSum += last / math.Pow(1+in.WACC, float64(ii+1))
			}
			terminal := last * (1 + in.TerminalGrowthRate) / (in.WACC - in.TerminalGrowthRate)
			pvTerminal := terminal / math.Pow(1+in.WACC, float64(len(in.GrowthRates)))

			Expect(valuation.TerminalValue).To(BeNumerically("~", terminal, 1e-9))
			Expect(valuation.PVTerminalValue).To(BeNumerically("~", pvTerminal, 1e-9))
			Expect(valuation.EnterpriseValue).To(BeNumerically("~", pvSum+pvTerminal, 1e-9))
			Expect(valuation.EquityValue).To(BeNumerically("~", pvSum+pvTerminal+in.CashAndEquivalents-in.TotalDebt, 1e-9))
		})

		It("derives per-share value exactly as equity over shares", func() {
			Expect(valuation.PerShareValue).To(Equal(valuation.EquityValue / 100))
		})

		It("is idempotent", func() {
			again, err := referenceInput().Calculate()
			Expect(err).NotTo(HaveOccurred())
			Expect(again).To(Equal(valuation))
		})
	})

	Describe("When the discount rate does not exceed the terminal growth rate", func() {
		It("reports degenerate arithmetic instead of dividing by zero", func() {
			in := referenceInput()
			in.WACC = 0.02
			in.TerminalGrowthRate = 0.02

			_, err := in.Calculate()
			Expect(err).To(MatchError(dcf.ErrDegenerate))
		})

		It("also rejects a terminal growth rate above the discount rate", func() {
			in := referenceInput()
			in.TerminalGrowthRate = in.WACC + 0.01

			_, err := in.Calculate()
			Expect(err).To(MatchError(dcf.ErrDegenerate))
		})
	})

	Describe("When shares outstanding is zero", func() {
		// Validate forbids this state; injecting it directly must yield a
		// zero per-share value, not an error
		It("returns 0 per share without failing", func() {
			in := referenceInput()
			in.SharesOutstanding = 0

			valuation, err := in.Calculate()
			Expect(err).NotTo(HaveOccurred())
			Expect(valuation.PerShareValue).To(BeZero())
			Expect(valuation.EquityValue).To(BeNumerically(">", 0))
		})
	})

	Describe("When growth rates are empty", func() {
		It("rejects the calculation", func() {
			in := referenceInput()
			in.GrowthRates = nil

			_, err := in.Calculate()
			Expect(err).To(MatchError(dcf.ErrInvalidParameter))
		})
	})

	Describe("When the current FCF is zero", func() {
		It("warns but still produces a valuation", func() {
			in := referenceInput()
			in.CurrentFCF = 0

			valuation, err := in.Calculate()
			Expect(err).NotTo(HaveOccurred())
			Expect(valuation.EnterpriseValue).To(BeZero())
			Expect(valuation.EquityValue).To(BeNumerically("~", 30, 1e-12))
		})
	})

	Describe("When validating inputs", func() {
		DescribeTable("rejecting out-of-range parameters",
			func(mutate func(*dcf.ScalarInput)) {
				in := referenceInput()
				mutate(&in)
				Expect(in.Validate()).To(MatchError(dcf.ErrInvalidParameter))
			},

			Entry("negative FCF", func(in *dcf.ScalarInput) { in.CurrentFCF = -1 }),
			Entry("NaN FCF", func(in *dcf.ScalarInput) { in.CurrentFCF = math.NaN() }),
			Entry("NaN growth rate", func(in *dcf.ScalarInput) { in.GrowthRates[2] = math.NaN() }),
			Entry("infinite growth rate", func(in *dcf.ScalarInput) { in.GrowthRates[0] = math.Inf(1) }),
			Entry("NaN terminal growth rate", func(in *dcf.ScalarInput) { in.TerminalGrowthRate = math.NaN() }),
			Entry("zero WACC", func(in *dcf.ScalarInput) { in.WACC = 0 }),
			Entry("WACC of one", func(in *dcf.ScalarInput) { in.WACC = 1 }),
			Entry("WACC above one", func(in *dcf.ScalarInput) { in.WACC = 1.2 }),
			Entry("negative cash", func(in *dcf.ScalarInput) { in.CashAndEquivalents = -5 }),
			Entry("negative debt", func(in *dcf.ScalarInput) { in.TotalDebt = -5 }),
			Entry("zero shares", func(in *dcf.ScalarInput) { in.SharesOutstanding = 0 }),
			Entry("negative shares", func(in *dcf.ScalarInput) { in.SharesOutstanding = -100 }),
		)

		It("accepts the reference inputs", func() {
			Expect(referenceInput().Validate()).To(Succeed())
		})

		It("does not enforce the terminal-growth relationship", func() {
			// that check belongs to calculation time
			in := referenceInput()
			in.WACC = 0.02
			in.TerminalGrowthRate = 0.02
			Expect(in.Validate()).To(Succeed())
		})
	})

	Describe("When using defaults", func() {
		It("matches the conventional model defaults", func() {
			in := dcf.DefaultScalarInput()
			Expect(in.TerminalGrowthRate).To(Equal(0.02))
			Expect(in.WACC).To(Equal(0.10))
			Expect(in.SharesOutstanding).To(Equal(1.0))
		})
	})
})
