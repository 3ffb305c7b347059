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

// statementInput builds a small self-consistent snapshot: 21% tax rate,
// a working-capital delta of 80 and capital expenditure recorded as a
// negative outflow.
func statementInput() dcf.StatementInput {
	return dcf.StatementInput{
		Ticker: "TEST",
		EnterpriseValue: dcf.StatementRow{
			"+ Total Debt":              200.0,
			"- Cash & Cash Equivalents": 150.0,
			"Number of Shares":          100.0,
		},
		Income: dcf.StatementHistory{
			{
				"date":                "2019-12-31",
				"EBIT":                100.0,
				"Income Tax Expense":  21.0,
				"Earnings before Tax": 100.0,
			},
			{
				"date":                "2018-12-31",
				"EBIT":                90.0,
				"Income Tax Expense":  19.0,
				"Earnings before Tax": 92.0,
			},
		},
		Balance: dcf.StatementHistory{
			{"Total assets": 1000.0, "Total non-current assets": 600.0},
			{"Total assets": 900.0, "Total non-current assets": 580.0},
		},
		CashFlow: dcf.StatementHistory{
			{"Depreciation & Amortization": 50.0, "Capital Expenditure": -70.0},
			{"Depreciation & Amortization": 45.0, "Capital Expenditure": -65.0},
		},
		DiscountRate:        0.10,
		ForecastPeriod:      5,
		EarningsGrowthRate:  0.05,
		CapExGrowthRate:     0.045,
		PerpetualGrowthRate: 0.02,
	}
}

// expectedStatementValuation recomputes the forecast with the model
// formulas spelled out, as an independent reference.
func expectedStatementValuation(in dcf.StatementInput) (flows, pv []float64, terminal, pvTerminal float64) {
	ebit := 100.0
	taxRate := 0.21
	ncc := 50.0
	cwc := (1000.0 - 600.0) - (900.0 - 580.0)
	capEx := -70.0

	for yr := 1; yr <= in.ForecastPeriod; yr++ {
		ebit *= 1 + float64(yr)*in.EarningsGrowthRate
		ncc *= 1 + float64(yr)*in.EarningsGrowthRate
		cwc *= 0.7
		capEx *= 1 + float64(yr)*in.CapExGrowthRate

		flow := ebit*(1-taxRate) + ncc + cwc + capEx
		flows = append(flows, flow)
		pv = append(pv, flow/math.Pow(1+in.DiscountRate, float64(yr)))
	}

	terminal = flows[len(flows)-1] * (1 + in.PerpetualGrowthRate) / (in.DiscountRate - in.PerpetualGrowthRate)
	pvTerminal = terminal / math.Pow(1+in.DiscountRate, float64(in.ForecastPeriod+1))
	return
}

var _ = Describe("Statement valuation", func() {
	Describe("When calculating from a complete snapshot", func() {
		var valuation *dcf.Valuation

		BeforeEach(func() {
			var err error
			valuation, err = statementInput().Calculate()
			Expect(err).NotTo(HaveOccurred())
		})

		It("labels the result with the base-year date and ticker", func() {
			Expect(valuation.Date).To(Equal("2019-12-31"))
			Expect(valuation.Ticker).To(Equal("TEST"))
		})

		It("forecasts one flow and one detail row per year", func() {
			Expect(valuation.ProjectedFlows).To(HaveLen(5))
			Expect(valuation.PresentValues).To(HaveLen(5))
			Expect(valuation.Details).To(HaveLen(5))
		})

		It("matches the model formulas year by year", func() {
			flows, pv, terminal, pvTerminal := expectedStatementValuation(statementInput())
			for ii := range flows {
				Expect(valuation.ProjectedFlows[ii]).To(BeNumerically("~", flows[ii], 1e-9))
				Expect(valuation.PresentValues[ii]).To(BeNumerically("~", pv[ii], 1e-9))
			}
			Expect(valuation.TerminalValue).To(BeNumerically("~", terminal, 1e-9))
			Expect(valuation.PVTerminalValue).To(BeNumerically("~", pvTerminal, 1e-9))
		})

		It("discounts the terminal value one year beyond the horizon", func() {
			Expect(valuation.PVTerminalValue).To(BeNumerically("~",
				valuation.TerminalValue/math.Pow(1.10, 6), 1e-9))
		})

		It("nets debt and the signed cash entry into equity value", func() {
			Expect(valuation.EquityValue).To(BeNumerically("~",
				valuation.EnterpriseValue-200.0+150.0, 1e-9))
			Expect(valuation.PerShareValue).To(Equal(valuation.EquityValue / 100.0))
		})

		It("is idempotent", func() {
			again, err := statementInput().Calculate()
			Expect(err).NotTo(HaveOccurred())
			Expect(again).To(Equal(valuation))
		})
	})

	Describe("When line items arrive as strings", func() {
		It("coerces them to numbers", func() {
			in := statementInput()
			in.Income[0]["EBIT"] = "100"
			in.Income[0]["Income Tax Expense"] = "21"
			in.Income[0]["Earnings before Tax"] = "100"

			valuation, err := in.Calculate()
			Expect(err).NotTo(HaveOccurred())
			Expect(valuation.ProjectedFlows).To(HaveLen(5))
		})

		It("rejects non-numeric values", func() {
			in := statementInput()
			in.Income[0]["Income Tax Expense"] = "twenty-one"

			_, err := in.Calculate()
			Expect(err).To(MatchError(dcf.ErrInvalidParameter))
		})
	})

	Describe("When the base-year EBIT is missing", func() {
		It("invokes the manual input provider exactly once with the date", func() {
			in := statementInput()
			delete(in.Income[0], "EBIT")

			calls := 0
			var prompt string
			in.ManualInput = func(p string) (float64, error) {
				calls++
				prompt = p
				return 100.0, nil
			}

			valuation, err := in.Calculate()
			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(Equal(1))
			Expect(prompt).To(ContainSubstring("2019-12-31"))

			flows, _, _, _ := expectedStatementValuation(statementInput())
			Expect(valuation.ProjectedFlows[0]).To(BeNumerically("~", flows[0], 1e-9))
		})

		It("treats a zero EBIT the same as a missing one", func() {
			in := statementInput()
			in.Income[0]["EBIT"] = 0.0

			calls := 0
			in.ManualInput = func(string) (float64, error) {
				calls++
				return 100.0, nil
			}

			_, err := in.Calculate()
			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(Equal(1))
		})

		It("fails when no provider is configured", func() {
			in := statementInput()
			delete(in.Income[0], "EBIT")

			_, err := in.Calculate()
			Expect(err).To(MatchError(dcf.ErrMissingField))
		})
	})

	Describe("When the base-year EBIT is present", func() {
		It("never invokes the manual input provider", func() {
			in := statementInput()
			calls := 0
			in.ManualInput = func(string) (float64, error) {
				calls++
				return 0, nil
			}

			_, err := in.Calculate()
			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(BeZero())
		})
	})

	Describe("When required line items are absent", func() {
		DescribeTable("surfacing the missing item by name",
			func(mutate func(*dcf.StatementInput), item string) {
				in := statementInput()
				mutate(&in)

				_, err := in.Calculate()
				Expect(err).To(MatchError(dcf.ErrMissingField))
				Expect(err.Error()).To(ContainSubstring(item))
			},

			Entry("income tax expense", func(in *dcf.StatementInput) {
				delete(in.Income[0], "Income Tax Expense")
			}, "Income Tax Expense"),
			Entry("depreciation and amortization", func(in *dcf.StatementInput) {
				delete(in.CashFlow[0], "Depreciation & Amortization")
			}, "Depreciation & Amortization"),
			Entry("prior-year total assets", func(in *dcf.StatementInput) {
				delete(in.Balance[1], "Total assets")
			}, "Total assets"),
			Entry("capital expenditure", func(in *dcf.StatementInput) {
				delete(in.CashFlow[0], "Capital Expenditure")
			}, "Capital Expenditure"),
			Entry("snapshot share count", func(in *dcf.StatementInput) {
				delete(in.EnterpriseValue, "Number of Shares")
			}, "Number of Shares"),
		)
	})

	Describe("When denominators degenerate", func() {
		It("rejects a zero earnings before tax", func() {
			in := statementInput()
			in.Income[0]["Earnings before Tax"] = 0.0

			_, err := in.Calculate()
			Expect(err).To(MatchError(dcf.ErrDegenerate))
		})

		It("rejects a zero share count", func() {
			in := statementInput()
			in.EnterpriseValue["Number of Shares"] = 0.0

			_, err := in.Calculate()
			Expect(err).To(MatchError(dcf.ErrDegenerate))
		})

		It("rejects a discount rate at the perpetual growth rate before extraction", func() {
			in := statementInput()
			in.DiscountRate = in.PerpetualGrowthRate
			delete(in.Income[0], "EBIT")

			calls := 0
			in.ManualInput = func(string) (float64, error) {
				calls++
				return 100.0, nil
			}

			_, err := in.Calculate()
			Expect(err).To(MatchError(dcf.ErrDegenerate))
			Expect(calls).To(BeZero())
		})
	})

	Describe("When validating structure", func() {
		DescribeTable("rejecting malformed inputs",
			func(mutate func(*dcf.StatementInput)) {
				in := statementInput()
				mutate(&in)
				Expect(in.Validate()).To(MatchError(dcf.ErrInvalidParameter))
			},

			Entry("non-positive discount rate", func(in *dcf.StatementInput) { in.DiscountRate = 0 }),
			Entry("zero forecast period", func(in *dcf.StatementInput) { in.ForecastPeriod = 0 }),
			Entry("missing enterprise value row", func(in *dcf.StatementInput) { in.EnterpriseValue = nil }),
			Entry("single income period", func(in *dcf.StatementInput) { in.Income = in.Income[:1] }),
			Entry("single balance period", func(in *dcf.StatementInput) { in.Balance = in.Balance[:1] }),
			Entry("single cash-flow period", func(in *dcf.StatementInput) { in.CashFlow = in.CashFlow[:1] }),
		)

		It("accepts the reference snapshot", func() {
			Expect(statementInput().Validate()).To(Succeed())
		})

		It("does not constrain the discount rate to be below one", func() {
			in := statementInput()
			in.DiscountRate = 1.5
			Expect(in.Validate()).To(Succeed())
		})
	})
})
