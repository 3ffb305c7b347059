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

// Package reporting renders human-readable summaries of valuation
// results. It is a presentation layer over dcf.Valuation; no rounding
// or formatting happens inside the calculation itself.
package reporting

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/valuation-tools/dcfval/dcf"
)

// Money formats a monetary magnitude in scientific notation, which
// keeps per-share values and trillion-dollar enterprise values legible
// in the same table.
func Money(v float64) string {
	return fmt.Sprintf("$%.2E", v)
}

// WriteForecastTable renders the per-year breakdown of a
// statement-driven valuation: discounted flow plus the running EBIT,
// D&A, working-capital and capital-expenditure amounts. Rows are
// labeled with calendar years when the valuation date parses, forecast
// year indices otherwise. No-op when the valuation carries no detail
// rows.
func WriteForecastTable(w io.Writer, v *dcf.Valuation) {
	if len(v.Details) == 0 {
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Year", "DFCF", "EBIT", "D&A", "CWC", "CapEx"})

	baseYear := yearOf(v.Date)
	for _, d := range v.Details {
		label := strconv.Itoa(d.Year)
		if baseYear > 0 {
			label = strconv.Itoa(baseYear + d.Year)
		}
		table.Append([]string{
			label,
			Money(d.PresentValue),
			Money(d.EBIT),
			Money(d.NonCashCharges),
			Money(d.WorkingCapital),
			Money(d.CapEx),
		})
	}
	table.Render()
}

// WriteFlowTable renders the projected flows and present values of a
// scalar-path valuation, one row per forecast year.
func WriteFlowTable(w io.Writer, v *dcf.Valuation) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Year", "Projected FCF", "Present Value"})
	for ii := range v.ProjectedFlows {
		table.Append([]string{
			strconv.Itoa(ii + 1),
			Money(v.ProjectedFlows[ii]),
			Money(v.PresentValues[ii]),
		})
	}
	table.Render()
}

// WriteSummary prints the enterprise, equity and per-share values.
func WriteSummary(w io.Writer, v *dcf.Valuation) {
	label := v.Ticker
	if label == "" {
		label = "valuation"
	}
	fmt.Fprintf(w, "\nEnterprise Value for %s: %s.\n", label, Money(v.EnterpriseValue))
	fmt.Fprintf(w, "Equity Value for %s: %s.\n", label, Money(v.EquityValue))
	fmt.Fprintf(w, "Per share value for %s: %s.\n\n", label, Money(v.PerShareValue))
}

// yearOf parses the leading calendar year from a YYYY-MM-DD label.
func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	yr, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return yr
}
