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

package dcf

// YearDetail captures the intermediate quantities of a single forecast
// year in the statement-driven path. Values are the running (already
// grown) amounts used to build that year's unlevered free cash flow.
type YearDetail struct {
	Year           int     `json:"year"`
	EBIT           float64 `json:"ebit"`
	NonCashCharges float64 `json:"nonCashCharges"`
	WorkingCapital float64 `json:"workingCapital"`
	CapEx          float64 `json:"capEx"`
	Flow           float64 `json:"flow"`
	PresentValue   float64 `json:"presentValue"`
}

// Valuation is the outcome of a single DCF run. It is a value type:
// derived once, never mutated afterwards.
type Valuation struct {
	Ticker string `json:"ticker,omitempty"`

	// Date labels the base-year statement the forecast starts from.
	// Empty for the scalar path.
	Date string `json:"date,omitempty"`

	ProjectedFlows []float64 `json:"projectedFlows"`
	PresentValues  []float64 `json:"presentValues"`

	TerminalValue   float64 `json:"terminalValue"`
	PVTerminalValue float64 `json:"pvTerminalValue"`

	EnterpriseValue float64 `json:"enterpriseValue"`
	EquityValue     float64 `json:"equityValue"`
	PerShareValue   float64 `json:"perShareValue"`

	// Details is populated by the statement-driven path only
	Details []YearDetail `json:"details,omitempty"`
}
