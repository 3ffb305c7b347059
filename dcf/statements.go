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

import (
	"fmt"

	"github.com/spf13/cast"
)

// Line-item labels as they appear in provider statement records. The
// enterprise-value snapshot stores cash with a leading minus because the
// provider records it as a negative "use of value" entry.
const (
	ItemDate             = "date"
	ItemEBIT             = "EBIT"
	ItemIncomeTax        = "Income Tax Expense"
	ItemPretaxEarnings   = "Earnings before Tax"
	ItemDepAmort         = "Depreciation & Amortization"
	ItemTotalAssets      = "Total assets"
	ItemNonCurrentAssets = "Total non-current assets"
	ItemCapEx            = "Capital Expenditure"
	ItemTotalDebt        = "+ Total Debt"
	ItemCash             = "- Cash & Cash Equivalents"
	ItemShareCount       = "Number of Shares"
)

// StatementRow is one fiscal period of a financial statement keyed by
// line-item label. Values arrive as whatever the JSON decoder produced
// (float64, string, nil).
type StatementRow map[string]any

// StatementHistory is a sequence of periods ordered most-recent-first;
// index 0 is the base year and index 1 the prior year.
type StatementHistory []StatementRow

// Float returns the named line item coerced to float64. A missing or
// nil item wraps ErrMissingField; a present but non-numeric item wraps
// ErrInvalidParameter.
func (r StatementRow) Float(item string) (float64, error) {
	raw, ok := r[item]
	if !ok || raw == nil {
		return 0, fmt.Errorf("%w: %q", ErrMissingField, item)
	}
	val, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not numeric (%v)", ErrInvalidParameter, item, raw)
	}
	return val, nil
}

// Date returns the period label of the row, or "" when absent.
func (r StatementRow) Date() string {
	return cast.ToString(r[ItemDate])
}

// Snapshot bundles the four statement records a statement-driven
// valuation consumes. It matches the JSON layout produced by statement
// exports: one enterprise-value row plus most-recent-first histories.
type Snapshot struct {
	Ticker            string           `json:"ticker"`
	EnterpriseValue   StatementRow     `json:"enterpriseValue"`
	IncomeStatement   StatementHistory `json:"incomeStatement"`
	BalanceStatement  StatementHistory `json:"balanceStatement"`
	CashflowStatement StatementHistory `json:"cashflowStatement"`
}
