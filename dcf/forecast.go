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
	"math"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
	"gonum.org/v1/gonum/floats"
)

// workingCapitalDecay shrinks the projected change in working capital
// each forecast year.
// TODO: evaluate this rate; 0.1 annually may fit observed data better
const workingCapitalDecay = 0.7

// ManualInputFunc supplies a numeric value that could not be read from
// a statement. The prompt names the missing item and its period.
// Interactive callers read from the console; automated callers inject a
// canned value.
type ManualInputFunc func(prompt string) (float64, error)

// StatementInput is the immutable parameter set for the
// statement-driven valuation path. The base-year free-cash-flow inputs
// (EBIT, tax rate, non-cash charges, change in working capital, capital
// expenditure) are derived from the statements rather than supplied by
// the caller.
type StatementInput struct {
	Ticker string

	// EnterpriseValue is the snapshot row holding total debt, cash and
	// share count
	EnterpriseValue StatementRow

	// Histories are ordered most-recent-first and need at least two
	// periods each (the working-capital delta looks one period back)
	Income   StatementHistory
	Balance  StatementHistory
	CashFlow StatementHistory

	DiscountRate        float64
	ForecastPeriod      int
	EarningsGrowthRate  float64
	CapExGrowthRate     float64
	PerpetualGrowthRate float64

	// ManualInput resolves a missing or zero base-year EBIT. Required
	// only when the statement omits it.
	ManualInput ManualInputFunc
}

// NewStatementInput builds a StatementInput from a decoded Snapshot and
// the five forecast parameters.
func NewStatementInput(snap *Snapshot, discountRate float64, forecastPeriod int, earningsGrowth, capExGrowth, perpetualGrowth float64) StatementInput {
	return StatementInput{
		Ticker:              snap.Ticker,
		EnterpriseValue:     snap.EnterpriseValue,
		Income:              snap.IncomeStatement,
		Balance:             snap.BalanceStatement,
		CashFlow:            snap.CashflowStatement,
		DiscountRate:        discountRate,
		ForecastPeriod:      forecastPeriod,
		EarningsGrowthRate:  earningsGrowth,
		CapExGrowthRate:     capExGrowth,
		PerpetualGrowthRate: perpetualGrowth,
	}
}

// Validate checks structural requirements: a positive discount rate and
// forecast period, an enterprise-value row, and at least two periods of
// each statement history.
func (in StatementInput) Validate() error {
	if math.IsNaN(in.DiscountRate) || in.DiscountRate <= 0 {
		return fmt.Errorf("%w: discount rate must be a positive number", ErrInvalidParameter)
	}
	if in.ForecastPeriod < 1 {
		return fmt.Errorf("%w: forecast period must be at least one year", ErrInvalidParameter)
	}
	if in.EnterpriseValue == nil {
		return fmt.Errorf("%w: enterprise value statement is required", ErrInvalidParameter)
	}
	if len(in.Income) < 2 || len(in.Balance) < 2 || len(in.CashFlow) < 2 {
		return fmt.Errorf("%w: at least two periods of income, balance and cash-flow statements are required", ErrInvalidParameter)
	}
	return nil
}

// baseInputs holds the base-year quantities derived from the statements.
type baseInputs struct {
	ebit           float64
	taxRate        float64
	nonCashCharges float64
	cwc            float64
	capEx          float64
}

// extractBaseInputs derives the base-year free-cash-flow inputs from
// the statement histories. EBIT falls back to the ManualInput provider
// when missing or zero; every other absent item surfaces as
// ErrMissingField.
func (in StatementInput) extractBaseInputs() (baseInputs, error) {
	var base baseInputs

	// EBIT is the only item with a fallback
	var ebit float64
	if raw, ok := in.Income[0][ItemEBIT]; ok && raw != nil {
		val, err := cast.ToFloat64E(raw)
		if err != nil {
			return base, fmt.Errorf("%w: %q is not numeric (%v)", ErrInvalidParameter, ItemEBIT, raw)
		}
		ebit = val
	}
	if ebit == 0 {
		if in.ManualInput == nil {
			return base, fmt.Errorf("%w: %q on %s and no manual input provider is configured", ErrMissingField, ItemEBIT, in.Income[0].Date())
		}
		val, err := in.ManualInput(fmt.Sprintf("EBIT missing. Enter EBIT on %s", in.Income[0].Date()))
		if err != nil {
			return base, err
		}
		ebit = val
	}
	base.ebit = ebit

	incomeTax, err := in.Income[0].Float(ItemIncomeTax)
	if err != nil {
		return base, err
	}
	pretax, err := in.Income[0].Float(ItemPretaxEarnings)
	if err != nil {
		return base, err
	}
	if pretax == 0 {
		return base, fmt.Errorf("%w: earnings before tax is zero, cannot derive the effective tax rate", ErrDegenerate)
	}
	base.taxRate = incomeTax / pretax

	base.nonCashCharges, err = in.CashFlow[0].Float(ItemDepAmort)
	if err != nil {
		return base, err
	}

	// change in net current assets between the base and prior year;
	// current liabilities are deliberately ignored
	curAssets, err := in.Balance[0].Float(ItemTotalAssets)
	if err != nil {
		return base, err
	}
	curNonCurrent, err := in.Balance[0].Float(ItemNonCurrentAssets)
	if err != nil {
		return base, err
	}
	priorAssets, err := in.Balance[1].Float(ItemTotalAssets)
	if err != nil {
		return base, err
	}
	priorNonCurrent, err := in.Balance[1].Float(ItemNonCurrentAssets)
	if err != nil {
		return base, err
	}
	base.cwc = (curAssets - curNonCurrent) - (priorAssets - priorNonCurrent)

	// capital expenditure is recorded as a negative outflow and enters
	// the flow as a signed quantity
	base.capEx, err = in.CashFlow[0].Float(ItemCapEx)
	if err != nil {
		return base, err
	}

	return base, nil
}

// unleveredFCF combines the running base quantities into a single
// year's unlevered free cash flow. cwc and capEx enter as signed
// quantities.
func unleveredFCF(ebit, taxRate, nonCashCharges, cwc, capEx float64) float64 {
	return ebit*(1-taxRate) + nonCashCharges + cwc + capEx
}

// Calculate derives the base-year inputs, forecasts unlevered free cash
// flows over the horizon and rolls up to enterprise, equity and
// per-share value.
//
// Two conventions differ from the scalar path and are kept as-is:
// growth factors scale linearly with the year index (rate x year, not a
// constant compound rate) and are applied to the running value each
// year, and the terminal value discounts one year beyond the forecast
// horizon.
func (in StatementInput) Calculate() (*Valuation, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.DiscountRate <= in.PerpetualGrowthRate {
		return nil, fmt.Errorf("%w: discount rate (%g) must be greater than the perpetual growth rate (%g)", ErrDegenerate, in.DiscountRate, in.PerpetualGrowthRate)
	}

	base, err := in.extractBaseInputs()
	if err != nil {
		return nil, err
	}

	date := in.Income[0].Date()
	log.Info().
		Str("Ticker", in.Ticker).
		Int("Years", in.ForecastPeriod).
		Str("StartDate", date).
		Msg("forecasting unlevered free cash flows")

	ebit := base.ebit
	nonCashCharges := base.nonCashCharges
	cwc := base.cwc
	capEx := base.capEx

	flows := make([]float64, 0, in.ForecastPeriod)
	pv := make([]float64, 0, in.ForecastPeriod)
	details := make([]YearDetail, 0, in.ForecastPeriod)

	for yr := 1; yr <= in.ForecastPeriod; yr++ {
		// non-cash charges grow with earnings
		growth := float64(yr) * in.EarningsGrowthRate
		ebit *= 1 + growth
		nonCashCharges *= 1 + growth
		cwc *= workingCapitalDecay
		capEx *= 1 + float64(yr)*in.CapExGrowthRate

		flow := unleveredFCF(ebit, base.taxRate, nonCashCharges, cwc, capEx)
		discounted := flow / math.Pow(1+in.DiscountRate, float64(yr))

		flows = append(flows, flow)
		pv = append(pv, discounted)
		details = append(details, YearDetail{
			Year:           yr,
			EBIT:           ebit,
			NonCashCharges: nonCashCharges,
			WorkingCapital: cwc,
			CapEx:          capEx,
			Flow:           flow,
			PresentValue:   discounted,
		})
	}

	terminalValue := flows[len(flows)-1] * (1 + in.PerpetualGrowthRate) / (in.DiscountRate - in.PerpetualGrowthRate)
	// this variant discounts the terminal value one period beyond the
	// forecast horizon
	pvTerminalValue := terminalValue / math.Pow(1+in.DiscountRate, float64(in.ForecastPeriod+1))

	enterpriseValue := floats.Sum(pv) + pvTerminalValue

	totalDebt, err := in.EnterpriseValue.Float(ItemTotalDebt)
	if err != nil {
		return nil, err
	}
	cash, err := in.EnterpriseValue.Float(ItemCash)
	if err != nil {
		return nil, err
	}
	shares, err := in.EnterpriseValue.Float(ItemShareCount)
	if err != nil {
		return nil, err
	}

	// the cash line carries a negative sign in the snapshot, so it is
	// added rather than subtracted
	equityValue := enterpriseValue - totalDebt + cash

	if shares == 0 {
		return nil, fmt.Errorf("%w: share count is zero, cannot derive per-share value", ErrDegenerate)
	}
	perShare := equityValue / shares

	return &Valuation{
		Ticker:          in.Ticker,
		Date:            date,
		ProjectedFlows:  flows,
		PresentValues:   pv,
		TerminalValue:   terminalValue,
		PVTerminalValue: pvTerminalValue,
		EnterpriseValue: enterpriseValue,
		EquityValue:     equityValue,
		PerShareValue:   perShare,
		Details:         details,
	}, nil
}
