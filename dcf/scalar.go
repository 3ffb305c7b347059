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
	"gonum.org/v1/gonum/floats"
)

// Defaults used by DefaultScalarInput when the caller leaves a field
// unset.
const (
	DefaultTerminalGrowthRate = 0.02
	DefaultWACC               = 0.10
	DefaultSharesOutstanding  = 1.0
)

// ScalarInput is the immutable parameter set for the scalar valuation
// path: the caller supplies pre-derived free cash flow and discounting
// inputs, no statement parsing is involved. Construct it (typically via
// DefaultScalarInput), call Validate, then Calculate.
type ScalarInput struct {
	// CurrentFCF is the most recent free cash flow, the base of the
	// projection
	CurrentFCF float64 `json:"currentFcf"`

	// GrowthRates holds one growth rate per forecast year; its length
	// determines the forecast horizon
	GrowthRates []float64 `json:"growthRates"`

	// TerminalGrowthRate is the perpetual growth rate applied beyond the
	// forecast horizon; must be less than WACC
	TerminalGrowthRate float64 `json:"terminalGrowthRate"`

	// WACC is the discount rate, a fraction strictly between 0 and 1
	WACC float64 `json:"wacc"`

	CashAndEquivalents float64 `json:"cashAndEquivalents"`
	TotalDebt          float64 `json:"totalDebt"`
	SharesOutstanding  float64 `json:"sharesOutstanding"`
}

// DefaultScalarInput returns a ScalarInput with the conventional
// defaults: 2% terminal growth, 10% WACC, a single share.
func DefaultScalarInput() ScalarInput {
	return ScalarInput{
		TerminalGrowthRate: DefaultTerminalGrowthRate,
		WACC:               DefaultWACC,
		SharesOutstanding:  DefaultSharesOutstanding,
	}
}

// Validate checks every field for type and range errors. All failures
// wrap ErrInvalidParameter. The WACC vs terminal-growth relationship is
// deliberately not checked here; Calculate enforces it.
func (in ScalarInput) Validate() error {
	if math.IsNaN(in.CurrentFCF) || math.IsInf(in.CurrentFCF, 0) || in.CurrentFCF < 0 {
		return fmt.Errorf("%w: current FCF must be a non-negative number", ErrInvalidParameter)
	}
	for ii, rate := range in.GrowthRates {
		if math.IsNaN(rate) || math.IsInf(rate, 0) {
			return fmt.Errorf("%w: growth rate at index %d is not a number", ErrInvalidParameter, ii)
		}
	}
	if math.IsNaN(in.TerminalGrowthRate) || math.IsInf(in.TerminalGrowthRate, 0) {
		return fmt.Errorf("%w: terminal growth rate must be a number", ErrInvalidParameter)
	}
	if math.IsNaN(in.WACC) || in.WACC <= 0 || in.WACC >= 1 {
		return fmt.Errorf("%w: WACC must be between 0 and 1 (exclusive)", ErrInvalidParameter)
	}
	if math.IsNaN(in.CashAndEquivalents) || math.IsInf(in.CashAndEquivalents, 0) || in.CashAndEquivalents < 0 {
		return fmt.Errorf("%w: cash and equivalents must be a non-negative number", ErrInvalidParameter)
	}
	if math.IsNaN(in.TotalDebt) || math.IsInf(in.TotalDebt, 0) || in.TotalDebt < 0 {
		return fmt.Errorf("%w: total debt must be a non-negative number", ErrInvalidParameter)
	}
	if math.IsNaN(in.SharesOutstanding) || in.SharesOutstanding <= 0 {
		return fmt.Errorf("%w: shares outstanding must be a positive number", ErrInvalidParameter)
	}
	return nil
}

// Calculate projects free cash flow over the forecast horizon,
// discounts each flow to present value, adds a Gordon Growth terminal
// value and rolls up to enterprise, equity and per-share value. It is a
// pure function of the input: identical inputs yield identical results.
//
// A non-positive CurrentFCF is allowed but logged as a warning. A
// non-positive share count yields a per-share value of 0 rather than an
// error; callers that want the strict behavior must run Validate first.
func (in ScalarInput) Calculate() (*Valuation, error) {
	if in.WACC <= in.TerminalGrowthRate {
		return nil, fmt.Errorf("%w: WACC (%g) must be greater than the terminal growth rate (%g)", ErrDegenerate, in.WACC, in.TerminalGrowthRate)
	}
	if len(in.GrowthRates) == 0 {
		return nil, fmt.Errorf("%w: growth rates cannot be empty", ErrInvalidParameter)
	}
	if in.CurrentFCF <= 0 {
		log.Warn().Float64("CurrentFCF", in.CurrentFCF).Msg("current FCF is zero or negative; projections need careful review")
	}

	// project free cash flows for the explicit forecast period
	flows := make([]float64, len(in.GrowthRates))
	pv := make([]float64, len(in.GrowthRates))
	last := in.CurrentFCF
	for ii, rate := range in.GrowthRates {
		last *= 1 + rate
		flows[ii] = last
		pv[ii] = last / math.Pow(1+in.WACC, float64(ii+1))
	}

	// Gordon Growth terminal value, discounted over the full forecast
	// period
	terminalValue := flows[len(flows)-1] * (1 + in.TerminalGrowthRate) / (in.WACC - in.TerminalGrowthRate)
	pvTerminalValue := terminalValue / math.Pow(1+in.WACC, float64(len(flows)))

	enterpriseValue := floats.Sum(pv) + pvTerminalValue
	equityValue := enterpriseValue + in.CashAndEquivalents - in.TotalDebt

	perShare := 0.0
	if in.SharesOutstanding > 0 {
		perShare = equityValue / in.SharesOutstanding
	}

	return &Valuation{
		ProjectedFlows:  flows,
		PresentValues:   pv,
		TerminalValue:   terminalValue,
		PVTerminalValue: pvTerminalValue,
		EnterpriseValue: enterpriseValue,
		EquityValue:     equityValue,
		PerShareValue:   perShare,
	}, nil
}
