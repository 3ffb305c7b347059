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

package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/valuation-tools/dcfval/dcf"
)

// ScalarRequest is the request body for the scalar valuation endpoint.
// Pointer fields fall back to the model defaults when omitted.
type ScalarRequest struct {
	CurrentFCF         float64   `json:"currentFcf"`
	GrowthRates        []float64 `json:"growthRates"`
	TerminalGrowthRate *float64  `json:"terminalGrowthRate"`
	WACC               *float64  `json:"wacc"`
	CashAndEquivalents float64   `json:"cashAndEquivalents"`
	TotalDebt          float64   `json:"totalDebt"`
	SharesOutstanding  *float64  `json:"sharesOutstanding"`
}

// StatementRequest is the request body for the statement-driven
// valuation endpoint: a statement snapshot plus forecast parameters.
// There is no interactive fallback over HTTP; a snapshot without a
// usable EBIT is rejected.
type StatementRequest struct {
	Ticker              string               `json:"ticker"`
	EnterpriseValue     dcf.StatementRow     `json:"enterpriseValue"`
	IncomeStatement     dcf.StatementHistory `json:"incomeStatement"`
	BalanceStatement    dcf.StatementHistory `json:"balanceStatement"`
	CashflowStatement   dcf.StatementHistory `json:"cashflowStatement"`
	DiscountRate        float64              `json:"discountRate"`
	ForecastPeriod      int                  `json:"forecastPeriod"`
	EarningsGrowthRate  float64              `json:"earningsGrowthRate"`
	CapExGrowthRate     float64              `json:"capExGrowthRate"`
	PerpetualGrowthRate float64              `json:"perpetualGrowthRate"`
}

// ValuationResponse wraps a valuation result with a run identifier for
// log correlation.
type ValuationResponse struct {
	RunID     string         `json:"runId"`
	Valuation *dcf.Valuation `json:"valuation"`
}

// ScalarValuation runs the scalar-path DCF model over the request body.
func ScalarValuation(c *fiber.Ctx) error {
	var req ScalarRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn().Err(err).Msg("could not parse scalar valuation request")
		return fiber.ErrBadRequest
	}

	in := dcf.DefaultScalarInput()
	in.CurrentFCF = req.CurrentFCF
	in.GrowthRates = req.GrowthRates
	in.CashAndEquivalents = req.CashAndEquivalents
	in.TotalDebt = req.TotalDebt
	if req.TerminalGrowthRate != nil {
		in.TerminalGrowthRate = *req.TerminalGrowthRate
	}
	if req.WACC != nil {
		in.WACC = *req.WACC
	}
	if req.SharesOutstanding != nil {
		in.SharesOutstanding = *req.SharesOutstanding
	}

	if err := in.Validate(); err != nil {
		return valuationError(err)
	}
	valuation, err := in.Calculate()
	if err != nil {
		return valuationError(err)
	}

	runID := uuid.New().String()
	log.Info().
		Str("RunID", runID).
		Float64("PerShareValue", valuation.PerShareValue).
		Msg("scalar valuation complete")

	return c.JSON(ValuationResponse{RunID: runID, Valuation: valuation})
}

// StatementValuation runs the statement-path DCF model over the request
// body.
func StatementValuation(c *fiber.Ctx) error {
	var req StatementRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn().Err(err).Msg("could not parse statement valuation request")
		return fiber.ErrBadRequest
	}

	in := dcf.StatementInput{
		Ticker:              req.Ticker,
		EnterpriseValue:     req.EnterpriseValue,
		Income:              req.IncomeStatement,
		Balance:             req.BalanceStatement,
		CashFlow:            req.CashflowStatement,
		DiscountRate:        req.DiscountRate,
		ForecastPeriod:      req.ForecastPeriod,
		EarningsGrowthRate:  req.EarningsGrowthRate,
		CapExGrowthRate:     req.CapExGrowthRate,
		PerpetualGrowthRate: req.PerpetualGrowthRate,
	}

	valuation, err := in.Calculate()
	if err != nil {
		return valuationError(err)
	}

	runID := uuid.New().String()
	log.Info().
		Str("RunID", runID).
		Str("Ticker", req.Ticker).
		Float64("PerShareValue", valuation.PerShareValue).
		Msg("statement valuation complete")

	return c.JSON(ValuationResponse{RunID: runID, Valuation: valuation})
}

// valuationError maps calculation error kinds to HTTP statuses: bad
// parameters are the client's problem, degenerate arithmetic and
// missing line items mean the payload cannot be processed.
func valuationError(err error) error {
	switch {
	case errors.Is(err, dcf.ErrInvalidParameter):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, dcf.ErrMissingField), errors.Is(err, dcf.ErrDegenerate):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	default:
		log.Error().Err(err).Msg("valuation failed")
		return fiber.ErrInternalServerError
	}
}
