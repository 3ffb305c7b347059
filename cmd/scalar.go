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

package cmd

import (
	"os"

	"github.com/valuation-tools/dcfval/common"
	"github.com/valuation-tools/dcfval/dcf"
	"github.com/valuation-tools/dcfval/reporting"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	scalarFCF            float64
	scalarGrowthRates    []float64
	scalarTerminalGrowth float64
	scalarWACC           float64
	scalarCash           float64
	scalarDebt           float64
	scalarShares         float64
)

func init() {
	rootCmd.AddCommand(scalarCmd)

	scalarCmd.Flags().Float64Var(&scalarFCF, "fcf", 0, "Current free cash flow")
	scalarCmd.Flags().Float64SliceVar(&scalarGrowthRates, "growth-rates", nil, "Per-year growth rates, e.g. 0.15,0.10,0.08")
	scalarCmd.Flags().Float64Var(&scalarTerminalGrowth, "terminal-growth", dcf.DefaultTerminalGrowthRate, "Perpetual growth rate beyond the forecast horizon")
	scalarCmd.Flags().Float64Var(&scalarWACC, "wacc", dcf.DefaultWACC, "Discount rate (weighted average cost of capital)")
	scalarCmd.Flags().Float64Var(&scalarCash, "cash", 0, "Cash and equivalents")
	scalarCmd.Flags().Float64Var(&scalarDebt, "debt", 0, "Total debt")
	scalarCmd.Flags().Float64Var(&scalarShares, "shares", dcf.DefaultSharesOutstanding, "Shares outstanding")
}

var scalarCmd = &cobra.Command{
	Use:   "scalar",
	Short: "value a company from pre-derived scalar inputs",
	Long: `Run the scalar DCF path: project the current free cash flow over the
supplied per-year growth rates, discount at WACC, add a Gordon Growth
terminal value and net cash and debt to a per-share intrinsic value.`,
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()

		in := dcf.ScalarInput{
			CurrentFCF:         scalarFCF,
			GrowthRates:        scalarGrowthRates,
			TerminalGrowthRate: scalarTerminalGrowth,
			WACC:               scalarWACC,
			CashAndEquivalents: scalarCash,
			TotalDebt:          scalarDebt,
			SharesOutstanding:  scalarShares,
		}
		if err := in.Validate(); err != nil {
			log.Fatal().Err(err).Msg("invalid valuation parameters")
		}

		valuation, err := in.Calculate()
		if err != nil {
			log.Fatal().Err(err).Msg("valuation failed")
		}

		reporting.WriteFlowTable(os.Stdout, valuation)
		reporting.WriteSummary(os.Stdout, valuation)
	},
}
