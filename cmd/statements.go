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
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/valuation-tools/dcfval/common"
	"github.com/valuation-tools/dcfval/dcf"
	"github.com/valuation-tools/dcfval/reporting"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	stmtTicker          string
	stmtDiscountRate    float64
	stmtForecastPeriod  int
	stmtEarningsGrowth  float64
	stmtCapExGrowth     float64
	stmtPerpetualGrowth float64
)

func init() {
	rootCmd.AddCommand(statementsCmd)

	statementsCmd.Flags().StringVar(&stmtTicker, "ticker", "", "Ticker label for the output; defaults to the snapshot's ticker")
	statementsCmd.Flags().Float64Var(&stmtDiscountRate, "discount-rate", 0.10, "Discount rate")
	statementsCmd.Flags().IntVar(&stmtForecastPeriod, "forecast-period", 5, "Number of forecast years")
	statementsCmd.Flags().Float64Var(&stmtEarningsGrowth, "earnings-growth", 0.05, "Earnings growth rate (also applied to non-cash charges)")
	statementsCmd.Flags().Float64Var(&stmtCapExGrowth, "capex-growth", 0.045, "Capital expenditure growth rate")
	statementsCmd.Flags().Float64Var(&stmtPerpetualGrowth, "perpetual-growth", 0.02, "Perpetual growth rate beyond the forecast horizon")
}

var statementsCmd = &cobra.Command{
	Use:   "statements <snapshot.json>",
	Short: "value a company from raw financial statement records",
	Long: `Run the statement-driven DCF path: derive EBIT, tax rate, non-cash
charges, working-capital delta and capital expenditure from a statement
snapshot, forecast unlevered free cash flows and roll up to a per-share
intrinsic value. When the base-year EBIT is missing the command prompts
for a value on the console.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()

		raw, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatal().Err(err).Str("FileName", args[0]).Msg("could not read statement snapshot")
		}

		var snapshot dcf.Snapshot
		if err := json.Unmarshal(raw, &snapshot); err != nil {
			log.Fatal().Err(err).Str("FileName", args[0]).Msg("could not parse statement snapshot")
		}

		in := dcf.NewStatementInput(&snapshot, stmtDiscountRate, stmtForecastPeriod,
			stmtEarningsGrowth, stmtCapExGrowth, stmtPerpetualGrowth)
		in.ManualInput = consoleInput
		if stmtTicker != "" {
			in.Ticker = stmtTicker
		}

		if err := in.Validate(); err != nil {
			log.Fatal().Err(err).Msg("invalid valuation parameters")
		}

		valuation, err := in.Calculate()
		if err != nil {
			log.Fatal().Err(err).Msg("valuation failed")
		}

		reporting.WriteForecastTable(os.Stdout, valuation)
		reporting.WriteSummary(os.Stdout, valuation)
	},
}

// consoleInput prompts on stdout and reads a single numeric value from
// stdin. It backs the missing-EBIT fallback for interactive runs.
func consoleInput(prompt string) (float64, error) {
	fmt.Printf("%s: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(line), 64)
}
