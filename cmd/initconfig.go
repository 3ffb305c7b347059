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
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const configFileName = "config.toml"

type logConfig struct {
	Level        string `toml:"level"`
	Output       string `toml:"output"`
	Pretty       bool   `toml:"pretty"`
	ReportCaller bool   `toml:"report_caller"`
}

type serverConfig struct {
	Port int `toml:"port"`
}

type starterConfig struct {
	Log    logConfig    `toml:"log"`
	Server serverConfig `toml:"server"`
}

func init() {
	rootCmd.AddCommand(initConfigCmd)
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "write a starter config.toml to the current directory",
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := os.Stat(configFileName); err == nil {
			log.Fatal().Str("FileName", configFileName).Msg("config file already exists; refusing to overwrite")
		}

		cfg := starterConfig{
			Log: logConfig{
				Level:  "warning",
				Output: "stderr",
			},
			Server: serverConfig{
				Port: 3000,
			},
		}

		out, err := toml.Marshal(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("could not marshal starter config")
		}
		if err := os.WriteFile(configFileName, out, 0644); err != nil {
			log.Fatal().Err(err).Msg("could not write starter config")
		}

		fmt.Printf("wrote %s\n", configFileName)
	},
}
