// Copyright 2024
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
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/penny-vault/pvdash/report"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display information about the dataset",
	Run: func(cmd *cobra.Command, args []string) {
		src, board, err := loadBoard(boardOptions())
		if err != nil {
			log.Fatal().Err(err).Msg("could not load dataset")
		}

		summary, err := report.SourceSummary(src, board)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create dataset summary document")
		}

		printMarkdown(summary, renderOptions())
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
