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
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/penny-vault/pvdash/report"
)

var showYear string

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the financial analysis dashboard",
	Long: `Display the dashboard: dataset information, clustering results and the
top companies of a year. Without --year you are prompted to pick a year and
can keep exploring other years until you are done.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		summary, err := analysisSummary()
		if err != nil {
			log.Fatal().Err(err).Msg("could not read analysis settings")
		}

		_, board, err := loadBoard(boardOptions())
		if err != nil {
			log.Fatal().Err(err).Msg("could not load dataset")
		}

		if missing := summary.MissingImages(); len(missing) > 0 {
			log.Warn().Int("NumMissing", len(missing)).Int("NumImages", len(summary.Images)).Msg("some clustering charts will not be displayed")
		}
		renderOpts := renderOptions()

		if showYear != "" {
			yearRpt, err := yearReport(ctx, board, showYear)
			if err != nil {
				log.Fatal().Err(err).Msg("could not rank companies")
			}
			fmt.Println(report.Banner(report.YearBanner(yearRpt)))
			printMarkdown(report.Dashboard(board, summary, yearRpt), renderOpts)
			return
		}

		printMarkdown(report.Overview(board, summary)+report.ExploreHeading+"\n", renderOpts)

		years := board.Years()
		if len(years) == 0 {
			log.Warn().Msg("dataset has no years to explore")
			printMarkdown(report.Closing(), renderOpts)
			return
		}

		yearOptions := make([]huh.Option[string], 0, len(years))
		for _, year := range years {
			yearOptions = append(yearOptions, huh.NewOption[string](year.String(), year.String()))
		}

		selected := years[0].String()
		for {
			more := false

			form := huh.NewForm(
				huh.NewGroup(
					huh.NewSelect[string]().
						Title("Select Year").
						Options(yearOptions...).
						Value(&selected),
				),
			)

			if err := form.Run(); err != nil {
				log.Fatal().Err(err).Msg("year selection failed")
			}

			yearRpt, err := yearReport(ctx, board, selected)
			if err != nil {
				log.Fatal().Err(err).Msg("could not rank companies")
			}

			fmt.Println(report.Banner(report.YearBanner(yearRpt)))
			printMarkdown(report.YearSection(yearRpt), renderOpts)

			confirmForm := huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title("View another year?").
						Value(&more),
				),
			)

			if err := confirmForm.Run(); err != nil {
				log.Fatal().Err(err).Msg("failed to read answer")
			}

			if !more {
				break
			}
		}

		printMarkdown(report.Closing(), renderOpts)
	},
}

// printMarkdown renders a markdown document to stdout
func printMarkdown(md string, opts report.RenderOptions) {
	out, err := report.Render(md, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("could not render document")
	}

	fmt.Print(out)
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVarP(&showYear, "year", "y", "", "render a single year without prompting")
}
