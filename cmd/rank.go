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
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/penny-vault/pvdash/ranking"
	"github.com/penny-vault/pvdash/report"
)

var (
	rankYear   string
	rankMetric string
	rankTop    int
	rankFormat string
)

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Print the top companies of a year without prompting",
	Example: `  pvdash rank --year 2021
  pvdash rank --year 2021 --metric composite-score --top 20 --format csv`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		format, err := report.ParseOutputFormat(rankFormat)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid --format")
		}

		opts := boardOptions()
		if cmd.Flags().Changed("top") {
			opts.TopN = rankTop
		}

		var metric ranking.Metric
		if rankMetric != "" {
			var ok bool
			metric, ok = ranking.Lookup(ranking.Catalog, rankMetric)
			if !ok {
				log.Fatal().Str("Metric", rankMetric).Strs("Known", ranking.Keys(ranking.Catalog)).Msg("unknown metric")
			}
		}

		_, board, err := loadBoard(opts)
		if err != nil {
			log.Fatal().Err(err).Msg("could not load dataset")
		}

		yearRpt, err := yearReport(ctx, board, rankYear)
		if err != nil {
			log.Fatal().Err(err).Msg("could not rank companies")
		}

		if rankMetric == "" {
			writeReport(yearRpt, format)
			return
		}

		selected, ok := yearRpt.Ranking(metric.Key)
		if !ok {
			log.Warn().Str("Metric", metric.Label).Str("Column", metric.Column).Msg("metric column not found in dataset")
			fmt.Println(report.Warning(fmt.Sprintf("%s ranking skipped: column %s not found in dataset.", metric.Label, metric.Column)))
			return
		}

		writeRanking(yearRpt, selected, format)
	},
}

func writeReport(yearRpt *ranking.YearReport, format report.OutputFormat) {
	switch format {
	case report.OutputMarkdown:
		printMarkdown(report.YearSection(yearRpt), renderOptions())
	case report.OutputTable:
		fmt.Print(report.Tables(yearRpt))
	case report.OutputCSV:
		if err := report.WriteCSV(os.Stdout, yearRpt.Entries()); err != nil {
			log.Fatal().Err(err).Msg("could not write csv")
		}
	case report.OutputJSON:
		if err := report.WriteJSON(os.Stdout, report.NewDocument(yearRpt, yearRpt.Entries())); err != nil {
			log.Fatal().Err(err).Msg("could not write json")
		}
	}
}

func writeRanking(yearRpt *ranking.YearReport, selected *ranking.Ranking, format report.OutputFormat) {
	entries := selected.Entries(ranking.SectionTop)

	switch format {
	case report.OutputMarkdown:
		printMarkdown(report.RankingSection(selected), renderOptions())
	case report.OutputTable:
		fmt.Println(report.Table(selected))
	case report.OutputCSV:
		if err := report.WriteCSV(os.Stdout, entries); err != nil {
			log.Fatal().Err(err).Msg("could not write csv")
		}
	case report.OutputJSON:
		if err := report.WriteJSON(os.Stdout, report.NewDocument(yearRpt, entries)); err != nil {
			log.Fatal().Err(err).Msg("could not write json")
		}
	}
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringVarP(&rankYear, "year", "y", "", "year to rank (required)")
	rankCmd.Flags().StringVarP(&rankMetric, "metric", "m", "", fmt.Sprintf("only rank by this metric (%s)", strings.Join(ranking.Keys(ranking.Catalog), ", ")))
	rankCmd.Flags().IntVarP(&rankTop, "top", "n", 5, "number of companies per list")
	rankCmd.Flags().StringVarP(&rankFormat, "format", "f", string(report.OutputMarkdown), "output format (markdown, table, csv, json)")

	if err := rankCmd.MarkFlagRequired("year"); err != nil {
		log.Panic().Err(err).Msg("MarkFlagRequired for year failed")
	}
}
