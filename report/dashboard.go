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
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/penny-vault/pvdash/analysis"
	"github.com/penny-vault/pvdash/ranking"
)

const (
	Title              = "📊 Financial Analysis Dashboard"
	ExploreHeading     = "### Explore Top Companies by Year"
	RevenueMissing     = "Revenue column not found in dataset."
	AnalysisComplete   = "Analysis complete. Outputs cleaned and ready."
	clusteringHeading  = "### Clustering Visualizations"
	datasetInfoHeading = "### Dataset Information"
)

// Overview is the part of the dashboard that does not depend on the selected
// year: dataset shape before and after cleaning, clustering statistics and
// the clustering charts.
func Overview(board *ranking.Board, summary analysis.Summary) string {
	var sb strings.Builder
	stats := board.Stats()

	fmt.Fprintf(&sb, "# %s\n\n", Title)

	fmt.Fprintf(&sb, "%s\n\n", datasetInfoHeading)
	sb.WriteString(printer.Sprintf("Shape before cleaning: (%d, %d)\n\n", stats.RawRows, stats.RawColumns))
	sb.WriteString(printer.Sprintf("Shape after cleaning: (%d, %d)\n\n", stats.CleanedRows, stats.CleanedColumns))
	sb.WriteString(printer.Sprintf("Columns: %d\n\n", stats.CleanedColumns))

	clustering := summary.Clustering
	fmt.Fprintf(&sb, "Selected cluster k: **%d**, silhouette score: **%s**\n\n",
		clustering.K, strconv.FormatFloat(clustering.Silhouette, 'f', -1, 64))
	sb.WriteString(printer.Sprintf("DBSCAN clusters found: **%d** (noise = %d)\n\n", clustering.DBSCANClusters, clustering.DBSCANNoise))

	fmt.Fprintf(&sb, "%s\n\n", clusteringHeading)
	for _, img := range summary.Images {
		fmt.Fprintf(&sb, "![%s](<%s>)\n\n", img.Caption, summary.Resolve(img))
		fmt.Fprintf(&sb, "*%s*\n\n", img.Caption)
	}

	return sb.String()
}

// YearSection renders every leaderboard of a year report
func YearSection(report *ranking.YearReport) string {
	var sb strings.Builder
	year := report.Year.String()

	fmt.Fprintf(&sb, "#### Top Companies in %s\n\n", year)

	if report.NumRows == 0 {
		fmt.Fprintf(&sb, "_No companies reported for %s._\n\n", year)
	}

	for _, r := range report.Rankings {
		sb.WriteString(RankingSection(r))
	}

	for _, metric := range report.Missing {
		fmt.Fprintf(&sb, "_%s ranking skipped: column `%s` not found in dataset._\n\n", metric.Label, metric.Column)
	}

	fmt.Fprintf(&sb, "### Top Companies by Revenue in %s\n\n", year)
	if report.Revenue == nil {
		fmt.Fprintf(&sb, "> ⚠️ %s\n\n", RevenueMissing)
	} else {
		sb.WriteString(MarkdownTable(report.Revenue))
		sb.WriteString("\n")
	}

	return sb.String()
}

// RankingSection renders a single leaderboard with its heading
func RankingSection(r *ranking.Ranking) string {
	return fmt.Sprintf("**Top %d by %s**\n\n%s\n", r.Limit, r.Metric.Label, MarkdownTable(r))
}

// Closing is the final success line of the dashboard
func Closing() string {
	return fmt.Sprintf("✅ %s\n", AnalysisComplete)
}

// Dashboard renders the complete document for a single year
func Dashboard(board *ranking.Board, summary analysis.Summary, report *ranking.YearReport) string {
	var sb strings.Builder
	sb.WriteString(Overview(board, summary))
	fmt.Fprintf(&sb, "%s\n\n", ExploreHeading)
	sb.WriteString(YearSection(report))
	sb.WriteString(Closing())
	return sb.String()
}

// MarkdownTable renders a leaderboard as a markdown table
func MarkdownTable(r *ranking.Ranking) string {
	var sb strings.Builder
	columns := r.Table.Columns()

	sb.WriteString("| # |")
	for _, col := range columns {
		fmt.Fprintf(&sb, " %s |", col)
	}
	sb.WriteString("\n|--:|")
	for range columns {
		sb.WriteString("---|")
	}
	sb.WriteString("\n")

	for idx := 0; idx < r.Table.NumRows(); idx++ {
		fmt.Fprintf(&sb, "| %d |", idx+1)
		row := r.Table.Row(idx)
		for colIdx, col := range columns {
			fmt.Fprintf(&sb, " %s |", escapeMarkdown(formatCell(col, row[colIdx])))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
