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
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/penny-vault/pvdash/ranking"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	oddCellStyle = cellStyle.Foreground(lipgloss.Color("245"))
)

// Table renders a leaderboard as a bordered terminal table
func Table(r *ranking.Ranking) string {
	columns := r.Table.Columns()
	headers := append([]string{"#"}, columns...)

	rows := make([][]string, r.Table.NumRows())
	for idx := range rows {
		row := r.Table.Row(idx)
		cells := make([]string, 0, len(headers))
		cells = append(cells, fmt.Sprintf("%d", idx+1))
		for colIdx, col := range columns {
			cells = append(cells, formatCell(col, row[colIdx]))
		}
		rows[idx] = cells
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("63"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == 0:
				return headerStyle
			case row%2 == 0:
				return cellStyle
			default:
				return oddCellStyle
			}
		})

	return tbl.Render()
}

// Tables renders every leaderboard of a report with a heading for each
func Tables(report *ranking.YearReport) string {
	var sb strings.Builder
	for _, r := range report.Rankings {
		fmt.Fprintln(&sb, lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Top %d by %s in %s", r.Limit, r.Metric.Label, report.Year)))
		fmt.Fprintln(&sb, Table(r))
		fmt.Fprintln(&sb)
	}

	for _, metric := range report.Missing {
		fmt.Fprintln(&sb, Warning(fmt.Sprintf("%s ranking skipped: column %s not found in dataset.", metric.Label, metric.Column)))
	}

	if report.Revenue == nil {
		fmt.Fprintln(&sb, Warning(RevenueMissing))
	} else {
		fmt.Fprintln(&sb, lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Top Companies by Revenue in %s", report.Year)))
		fmt.Fprintln(&sb, Table(report.Revenue))
	}

	return sb.String()
}
