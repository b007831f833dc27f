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
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/xeonx/timeago"

	"github.com/penny-vault/pvdash/dataset"
	"github.com/penny-vault/pvdash/ranking"
)

// SourceSummary returns a description of the loaded dataset in markdown
func SourceSummary(src *dataset.Source, board *ranking.Board) (string, error) {
	builder := strings.Builder{}

	if _, err := builder.WriteString(fmt.Sprintf("# %s\n", filepath.Base(src.Path))); err != nil {
		return "", err
	}

	if _, err := builder.WriteString("## Details\n\n"); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(fmt.Sprintf("File: %s\n\n", src.Path)); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(fmt.Sprintf("  * Format: %s\n", src.Format)); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(fmt.Sprintf("  * Size: %s\n", humanize.Bytes(uint64(src.Size)))); err != nil {
		return "", err
	}

	// Row counts before and after deduplication
	stats := board.Stats()
	dedup := board.Dedup()
	if _, err := builder.WriteString(printer.Sprintf("  * Shape before cleaning: (%d, %d)\n", stats.RawRows, stats.RawColumns)); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(printer.Sprintf("  * Shape after cleaning: (%d, %d)\n", stats.CleanedRows, stats.CleanedColumns)); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(printer.Sprintf("  * Duplicate %s rows removed: %d\n\n", strings.Join(dedup.KeyFields, "/"), dedup.Removed())); err != nil {
		return "", err
	}

	// Last modified time
	if src.ModTime.Equal(time.Time{}) {
		if _, err := builder.WriteString("Last Modified: Unknown\n\n"); err != nil {
			return "", err
		}
	} else {
		age := timeago.English.Format(src.ModTime)
		if _, err := builder.WriteString(fmt.Sprintf("Last Modified: %s (%s)\n\n", age, src.ModTime.Local().Format("01/02/2006"))); err != nil {
			return "", err
		}
	}

	// Metrics
	if _, err := builder.WriteString("## Metrics\n\n"); err != nil {
		return "", err
	}

	caps := board.Capabilities()
	for _, metric := range caps.Available {
		if _, err := builder.WriteString(fmt.Sprintf("  * %s (`%s`, key `%s`)\n", metric.Label, metric.Column, metric.Key)); err != nil {
			return "", err
		}
	}

	if len(caps.Missing) > 0 {
		if _, err := builder.WriteString("\n## Missing metrics\n\n"); err != nil {
			return "", err
		}

		for _, metric := range caps.Missing {
			if _, err := builder.WriteString(fmt.Sprintf("  * %s (`%s`)\n", metric.Label, metric.Column)); err != nil {
				return "", err
			}
		}
	}

	// Years
	if _, err := builder.WriteString("\n## Years\n\n"); err != nil {
		return "", err
	}

	years := board.Years()
	if len(years) == 0 {
		if _, err := builder.WriteString("No years found\n"); err != nil {
			return "", err
		}
	} else {
		labels := make([]string, len(years))
		for idx, year := range years {
			labels[idx] = year.String()
		}

		if _, err := builder.WriteString(fmt.Sprintf("%s (%d)\n", strings.Join(labels, ", "), len(years))); err != nil {
			return "", err
		}
	}

	// Columns
	if _, err := builder.WriteString("\n## Columns\n\n"); err != nil {
		return "", err
	}

	for _, col := range board.Cleaned().Columns() {
		if _, err := builder.WriteString(fmt.Sprintf("  * %s\n", col)); err != nil {
			return "", err
		}
	}

	return builder.String(), nil
}
