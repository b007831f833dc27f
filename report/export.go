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
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/gocarina/gocsv"

	"github.com/penny-vault/pvdash/dataset"
	"github.com/penny-vault/pvdash/ranking"
)

type OutputFormat string

const (
	OutputMarkdown OutputFormat = "markdown"
	OutputTable    OutputFormat = "table"
	OutputCSV      OutputFormat = "csv"
	OutputJSON     OutputFormat = "json"
)

var ErrUnknownOutput = errors.New("unknown output format")

func ParseOutputFormat(name string) (OutputFormat, error) {
	switch format := OutputFormat(strings.ToLower(strings.TrimSpace(name))); format {
	case OutputMarkdown, OutputTable, OutputCSV, OutputJSON:
		return format, nil
	case "md":
		return OutputMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownOutput, name)
	}
}

// Document is the machine readable form of a year report
type Document struct {
	Year           dataset.Value    `json:"year"`
	NumRows        int              `json:"num_rows"`
	MissingMetrics []string         `json:"missing_metrics"`
	HasRevenue     bool             `json:"has_revenue"`
	Entries        []*ranking.Entry `json:"entries"`
}

func NewDocument(report *ranking.YearReport, entries []*ranking.Entry) *Document {
	missing := make([]string, len(report.Missing))
	for idx, metric := range report.Missing {
		missing[idx] = metric.Key
	}

	return &Document{
		Year:           report.Year,
		NumRows:        report.NumRows,
		MissingMetrics: missing,
		HasRevenue:     report.Revenue != nil,
		Entries:        entries,
	}
}

// WriteCSV writes entries as csv with a header row
func WriteCSV(w io.Writer, entries []*ranking.Entry) error {
	if err := gocsv.Marshal(entries, w); err != nil {
		return fmt.Errorf("marshal entries to csv: %w", err)
	}
	return nil
}

// WriteJSON writes an indented json document
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshal report to json: %w", err)
	}
	return nil
}
