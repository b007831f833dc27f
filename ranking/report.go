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
package ranking

import (
	"github.com/rs/zerolog"

	"github.com/penny-vault/pvdash/dataset"
)

const (
	SectionTop     = "top"
	SectionRevenue = "revenue"
)

// Ranking is one ordered leaderboard
type Ranking struct {
	Metric Metric
	Limit  int
	Table  *dataset.Table
}

func (ranking *Ranking) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Metric", ranking.Metric.Key)
	e.Int("Limit", ranking.Limit)
	e.Int("NumRows", ranking.Table.NumRows())
}

// YearReport holds every leaderboard for a single year
type YearReport struct {
	Year     dataset.Value
	NumRows  int
	Rankings []*Ranking
	Missing  []Metric

	// Revenue is nil when the dataset has no revenue column
	Revenue *Ranking
}

// Ranking returns the leaderboard for a metric key
func (report *YearReport) Ranking(key string) (*Ranking, bool) {
	for _, ranking := range report.Rankings {
		if ranking.Metric.Key == key {
			return ranking, true
		}
	}
	return nil, false
}

// Entry is a flattened leaderboard row used for export
type Entry struct {
	Section string        `csv:"section" json:"section"`
	Metric  string        `csv:"metric" json:"metric"`
	Rank    int           `csv:"rank" json:"rank"`
	CIK     dataset.Value `csv:"cik" json:"cik"`
	Ticker  dataset.Value `csv:"ticker" json:"ticker"`
	Entity  dataset.Value `csv:"entity" json:"entity"`
	Year    dataset.Value `csv:"year" json:"year"`
	Value   dataset.Value `csv:"value" json:"value"`
}

// Entries flattens the top lists followed by the revenue leaderboard
func (report *YearReport) Entries() []*Entry {
	entries := make([]*Entry, 0)
	for _, ranking := range report.Rankings {
		entries = append(entries, ranking.Entries(SectionTop)...)
	}

	if report.Revenue != nil {
		entries = append(entries, report.Revenue.Entries(SectionRevenue)...)
	}

	return entries
}

// Entries flattens a single leaderboard, ranks start at 1
func (ranking *Ranking) Entries(section string) []*Entry {
	tbl := ranking.Table
	entries := make([]*Entry, tbl.NumRows())
	for idx := range entries {
		entry := &Entry{
			Section: section,
			Metric:  ranking.Metric.Key,
			Rank:    idx + 1,
		}
		entry.CIK, _ = tbl.Value(idx, dataset.CIKColumn)
		entry.Ticker, _ = tbl.Value(idx, dataset.TickerColumn)
		entry.Entity, _ = tbl.Value(idx, dataset.EntityColumn)
		entry.Year, _ = tbl.Value(idx, dataset.YearColumn)
		entry.Value, _ = tbl.Value(idx, ranking.Metric.Column)
		entries[idx] = entry
	}
	return entries
}
