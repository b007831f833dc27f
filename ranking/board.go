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
	"context"
	"fmt"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/hako/durafmt"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/penny-vault/pvdash/dataset"
)

type Options struct {
	TopN        int
	RevenueTopN int
	Metrics     []Metric
	KeyFields   []string
	Parallelism int
}

func DefaultOptions() Options {
	return Options{
		TopN:        5,
		RevenueTopN: 10,
		Metrics:     Catalog,
		KeyFields:   dataset.DefaultKeyFields,
		Parallelism: 4,
	}
}

func (opts Options) withDefaults() Options {
	defaults := DefaultOptions()
	if len(opts.Metrics) == 0 {
		opts.Metrics = defaults.Metrics
	}
	if len(opts.KeyFields) == 0 {
		opts.KeyFields = defaults.KeyFields
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = defaults.Parallelism
	}
	return opts
}

// Board holds a cleaned dataset and answers per-year ranking queries. It is
// not modified after NewBoard returns and is safe for concurrent use.
type Board struct {
	raw   *dataset.Table
	dedup *dataset.Dedup
	caps  Capabilities
	years []dataset.Value
	opts  Options
	cache *haxmap.Map[string, *YearReport]
}

// Stats describes the dataset before and after cleaning
type Stats struct {
	RawRows        int
	RawColumns     int
	CleanedRows    int
	CleanedColumns int
}

func (stats Stats) MarshalZerologObject(e *zerolog.Event) {
	e.Int("RawRows", stats.RawRows)
	e.Int("RawColumns", stats.RawColumns)
	e.Int("CleanedRows", stats.CleanedRows)
	e.Int("CleanedColumns", stats.CleanedColumns)
}

// NewBoard validates and deduplicates raw, then records the metrics it can be
// ranked by and the years it covers.
func NewBoard(raw *dataset.Table, opts Options) (*Board, error) {
	opts = opts.withDefaults()
	if opts.TopN <= 0 {
		return nil, fmt.Errorf("%w: top n %d", ErrInvalidLimit, opts.TopN)
	}
	if opts.RevenueTopN <= 0 {
		return nil, fmt.Errorf("%w: revenue top n %d", ErrInvalidLimit, opts.RevenueTopN)
	}

	if err := dataset.Validate(raw); err != nil {
		return nil, err
	}

	dedup, err := dataset.Deduplicate(raw, opts.KeyFields...)
	if err != nil {
		return nil, err
	}

	years, err := dataset.Years(dedup.Table)
	if err != nil {
		return nil, err
	}

	caps := Detect(dedup.Table, opts.Metrics)
	for _, metric := range caps.Missing {
		log.Warn().Str("Metric", metric.Label).Str("Column", metric.Column).Msg("metric column not found in dataset; ranking will be skipped")
	}

	board := &Board{
		raw:   raw,
		dedup: dedup,
		caps:  caps,
		years: years,
		opts:  opts,
		cache: haxmap.New[string, *YearReport](),
	}

	log.Debug().Object("Dedup", dedup).Object("Capabilities", caps).Int("NumYears", len(years)).Msg("board ready")

	return board, nil
}

func (board *Board) Raw() *dataset.Table {
	return board.raw
}

func (board *Board) Cleaned() *dataset.Table {
	return board.dedup.Table
}

func (board *Board) Dedup() *dataset.Dedup {
	return board.dedup
}

func (board *Board) Capabilities() Capabilities {
	return board.caps
}

func (board *Board) Options() Options {
	return board.opts
}

// Years returns the distinct years of the cleaned dataset in ascending order
func (board *Board) Years() []dataset.Value {
	years := make([]dataset.Value, len(board.years))
	copy(years, board.years)
	return years
}

// HasRevenue reports whether the revenue leaderboard can be produced
func (board *Board) HasRevenue() bool {
	return board.dedup.Table.HasColumn(Revenue.Column)
}

func (board *Board) Stats() Stats {
	rawRows, rawCols := board.raw.Shape()
	cleanRows, cleanCols := board.dedup.Table.Shape()
	return Stats{
		RawRows:        rawRows,
		RawColumns:     rawCols,
		CleanedRows:    cleanRows,
		CleanedColumns: cleanCols,
	}
}

// Report ranks the cleaned rows of one year by every available metric. A year
// with no rows produces empty rankings rather than an error.
func (board *Board) Report(ctx context.Context, year dataset.Value) (*YearReport, error) {
	cacheKey := fmt.Sprintf("%s:%s", year.Kind(), year)
	if report, ok := board.cache.Get(cacheKey); ok {
		return report, nil
	}

	start := time.Now()
	subset, err := dataset.FilterByYear(board.dedup.Table, year)
	if err != nil {
		return nil, err
	}

	report := &YearReport{
		Year:     year,
		NumRows:  subset.NumRows(),
		Rankings: make([]*Ranking, len(board.caps.Available)),
		Missing:  board.caps.Missing,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(board.opts.Parallelism)

	for idx, metric := range board.caps.Available {
		idx, metric := idx, metric
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			ranked, err := Rank(subset, metric.Column, board.opts.TopN, metric.DisplayColumns()...)
			if err != nil {
				return fmt.Errorf("ranking %s: %w", metric.Label, err)
			}

			report.Rankings[idx] = &Ranking{
				Metric: metric,
				Limit:  board.opts.TopN,
				Table:  ranked,
			}
			return nil
		})
	}

	if board.HasRevenue() {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			ranked, err := Rank(subset, Revenue.Column, board.opts.RevenueTopN, RevenueColumns...)
			if err != nil {
				return fmt.Errorf("ranking revenue leaderboard: %w", err)
			}

			report.Revenue = &Ranking{
				Metric: Revenue,
				Limit:  board.opts.RevenueTopN,
				Table:  ranked,
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	log.Debug().Str("Year", year.String()).Int("NumRows", report.NumRows).
		Str("RunTime", durafmt.Parse(time.Since(start)).String()).Msg("year report computed")

	board.cache.Set(cacheKey, report)
	return report, nil
}
