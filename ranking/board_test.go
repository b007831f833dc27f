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
package ranking_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvdash/dataset"
	"github.com/penny-vault/pvdash/ranking"
)

var _ = Describe("Board", func() {
	var (
		ctx     context.Context
		columns []string
		raw     *dataset.Table
	)

	BeforeEach(func() {
		ctx = context.Background()
		columns = []string{"cik", "year", "ticker", "entity", "revenue", "profitability_score", "composite_score"}
		raw = mustTable(columns,
			row(1, 2020, "A", "Alpha", 100, 0.5, 0.3),
			row(1, 2020, "A", "Alpha (dup)", 900, 0.9, 0.9),
			row(2, 2020, "B", "Beta", 300, 0.1, 0.8),
			row(3, 2020, "C", "Gamma", 200, nil, 0.6),
			row(1, 2021, "A", "Alpha", 150, 0.4, 0.2),
			row(2, 2021, "B", "Beta", 120, 0.8, 0.7),
		)
	})

	It("deduplicates and records statistics", func() {
		board, err := ranking.NewBoard(raw, ranking.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())

		stats := board.Stats()
		Expect(stats.RawRows).To(Equal(6))
		Expect(stats.CleanedRows).To(Equal(5))
		Expect(stats.RawColumns).To(Equal(7))
		Expect(stats.CleanedColumns).To(Equal(7))
		Expect(board.Years()).To(Equal([]dataset.Value{dataset.NumberValue(2020), dataset.NumberValue(2021)}))
	})

	It("detects missing metrics", func() {
		board, err := ranking.NewBoard(raw, ranking.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())

		caps := board.Capabilities()
		Expect(ranking.Keys(caps.Available)).To(Equal([]string{"revenue", "profitability", "composite-score"}))
		Expect(ranking.Keys(caps.Missing)).To(Equal([]string{"liquidity", "leverage", "efficiency", "growth"}))
		Expect(caps.Has(ranking.Revenue)).To(BeTrue())
		Expect(caps.Has(ranking.Growth)).To(BeFalse())
	})

	It("rejects a dataset without required columns", func() {
		table := mustTable([]string{"cik", "year", "revenue"}, row(1, 2020, 5))
		_, err := ranking.NewBoard(table, ranking.DefaultOptions())
		Expect(err).To(MatchError(dataset.ErrMissingColumn))
	})

	It("rejects invalid limits", func() {
		opts := ranking.DefaultOptions()
		opts.TopN = 0
		_, err := ranking.NewBoard(raw, opts)
		Expect(err).To(MatchError(ranking.ErrInvalidLimit))
	})

	It("fills unset options with defaults", func() {
		board, err := ranking.NewBoard(raw, ranking.Options{TopN: 2, RevenueTopN: 3})
		Expect(err).NotTo(HaveOccurred())
		Expect(board.Options().Metrics).To(Equal(ranking.Catalog))
		Expect(board.Options().KeyFields).To(Equal([]string{"cik", "year"}))
		Expect(board.Options().Parallelism).To(Equal(4))
	})

	Describe("Report", func() {
		var board *ranking.Board

		BeforeEach(func() {
			opts := ranking.DefaultOptions()
			opts.TopN = 2
			var err error
			board, err = ranking.NewBoard(raw, opts)
			Expect(err).NotTo(HaveOccurred())
		})

		It("ranks each available metric in catalog order", func() {
			report, err := board.Report(ctx, dataset.NumberValue(2020))
			Expect(err).NotTo(HaveOccurred())
			Expect(report.NumRows).To(Equal(3))
			Expect(report.Rankings).To(HaveLen(3))

			Expect(report.Rankings[0].Metric).To(Equal(ranking.Revenue))
			Expect(tickers(report.Rankings[0].Table)).To(Equal([]string{"B", "C"}))

			Expect(report.Rankings[1].Metric).To(Equal(ranking.Profitability))
			Expect(tickers(report.Rankings[1].Table)).To(Equal([]string{"A", "B"}))

			composite, ok := report.Ranking("composite-score")
			Expect(ok).To(BeTrue())
			Expect(tickers(composite.Table)).To(Equal([]string{"B", "C"}))
			Expect(composite.Table.Columns()).To(Equal([]string{"ticker", "entity", "year", "composite_score"}))

			Expect(ranking.Keys(report.Missing)).To(ContainElement("growth"))
		})

		It("uses the first row of duplicated keys", func() {
			report, err := board.Report(ctx, dataset.NumberValue(2020))
			Expect(err).NotTo(HaveOccurred())
			for _, r := range report.Rankings {
				for idx := 0; idx < r.Table.NumRows(); idx++ {
					entity, _ := r.Table.Value(idx, "entity")
					Expect(entity.String()).NotTo(Equal("Alpha (dup)"))
				}
			}
		})

		It("builds the revenue leaderboard", func() {
			report, err := board.Report(ctx, dataset.NumberValue(2020))
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Revenue).NotTo(BeNil())
			Expect(report.Revenue.Limit).To(Equal(10))
			Expect(report.Revenue.Table.Columns()).To(Equal(ranking.RevenueColumns))
			Expect(tickers(report.Revenue.Table)).To(Equal([]string{"B", "C", "A"}))
		})

		It("omits the revenue leaderboard without a revenue column", func() {
			table, err := raw.Project("cik", "year", "ticker", "entity", "composite_score")
			Expect(err).NotTo(HaveOccurred())
			noRevenue, err := ranking.NewBoard(table, ranking.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			Expect(noRevenue.HasRevenue()).To(BeFalse())

			report, err := noRevenue.Report(ctx, dataset.NumberValue(2021))
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Revenue).To(BeNil())
			Expect(report.Rankings).To(HaveLen(1))
		})

		It("returns empty rankings for a year with no rows", func() {
			report, err := board.Report(ctx, dataset.NumberValue(1999))
			Expect(err).NotTo(HaveOccurred())
			Expect(report.NumRows).To(Equal(0))
			for _, r := range report.Rankings {
				Expect(r.Table.NumRows()).To(Equal(0))
			}
		})

		It("caches reports per year", func() {
			first, err := board.Report(ctx, dataset.NumberValue(2021))
			Expect(err).NotTo(HaveOccurred())
			second, err := board.Report(ctx, dataset.NumberValue(2021))
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(BeIdenticalTo(first))
		})

		It("stops when the context is cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := board.Report(cancelled, dataset.NumberValue(2020))
			Expect(err).To(MatchError(context.Canceled))
		})

		It("flattens every list into entries", func() {
			report, err := board.Report(ctx, dataset.NumberValue(2021))
			Expect(err).NotTo(HaveOccurred())

			entries := report.Entries()
			// three top lists of two plus a revenue list of two
			Expect(entries).To(HaveLen(8))
			Expect(entries[0].Section).To(Equal(ranking.SectionTop))
			Expect(entries[0].Metric).To(Equal("revenue"))
			Expect(entries[0].Rank).To(Equal(1))
			Expect(entries[0].Ticker.String()).To(Equal("A"))
			Expect(entries[0].CIK.IsNull()).To(BeTrue())

			last := entries[len(entries)-1]
			Expect(last.Section).To(Equal(ranking.SectionRevenue))
			Expect(last.Rank).To(Equal(2))
			Expect(last.CIK.String()).To(Equal("2"))
		})
	})
})
