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
package dataset_test

import (
	"math/rand"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvdash/dataset"
)

var _ = Describe("Deduplicate", func() {
	columns := []string{"cik", "year", "ticker", "entity"}

	It("keeps the first row of each (cik, year) pair", func() {
		table := mustTable(columns,
			row(1, 2020, "A", "first"),
			row(1, 2020, "A", "second"),
			row(2, 2020, "B", "only"),
		)

		dedup, err := dataset.Deduplicate(table)
		Expect(err).NotTo(HaveOccurred())
		Expect(dedup.OriginalCount).To(Equal(3))
		Expect(dedup.CleanedCount).To(Equal(2))
		Expect(dedup.Removed()).To(Equal(1))
		Expect(dedup.KeyFields).To(Equal([]string{"cik", "year"}))

		entity, _ := dedup.Table.Value(0, "entity")
		Expect(entity.String()).To(Equal("first"))
		entity, _ = dedup.Table.Value(1, "entity")
		Expect(entity.String()).To(Equal("only"))
	})

	It("leaves a table without duplicates untouched", func() {
		table := mustTable(columns,
			row(1, 2020, "A", "a"),
			row(1, 2021, "A", "a"),
			row(2, 2020, "B", "b"),
		)

		dedup, err := dataset.Deduplicate(table)
		Expect(err).NotTo(HaveOccurred())
		Expect(dedup.CleanedCount).To(Equal(3))
		Expect(dedup.Table.Row(1)[1].String()).To(Equal("2021"))
	})

	It("handles an empty table", func() {
		dedup, err := dataset.Deduplicate(mustTable(columns))
		Expect(err).NotTo(HaveOccurred())
		Expect(dedup.OriginalCount).To(Equal(0))
		Expect(dedup.CleanedCount).To(Equal(0))
	})

	It("treats null key values as equal", func() {
		table := mustTable(columns,
			row(nil, 2020, "A", "first"),
			row(nil, 2020, "B", "second"),
			row(nil, nil, "C", "third"),
		)

		dedup, err := dataset.Deduplicate(table)
		Expect(err).NotTo(HaveOccurred())
		Expect(dedup.CleanedCount).To(Equal(2))
		ticker, _ := dedup.Table.Value(1, "ticker")
		Expect(ticker.String()).To(Equal("C"))
	})

	It("treats equal numbers as one key regardless of spelling", func() {
		input := "cik,year,ticker,entity\n320193,2021,AAPL,first\n320193.0,2021.0,AAPL,second\n0,2020,Z,zero\n-0,2020,Z,negative zero\n"
		table, err := dataset.ReadCSV(strings.NewReader(input), dataset.LoadConfig{})
		Expect(err).NotTo(HaveOccurred())

		dedup, err := dataset.Deduplicate(table)
		Expect(err).NotTo(HaveOccurred())
		Expect(dedup.CleanedCount).To(Equal(2))
		entity, _ := dedup.Table.Value(0, "entity")
		Expect(entity.String()).To(Equal("first"))
		entity, _ = dedup.Table.Value(1, "entity")
		Expect(entity.String()).To(Equal("zero"))
	})

	It("supports custom key fields", func() {
		table := mustTable(columns,
			row(1, 2020, "A", "a"),
			row(2, 2021, "A", "b"),
		)

		dedup, err := dataset.Deduplicate(table, "ticker")
		Expect(err).NotTo(HaveOccurred())
		Expect(dedup.CleanedCount).To(Equal(1))
	})

	It("fails when a key field is missing", func() {
		table := mustTable([]string{"cik", "ticker"}, row(1, "A"))
		_, err := dataset.Deduplicate(table)
		Expect(err).To(MatchError(dataset.ErrMissingColumn))
	})

	Context("on random input", func() {
		var table *dataset.Table

		BeforeEach(func() {
			rng := rand.New(rand.NewSource(GinkgoRandomSeed()))
			rows := make([]dataset.Row, 500)
			for idx := range rows {
				rows[idx] = row(rng.Intn(20), 2015+rng.Intn(5), "T", idx)
			}
			table = mustTable(columns, rows...)
		})

		It("produces unique keys", func() {
			dedup, err := dataset.Deduplicate(table)
			Expect(err).NotTo(HaveOccurred())

			seen := make(map[string]bool)
			for idx := 0; idx < dedup.Table.NumRows(); idx++ {
				r := dedup.Table.Row(idx)
				key := r[0].String() + "/" + r[1].String()
				Expect(seen).NotTo(HaveKey(key))
				seen[key] = true
			}
		})

		It("never grows the table", func() {
			dedup, err := dataset.Deduplicate(table)
			Expect(err).NotTo(HaveOccurred())
			Expect(dedup.CleanedCount).To(BeNumerically("<=", dedup.OriginalCount))
			Expect(dedup.CleanedCount).To(Equal(dedup.Table.NumRows()))
		})

		It("is idempotent", func() {
			once, err := dataset.Deduplicate(table)
			Expect(err).NotTo(HaveOccurred())
			twice, err := dataset.Deduplicate(once.Table)
			Expect(err).NotTo(HaveOccurred())
			Expect(twice.CleanedCount).To(Equal(once.CleanedCount))
			for idx := 0; idx < once.Table.NumRows(); idx++ {
				Expect(twice.Table.Row(idx)).To(Equal(once.Table.Row(idx)))
			}
		})

		It("keeps survivors in their original order", func() {
			dedup, err := dataset.Deduplicate(table)
			Expect(err).NotTo(HaveOccurred())

			last := -1.0
			for idx := 0; idx < dedup.Table.NumRows(); idx++ {
				pos, ok := dedup.Table.Row(idx)[3].Float()
				Expect(ok).To(BeTrue())
				Expect(pos).To(BeNumerically(">", last))
				last = pos
			}
		})
	})
})
