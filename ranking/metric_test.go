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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvdash/ranking"
)

var _ = Describe("Metric catalog", func() {
	It("lists metrics in dashboard order", func() {
		Expect(ranking.Keys(ranking.Catalog)).To(Equal([]string{
			"revenue", "profitability", "liquidity", "leverage", "efficiency", "growth", "composite-score",
		}))
	})

	DescribeTable("Lookup",
		func(name string, expected string) {
			metric, ok := ranking.Lookup(ranking.Catalog, name)
			Expect(ok).To(BeTrue())
			Expect(metric.Column).To(Equal(expected))
		},
		Entry("by key", "composite-score", "composite_score"),
		Entry("by label", "Composite Score", "composite_score"),
		Entry("by column", "liquidity_score", "liquidity_score"),
		Entry("by upper case label", "GROWTH", "growth_score"),
	)

	It("does not find unknown metrics", func() {
		_, ok := ranking.Lookup(ranking.Catalog, "ebitda")
		Expect(ok).To(BeFalse())
	})

	It("displays identity columns before the metric", func() {
		Expect(ranking.Leverage.DisplayColumns()).To(Equal([]string{"ticker", "entity", "year", "leverage_score"}))
		Expect(ranking.RevenueColumns).To(Equal([]string{"cik", "ticker", "entity", "year", "revenue"}))
	})
})
