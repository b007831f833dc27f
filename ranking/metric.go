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
	"strings"

	"github.com/gosimple/slug"

	"github.com/penny-vault/pvdash/dataset"
)

// Metric is a rankable column of the dataset
type Metric struct {
	Key    string
	Label  string
	Column string
}

func NewMetric(label, column string) Metric {
	return Metric{
		Key:    slug.Make(label),
		Label:  label,
		Column: column,
	}
}

var (
	Revenue        = NewMetric("Revenue", "revenue")
	Profitability  = NewMetric("Profitability", "profitability_score")
	Liquidity      = NewMetric("Liquidity", "liquidity_score")
	Leverage       = NewMetric("Leverage", "leverage_score")
	Efficiency     = NewMetric("Efficiency", "efficiency_score")
	Growth         = NewMetric("Growth", "growth_score")
	CompositeScore = NewMetric("Composite Score", "composite_score")
)

// Catalog is the default set of metrics in display order
var Catalog = []Metric{
	Revenue,
	Profitability,
	Liquidity,
	Leverage,
	Efficiency,
	Growth,
	CompositeScore,
}

// RevenueColumns are shown in the revenue leaderboard
var RevenueColumns = []string{
	dataset.CIKColumn,
	dataset.TickerColumn,
	dataset.EntityColumn,
	dataset.YearColumn,
	Revenue.Column,
}

// DisplayColumns are the columns shown in a top-N list for the metric
func (metric Metric) DisplayColumns() []string {
	return []string{
		dataset.TickerColumn,
		dataset.EntityColumn,
		dataset.YearColumn,
		metric.Column,
	}
}

func (metric Metric) String() string {
	return metric.Label
}

// Lookup finds a metric by key, label or column name
func Lookup(metrics []Metric, name string) (Metric, bool) {
	needle := strings.TrimSpace(name)
	key := slug.Make(needle)
	for _, metric := range metrics {
		if metric.Key == key || metric.Column == needle || strings.EqualFold(metric.Label, needle) {
			return metric, true
		}
	}
	return Metric{}, false
}

// Keys lists the keys of metrics in order
func Keys(metrics []Metric) []string {
	keys := make([]string, len(metrics))
	for idx, metric := range metrics {
		keys[idx] = metric.Key
	}
	return keys
}
