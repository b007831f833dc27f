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

	"github.com/rs/zerolog"

	"github.com/penny-vault/pvdash/dataset"
)

// Capabilities records which metrics a table can be ranked by
type Capabilities struct {
	Available []Metric
	Missing   []Metric
}

// Detect splits metrics into those whose column is present and those absent
func Detect(table *dataset.Table, metrics []Metric) Capabilities {
	caps := Capabilities{
		Available: make([]Metric, 0, len(metrics)),
		Missing:   make([]Metric, 0),
	}

	for _, metric := range metrics {
		if table.HasColumn(metric.Column) {
			caps.Available = append(caps.Available, metric)
		} else {
			caps.Missing = append(caps.Missing, metric)
		}
	}

	return caps
}

func (caps Capabilities) Has(metric Metric) bool {
	for _, m := range caps.Available {
		if m.Column == metric.Column {
			return true
		}
	}
	return false
}

func (caps Capabilities) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Available", strings.Join(columnNames(caps.Available), ","))
	e.Str("Missing", strings.Join(columnNames(caps.Missing), ","))
}

func columnNames(metrics []Metric) []string {
	names := make([]string, len(metrics))
	for idx, metric := range metrics {
		names[idx] = metric.Column
	}
	return names
}
