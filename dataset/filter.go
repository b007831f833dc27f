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
package dataset

import (
	"fmt"
	"sort"
)

// Distinct returns the distinct non-null values of a column sorted ascending
func Distinct(table *Table, column string) ([]Value, error) {
	idx, ok := table.ColumnIndex(column)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, column)
	}

	seen := make(map[string]struct{})
	distinct := make([]Value, 0)
	for _, row := range table.rows {
		val := row[idx]
		if val.IsNull() {
			continue
		}

		key := val.key()
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		distinct = append(distinct, val)
	}

	sort.Slice(distinct, func(i, j int) bool {
		return distinct[i].Compare(distinct[j]) < 0
	})

	return distinct, nil
}

// Years lists the selectable years of a table
func Years(table *Table) ([]Value, error) {
	return Distinct(table, YearColumn)
}

// Filter returns the rows whose column equals value, in table order. No match
// yields an empty table.
func Filter(table *Table, column string, value Value) (*Table, error) {
	idx, ok := table.ColumnIndex(column)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, column)
	}

	rows := make([]Row, 0)
	for _, row := range table.rows {
		if row[idx].Equal(value) {
			rows = append(rows, row)
		}
	}

	return table.derive(rows), nil
}

func FilterByYear(table *Table, year Value) (*Table, error) {
	return Filter(table, YearColumn, year)
}
