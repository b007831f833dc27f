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
	"errors"
	"fmt"
	"sort"

	"github.com/penny-vault/pvdash/dataset"
)

var ErrInvalidLimit = errors.New("limit must be positive")

// TopN returns the n rows of table with the largest metric values, largest
// first. Rows with a null or non-numeric metric sort after every number and
// ties keep their table order.
func TopN(table *dataset.Table, metric string, n int) (*dataset.Table, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}

	col, ok := table.ColumnIndex(metric)
	if !ok {
		return nil, fmt.Errorf("%w: %s", dataset.ErrMissingColumn, metric)
	}

	order := make([]int, table.NumRows())
	for idx := range order {
		order[idx] = idx
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, aok := table.Row(order[i])[col].Float()
		b, bok := table.Row(order[j])[col].Float()
		switch {
		case aok && bok:
			return a > b
		default:
			return aok && !bok
		}
	})

	if n > len(order) {
		n = len(order)
	}

	rows := make([]dataset.Row, n)
	for idx := 0; idx < n; idx++ {
		rows[idx] = table.Row(order[idx])
	}

	return dataset.NewTable(table.Columns(), rows)
}

// Rank returns the top n rows by metric projected onto the display columns.
// With no display columns every column is kept.
func Rank(table *dataset.Table, metric string, n int, display ...string) (*dataset.Table, error) {
	top, err := TopN(table, metric, n)
	if err != nil {
		return nil, err
	}

	if len(display) == 0 {
		return top, nil
	}

	return top.Project(display...)
}
