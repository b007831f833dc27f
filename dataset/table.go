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
	"strings"

	"github.com/rs/zerolog"
)

const (
	CIKColumn    = "cik"
	YearColumn   = "year"
	TickerColumn = "ticker"
	EntityColumn = "entity"
)

// RequiredColumns must be present in every source
var RequiredColumns = []string{CIKColumn, YearColumn, TickerColumn, EntityColumn}

type Row []Value

// Table is an ordered, immutable sequence of rows sharing one header. Tables
// returned by Filter, Project and Deduplicate share row storage with their
// parent; callers must treat rows as read-only.
type Table struct {
	columns []string
	index   map[string]int
	rows    []Row
}

// NewTable builds a table from a header and rows. Every row must have exactly
// one value per column.
func NewTable(columns []string, rows []Row) (*Table, error) {
	index := make(map[string]int, len(columns))
	for idx, name := range columns {
		if _, ok := index[name]; ok {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrMalformedSource, name)
		}
		index[name] = idx
	}

	for idx, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d fields, header has %d", ErrMalformedSource, idx+1, len(row), len(columns))
		}
	}

	cols := make([]string, len(columns))
	copy(cols, columns)

	return &Table{
		columns: cols,
		index:   index,
		rows:    rows,
	}, nil
}

// derive returns a table with the same header over a different row sequence
func (table *Table) derive(rows []Row) *Table {
	return &Table{
		columns: table.columns,
		index:   table.index,
		rows:    rows,
	}
}

func (table *Table) NumRows() int {
	return len(table.rows)
}

func (table *Table) NumColumns() int {
	return len(table.columns)
}

// Shape returns (rows, columns)
func (table *Table) Shape() (int, int) {
	return len(table.rows), len(table.columns)
}

// Columns returns a copy of the column names in header order
func (table *Table) Columns() []string {
	cols := make([]string, len(table.columns))
	copy(cols, table.columns)
	return cols
}

func (table *Table) HasColumn(name string) bool {
	_, ok := table.index[name]
	return ok
}

func (table *Table) ColumnIndex(name string) (int, bool) {
	idx, ok := table.index[name]
	return idx, ok
}

// Row returns the i-th row
func (table *Table) Row(i int) Row {
	return table.rows[i]
}

// Value returns the cell at row i in the named column
func (table *Table) Value(i int, column string) (Value, bool) {
	idx, ok := table.index[column]
	if !ok {
		return Value{}, false
	}
	return table.rows[i][idx], true
}

// Column returns every value of the named column in row order
func (table *Table) Column(name string) ([]Value, error) {
	idx, ok := table.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
	}

	values := make([]Value, len(table.rows))
	for i, row := range table.rows {
		values[i] = row[idx]
	}

	return values, nil
}

// Project returns a table holding only the named columns, in the order given
func (table *Table) Project(columns ...string) (*Table, error) {
	positions := make([]int, len(columns))
	for i, name := range columns {
		idx, ok := table.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		positions[i] = idx
	}

	rows := make([]Row, len(table.rows))
	for i, row := range table.rows {
		projected := make(Row, len(positions))
		for j, pos := range positions {
			projected[j] = row[pos]
		}
		rows[i] = projected
	}

	return NewTable(columns, rows)
}

func (table *Table) MarshalZerologObject(e *zerolog.Event) {
	e.Int("NumRows", len(table.rows))
	e.Int("NumColumns", len(table.columns))
	e.Str("Columns", strings.Join(table.columns, ","))
}

// Validate checks that every required column is present
func Validate(table *Table) error {
	missing := make([]string, 0, len(RequiredColumns))
	for _, name := range RequiredColumns {
		if !table.HasColumn(name) {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	return nil
}
