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

// DefaultKeyFields identify a reporting entity-period
var DefaultKeyFields = []string{CIKColumn, YearColumn}

type Dedup struct {
	Table         *Table
	KeyFields     []string
	OriginalCount int
	CleanedCount  int
}

// Removed is the number of rows dropped as duplicates
func (dedup *Dedup) Removed() int {
	return dedup.OriginalCount - dedup.CleanedCount
}

func (dedup *Dedup) MarshalZerologObject(e *zerolog.Event) {
	e.Str("KeyFields", strings.Join(dedup.KeyFields, ","))
	e.Int("OriginalCount", dedup.OriginalCount)
	e.Int("CleanedCount", dedup.CleanedCount)
	e.Int("Removed", dedup.Removed())
}

// Deduplicate keeps the first row seen for each composite key and drops every
// later row with the same key. Survivors keep their original relative order.
// Null key values compare equal to each other.
func Deduplicate(table *Table, keyFields ...string) (*Dedup, error) {
	if len(keyFields) == 0 {
		keyFields = DefaultKeyFields
	}

	positions := make([]int, len(keyFields))
	for i, name := range keyFields {
		idx, ok := table.ColumnIndex(name)
		if !ok {
			return nil, fmt.Errorf("%w: key field %s", ErrMissingColumn, name)
		}
		positions[i] = idx
	}

	seen := make(map[string]struct{}, len(table.rows))
	kept := make([]Row, 0, len(table.rows))

	var builder strings.Builder
	for _, row := range table.rows {
		builder.Reset()
		for i, pos := range positions {
			if i > 0 {
				builder.WriteByte('\x1f')
			}
			builder.WriteString(row[pos].key())
		}

		key := builder.String()
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		kept = append(kept, row)
	}

	fields := make([]string, len(keyFields))
	copy(fields, keyFields)

	return &Dedup{
		Table:         table.derive(kept),
		KeyFields:     fields,
		OriginalCount: len(table.rows),
		CleanedCount:  len(kept),
	}, nil
}
