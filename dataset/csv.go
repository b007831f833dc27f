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
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV parses delimited text with a header row into a Table
func ReadCSV(r io.Reader, cfg LoadConfig) (*Table, error) {
	buffered := bufio.NewReader(r)
	if prefix, err := buffered.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		if _, err := buffered.Discard(len(utf8BOM)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedSource, err)
		}
	}

	csvReader := gocsv.DefaultCSVReader(buffered)
	if rdr, ok := csvReader.(*csv.Reader); ok && cfg.Delimiter != 0 {
		rdr.Comma = cfg.Delimiter
	}

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSource, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrMalformedSource)
	}

	header := make([]string, len(records[0]))
	for idx, name := range records[0] {
		header[idx] = strings.TrimSpace(name)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(record))
		for idx, cell := range record {
			row[idx] = ParseValue(cell)
		}
		rows = append(rows, row)
	}

	return NewTable(header, rows)
}
