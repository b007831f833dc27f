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

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// readXLSX loads one worksheet of a workbook. Cells are read unformatted so a
// number styled as `#,##0` or a percentage stays numeric. Blank rows are
// skipped and short rows are padded with nulls since excelize trims trailing
// empty cells.
func readXLSX(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, sourceError(path, err)
	}

	defer func() {
		if err := f.Close(); err != nil {
			log.Warn().Err(err).Str("Path", path).Msg("closing workbook failed")
		}
	}()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook %s has no sheets", ErrMalformedSource, path)
		}
		sheet = sheets[0]
	}

	records, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %s: %w", ErrMalformedSource, sheet, err)
	}

	records = dropBlankRows(records)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: sheet %s has no header row", ErrMalformedSource, sheet)
	}

	header := make([]string, len(records[0]))
	for idx, name := range records[0] {
		header[idx] = strings.TrimSpace(name)
	}

	rows := make([]Row, 0, len(records)-1)
	for num, record := range records[1:] {
		if len(record) > len(header) {
			return nil, fmt.Errorf("%w: sheet %s row %d has %d fields, header has %d", ErrMalformedSource, sheet, num+2, len(record), len(header))
		}

		row := make(Row, len(header))
		for idx, cell := range record {
			row[idx] = ParseValue(cell)
		}
		rows = append(rows, row)
	}

	log.Debug().Str("Sheet", sheet).Int("NumRecords", len(rows)).Msg("read workbook")

	return NewTable(header, rows)
}

func dropBlankRows(records [][]string) [][]string {
	kept := make([][]string, 0, len(records))
	for _, record := range records {
		for _, cell := range record {
			if strings.TrimSpace(cell) != "" {
				kept = append(kept, record)
				break
			}
		}
	}
	return kept
}
