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
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/common"
	"github.com/xitongsys/parquet-go/reader"
)

const parquetReadParallelism = 4

// readParquet loads every leaf column of a flat parquet file
func readParquet(path string) (*Table, error) {
	fh, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, sourceError(path, err)
	}
	defer fh.Close()

	pr, err := reader.NewParquetColumnReader(fh, parquetReadParallelism)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedSource, path, err)
	}
	defer pr.ReadStop()

	numRows := pr.GetNumRows()
	inPaths := pr.SchemaHandler.ValueColumns

	header := make([]string, len(inPaths))
	columns := make([][]interface{}, len(inPaths))
	for idx, inPath := range inPaths {
		exPath, ok := pr.SchemaHandler.InPathToExPath[inPath]
		if !ok {
			exPath = inPath
		}
		parts := common.StrToPath(exPath)
		header[idx] = parts[len(parts)-1]

		if numRows == 0 {
			continue
		}

		values, _, _, err := pr.ReadColumnByIndex(int64(idx), numRows)
		if err != nil {
			return nil, fmt.Errorf("%w: column %s: %w", ErrMalformedSource, header[idx], err)
		}

		if int64(len(values)) != numRows {
			return nil, fmt.Errorf("%w: column %s has %d values, expected %d (nested columns are not supported)", ErrMalformedSource, header[idx], len(values), numRows)
		}

		columns[idx] = values
	}

	rows := make([]Row, numRows)
	for rowIdx := range rows {
		row := make(Row, len(header))
		for colIdx := range header {
			row[colIdx] = parquetValue(columns[colIdx][rowIdx])
		}
		rows[rowIdx] = row
	}

	log.Debug().Str("Path", path).Int64("NumRows", numRows).Int("NumColumns", len(header)).Msg("read parquet file")

	return NewTable(header, rows)
}

func parquetValue(raw interface{}) Value {
	switch v := raw.(type) {
	case nil:
		return NullValue()
	case bool:
		return TextValue(strconv.FormatBool(v))
	case int32:
		return NumberValue(float64(v))
	case int64:
		return NumberValue(float64(v))
	case int:
		return NumberValue(float64(v))
	case float32:
		return NumberValue(float64(v))
	case float64:
		return NumberValue(v)
	case string:
		return ParseValue(v)
	case []byte:
		return ParseValue(string(v))
	default:
		return ParseValue(fmt.Sprint(v))
	}
}
