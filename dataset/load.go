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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Format string

const (
	FormatAuto    Format = "auto"
	FormatCSV     Format = "csv"
	FormatTSV     Format = "tsv"
	FormatXLSX    Format = "xlsx"
	FormatParquet Format = "parquet"
)

// Formats lists every format LoadFile understands, excluding auto
var Formats = []Format{FormatCSV, FormatTSV, FormatXLSX, FormatParquet}

// LoadConfig controls how a source file is read
type LoadConfig struct {
	// Format of the source; empty or auto detects the format from the extension
	Format Format

	// Sheet to read from a workbook, defaults to the first sheet
	Sheet string

	// Delimiter overrides the field separator for delimited text
	Delimiter rune
}

// Source describes a file on disk before it is loaded
type Source struct {
	Path    string
	Format  Format
	Size    int64
	ModTime time.Time
}

func (src *Source) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Path", src.Path)
	e.Str("Format", string(src.Format))
	e.Int64("Size", src.Size)
	e.Time("ModTime", src.ModTime)
}

// ParseFormat converts a user supplied format name into a Format
func ParseFormat(name string) (Format, error) {
	normalized := Format(strings.ToLower(strings.TrimSpace(name)))
	switch normalized {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatCSV, FormatTSV, FormatXLSX, FormatParquet:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// DetectFormat resolves the format of path. An explicit format other than auto
// always wins over the file extension.
func DetectFormat(path string, requested Format) (Format, error) {
	if requested != "" && requested != FormatAuto {
		return ParseFormat(string(requested))
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".parquet", ".pq":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("%w: cannot infer format of %s", ErrUnsupportedFormat, path)
	}
}

// Stat inspects a source file without reading it
func Stat(path string, cfg LoadConfig) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, sourceError(path, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrSourceNotFound, path)
	}

	format, err := DetectFormat(path, cfg.Format)
	if err != nil {
		return nil, err
	}

	return &Source{
		Path:    path,
		Format:  format,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// LoadFile reads the tabular file at path into a Table. The first row is the
// header; NA tokens become null cells and numeric-looking cells become numbers.
func LoadFile(path string, cfg LoadConfig) (*Table, error) {
	src, err := Stat(path, cfg)
	if err != nil {
		return nil, err
	}

	log.Debug().Object("Source", src).Msg("loading dataset")

	var table *Table
	switch src.Format {
	case FormatCSV, FormatTSV:
		table, err = readDelimitedFile(src, cfg)
	case FormatXLSX:
		table, err = readXLSX(path, cfg.Sheet)
	case FormatParquet:
		table, err = readParquet(path)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, src.Format)
	}

	if err != nil {
		return nil, err
	}

	log.Debug().Object("Table", table).Msg("dataset loaded")
	return table, nil
}

func readDelimitedFile(src *Source, cfg LoadConfig) (*Table, error) {
	fh, err := os.Open(src.Path)
	if err != nil {
		return nil, sourceError(src.Path, err)
	}
	defer fh.Close()

	if cfg.Delimiter == 0 && src.Format == FormatTSV {
		cfg.Delimiter = '\t'
	}

	return ReadCSV(fh, cfg)
}

// sourceError maps filesystem errors onto ErrSourceNotFound
func sourceError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %s: %w", ErrSourceNotFound, path, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrMalformedSource, path, err)
}
