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
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

type Kind int

const (
	Null Kind = iota
	Number
	Text
)

func (kind Kind) String() string {
	switch kind {
	case Number:
		return "number"
	case Text:
		return "text"
	default:
		return "null"
	}
}

// naTokens are the cell values read as missing
var naTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"n/a":  true,
	"NaN":  true,
	"nan":  true,
	"-NaN": true,
	"-nan": true,
	"null": true,
	"NULL": true,
	"None": true,
	"#N/A": true,
	"<NA>": true,
}

// Value is a single table cell. The zero value is null.
type Value struct {
	kind Kind
	num  float64
	str  string
}

func NullValue() Value {
	return Value{}
}

// NumberValue returns a numeric cell; NaN is stored as null
func NumberValue(f float64) Value {
	if math.IsNaN(f) {
		return Value{}
	}
	return Value{kind: Number, num: f}
}

func TextValue(s string) Value {
	return Value{kind: Text, str: s}
}

// ParseValue converts a raw cell into a typed value
func ParseValue(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if naTokens[trimmed] {
		return Value{}
	}

	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return NumberValue(f)
	}

	return TextValue(raw)
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == Null
}

// Float returns the numeric content of the value and whether it is a number
func (v Value) Float() (float64, bool) {
	if v.kind != Number {
		return 0, false
	}
	return v.num, true
}

// String formats the value for display. Integral numbers print without a
// fractional part so that years and CIKs read naturally.
func (v Value) String() string {
	switch v.kind {
	case Number:
		return formatNumber(v.num)
	case Text:
		return v.str
	default:
		return ""
	}
}

// Equal reports whether two values are the same cell value. Null equals null.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case Number:
		return v.num == other.num
	case Text:
		return v.str == other.str
	default:
		return true
	}
}

// Compare orders values: null < number < text; numbers numerically and text
// lexically. It returns -1, 0 or +1.
func (v Value) Compare(other Value) int {
	if v.kind != other.kind {
		if v.kind < other.kind {
			return -1
		}
		return 1
	}

	switch v.kind {
	case Number:
		switch {
		case v.num < other.num:
			return -1
		case v.num > other.num:
			return 1
		}
	case Text:
		return strings.Compare(v.str, other.str)
	}

	return 0
}

// key is a canonical form used for hashing composite keys
func (v Value) key() string {
	switch v.kind {
	case Number:
		// -0 and +0 are the same key
		if v.num == 0 {
			return "n:0"
		}
		return "n:" + strconv.FormatFloat(v.num, 'g', -1, 64)
	case Text:
		return "s:" + v.str
	default:
		return "null"
	}
}

// MarshalCSV implements gocsv.TypeMarshaller
func (v Value) MarshalCSV() (string, error) {
	return v.String(), nil
}

// MarshalJSON writes numbers as JSON numbers, text as strings and null as null
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Number:
		if math.IsInf(v.num, 0) {
			return json.Marshal(v.String())
		}
		return []byte(strconv.FormatFloat(v.num, 'f', -1, 64)), nil
	case Text:
		return json.Marshal(v.str)
	default:
		return []byte("null"), nil
	}
}

func formatNumber(f float64) string {
	if math.IsInf(f, 1) {
		return "inf"
	}

	if math.IsInf(f, -1) {
		return "-inf"
	}

	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}
