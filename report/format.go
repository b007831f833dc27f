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
package report

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/penny-vault/pvdash/dataset"
)

var printer = message.NewPrinter(language.English)

// identifier columns are printed verbatim so that years don't get grouped
var identifierColumns = map[string]bool{
	dataset.CIKColumn:  true,
	dataset.YearColumn: true,
}

// formatCell renders a value for display in a table
func formatCell(column string, val dataset.Value) string {
	f, ok := val.Float()
	if !ok || identifierColumns[column] || math.IsInf(f, 0) {
		return val.String()
	}

	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return printer.Sprintf("%d", int64(f))
	}

	return printer.Sprintf("%.4f", f)
}

// escapeMarkdown keeps cell text from breaking a markdown table
func escapeMarkdown(s string) string {
	return strings.NewReplacer("|", "\\|", "\n", " ").Replace(s)
}
