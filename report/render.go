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
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/penny-vault/pvdash/ranking"
)

var ErrUnknownStyle = errors.New("unknown render style")

// Styles accepted by Render
var Styles = []string{"auto", "dark", "light", "notty", "ascii", "dracula", "pink"}

type RenderOptions struct {
	// Style is a glamour standard style name or auto
	Style string

	// Width to wrap text at
	Width int
}

func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Style: "auto",
		Width: 100,
	}
}

// Render converts a markdown document into styled terminal output
func Render(markdown string, opts RenderOptions) (string, error) {
	style := strings.ToLower(strings.TrimSpace(opts.Style))
	if style == "" {
		style = "auto"
	}

	known := false
	for _, s := range Styles {
		if s == style {
			known = true
			break
		}
	}

	if !known {
		return "", fmt.Errorf("%w: %s", ErrUnknownStyle, opts.Style)
	}

	styleOpt := glamour.WithStandardStyle(style)
	if style == "auto" {
		// detect background color and pick either the default dark or light theme
		styleOpt = glamour.WithAutoStyle()
	}

	width := opts.Width
	if width <= 0 {
		width = DefaultRenderOptions().Width
	}

	r, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	return r.Render(markdown)
}

var (
	bannerStyle  = lipgloss.NewStyle().Bold(true).BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 2)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	keywordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

// Banner draws a rounded box around the text
func Banner(text string) string {
	return bannerStyle.Render(text)
}

func Warning(text string) string {
	return warningStyle.Render("⚠ " + text)
}

func Success(text string) string {
	return successStyle.Render("✔ " + text)
}

func Keyword(text string) string {
	return keywordStyle.Render(text)
}

// YearBanner is the heading printed above a year's leaderboards
func YearBanner(report *ranking.YearReport) string {
	return printer.Sprintf("Year %s  %s companies  %d leaderboards",
		Keyword(report.Year.String()), Keyword(printer.Sprintf("%d", report.NumRows)), len(report.Rankings))
}
