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
package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/hako/durafmt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/penny-vault/pvdash/analysis"
	"github.com/penny-vault/pvdash/dataset"
	"github.com/penny-vault/pvdash/ranking"
	"github.com/penny-vault/pvdash/report"
)

// settings is the layout of the configuration file
type settings struct {
	Dataset datasetSettings `toml:"dataset"`
	Ranking rankingSettings `toml:"ranking"`
	Render  renderSettings  `toml:"render"`
	Log     logSettings     `toml:"log"`
}

type datasetSettings struct {
	Path   string `toml:"path"`
	Format string `toml:"format"`
	Sheet  string `toml:"sheet,omitempty"`
}

type rankingSettings struct {
	TopN        int `toml:"top_n"`
	RevenueTopN int `toml:"revenue_top_n"`
	Parallelism int `toml:"parallelism"`
}

type renderSettings struct {
	Style string `toml:"style"`
	Width int    `toml:"width"`
}

type logSettings struct {
	Level string `toml:"level"`
}

func setDefaults() {
	boardDefaults := ranking.DefaultOptions()
	renderDefaults := report.DefaultRenderOptions()

	viper.SetDefault("dataset.path", "analysis_outputs_full.csv")
	viper.SetDefault("dataset.format", string(dataset.FormatAuto))
	viper.SetDefault("dataset.sheet", "")
	viper.SetDefault("ranking.top_n", boardDefaults.TopN)
	viper.SetDefault("ranking.revenue_top_n", boardDefaults.RevenueTopN)
	viper.SetDefault("ranking.parallelism", boardDefaults.Parallelism)
	viper.SetDefault("render.style", renderDefaults.Style)
	viper.SetDefault("render.width", renderDefaults.Width)
	viper.SetDefault("log.level", "info")
}

// currentSettings collects the effective configuration
func currentSettings() settings {
	return settings{
		Dataset: datasetSettings{
			Path:   viper.GetString("dataset.path"),
			Format: viper.GetString("dataset.format"),
			Sheet:  viper.GetString("dataset.sheet"),
		},
		Ranking: rankingSettings{
			TopN:        viper.GetInt("ranking.top_n"),
			RevenueTopN: viper.GetInt("ranking.revenue_top_n"),
			Parallelism: viper.GetInt("ranking.parallelism"),
		},
		Render: renderSettings{
			Style: viper.GetString("render.style"),
			Width: viper.GetInt("render.width"),
		},
		Log: logSettings{
			Level: viper.GetString("log.level"),
		},
	}
}

func loadConfig() (dataset.LoadConfig, error) {
	format, err := dataset.ParseFormat(viper.GetString("dataset.format"))
	if err != nil {
		return dataset.LoadConfig{}, err
	}

	return dataset.LoadConfig{
		Format: format,
		Sheet:  viper.GetString("dataset.sheet"),
	}, nil
}

func boardOptions() ranking.Options {
	opts := ranking.DefaultOptions()
	opts.TopN = viper.GetInt("ranking.top_n")
	opts.RevenueTopN = viper.GetInt("ranking.revenue_top_n")
	opts.Parallelism = viper.GetInt("ranking.parallelism")
	return opts
}

func renderOptions() report.RenderOptions {
	return report.RenderOptions{
		Style: viper.GetString("render.style"),
		Width: viper.GetInt("render.width"),
	}
}

// analysisSummary overlays the analysis section of the config file on the
// values of the upstream clustering run
func analysisSummary() (analysis.Summary, error) {
	summary := analysis.DefaultSummary()
	if !viper.IsSet("analysis") {
		return summary, nil
	}

	if err := viper.UnmarshalKey("analysis", &summary); err != nil {
		return summary, err
	}

	return summary, nil
}

// loadBoard reads the configured dataset and prepares it for ranking
func loadBoard(opts ranking.Options) (*dataset.Source, *ranking.Board, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	path := viper.GetString("dataset.path")
	if path == "" {
		return nil, nil, errors.New("no dataset configured, pass --dataset or run pvdash init")
	}

	start := time.Now()

	src, err := dataset.Stat(path, cfg)
	if err != nil {
		return nil, nil, err
	}

	table, err := dataset.LoadFile(path, cfg)
	if err != nil {
		return nil, nil, err
	}

	board, err := ranking.NewBoard(table, opts)
	if err != nil {
		return nil, nil, err
	}

	log.Info().Object("Source", src).Object("Dedup", board.Dedup()).
		Str("LoadTime", durafmt.Parse(time.Since(start)).String()).Msg("dataset loaded")

	return src, board, nil
}

// yearReport computes the leaderboards for a year given on the command line
func yearReport(ctx context.Context, board *ranking.Board, year string) (*ranking.YearReport, error) {
	value := dataset.ParseValue(year)

	found := false
	for _, y := range board.Years() {
		if y.Equal(value) {
			found = true
			break
		}
	}

	if !found {
		log.Warn().Str("Year", year).Msg("year not present in dataset")
	}

	return board.Report(ctx, value)
}
