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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/penny-vault/pvdash/dataset"
	"github.com/penny-vault/pvdash/report"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file for pvdash",
	Run: func(cmd *cobra.Command, args []string) {
		conf := currentSettings()
		topN := strconv.Itoa(conf.Ranking.TopN)
		revenueTopN := strconv.Itoa(conf.Ranking.RevenueTopN)

		formatOptions := []huh.Option[string]{huh.NewOption("detect from extension", string(dataset.FormatAuto))}
		for _, format := range dataset.Formats {
			formatOptions = append(formatOptions, huh.NewOption(string(format), string(format)))
		}

		styleOptions := make([]huh.Option[string], 0, len(report.Styles))
		for _, style := range report.Styles {
			styleOptions = append(styleOptions, huh.NewOption(style, style))
		}

		form := huh.NewForm(
			// Where the dataset lives and how to read it
			huh.NewGroup(
				huh.NewInput().
					Title("Path to the analysis outputs file:").
					Value(&conf.Dataset.Path).
					Validate(func(path string) error {
						_, err := dataset.Stat(path, dataset.LoadConfig{Format: dataset.Format(conf.Dataset.Format)})
						if errors.Is(err, dataset.ErrUnsupportedFormat) {
							// the format can still be chosen explicitly below
							return nil
						}
						return err
					}),

				huh.NewSelect[string]().
					Title("File format:").
					Options(formatOptions...).
					Value(&conf.Dataset.Format),

				huh.NewInput().
					Title("Worksheet to read from xlsx files (blank for the first sheet):").
					Value(&conf.Dataset.Sheet),
			),

			// How the dashboard looks
			huh.NewGroup(
				huh.NewInput().
					Title("How many companies should each top list show?").
					Value(&topN).
					Validate(positiveInt),

				huh.NewInput().
					Title("How many companies should the revenue leaderboard show?").
					Value(&revenueTopN).
					Validate(positiveInt),

				huh.NewSelect[string]().
					Title("Render style:").
					Options(styleOptions...).
					Value(&conf.Render.Style),
			),
		)

		err := form.Run()
		if err != nil {
			log.Fatal().Err(err).Msg("error gathering dashboard settings")
		}

		conf.Ranking.TopN, _ = strconv.Atoi(topN)
		conf.Ranking.RevenueTopN, _ = strconv.Atoi(revenueTopN)

		configFN := cfgFile
		if configFN == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				log.Fatal().Err(err).Msg("could not determine user home directory")
			}
			configFN = filepath.Join(home, ".pvdash.toml")
		}

		if _, err := os.Stat(configFN); err == nil {
			overwrite := false
			confirmForm := huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("%s already exists. Overwrite it?", configFN)).
						Value(&overwrite),
				),
			)

			if err := confirmForm.Run(); err != nil {
				log.Fatal().Err(err).Msg("failed to read answer")
			}

			if !overwrite {
				log.Info().Msg("Not saving configuration")
				return
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			log.Fatal().Err(err).Str("FileName", configFN).Msg("could not check for existing config file")
		}

		log.Info().Str("ConfigFile", configFN).Msg("Saving dashboard settings to config file")
		configData, err := toml.Marshal(conf)
		if err != nil {
			log.Fatal().Err(err).Msg("could not marshal configuration data")
		}

		err = os.WriteFile(configFN, configData, 0644)
		if err != nil {
			log.Fatal().Err(err).Str("FileName", configFN).Msg("could not save configuration to file")
		}

		fmt.Println(report.Success("pvdash has been configured, run pvdash show to open the dashboard"))
	},
}

func positiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return errors.New("enter a whole number")
	}

	if n <= 0 {
		return errors.New("must be greater than zero")
	}

	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
