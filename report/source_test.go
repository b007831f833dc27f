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
package report_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvdash/dataset"
	"github.com/penny-vault/pvdash/report"
)

var _ = Describe("SourceSummary", func() {
	It("describes the dataset", func() {
		board := fixtureBoard(fixtureCSV)
		src := &dataset.Source{
			Path:    "/data/analysis_outputs_full.csv",
			Format:  dataset.FormatCSV,
			Size:    2048,
			ModTime: time.Now().Add(-2 * time.Hour),
		}

		md, err := report.SourceSummary(src, board)
		Expect(err).NotTo(HaveOccurred())
		Expect(md).To(HavePrefix("# analysis_outputs_full.csv\n"))
		Expect(md).To(ContainSubstring("Format: csv"))
		Expect(md).To(ContainSubstring("Size: 2.0 kB"))
		Expect(md).To(ContainSubstring("Shape before cleaning: (5, 7)"))
		Expect(md).To(ContainSubstring("Duplicate cik/year rows removed: 1"))
		Expect(md).To(MatchRegexp(`Last Modified: .*hours ago`))
		Expect(md).To(ContainSubstring("Growth (`growth_score`, key `growth`)"))
		Expect(md).To(ContainSubstring("## Missing metrics"))
		Expect(md).To(ContainSubstring("2020, 2021 (2)"))
	})

	It("handles an unknown modification time", func() {
		board := fixtureBoard(fixtureCSV)
		md, err := report.SourceSummary(&dataset.Source{Path: "x.csv", Format: dataset.FormatCSV}, board)
		Expect(err).NotTo(HaveOccurred())
		Expect(md).To(ContainSubstring("Last Modified: Unknown"))
	})
})
