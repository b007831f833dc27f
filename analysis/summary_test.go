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
package analysis_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvdash/analysis"
)

var _ = Describe("Summary", func() {
	It("carries the clustering run results by default", func() {
		summary := analysis.DefaultSummary()
		Expect(summary.Clustering.K).To(Equal(3))
		Expect(summary.Clustering.Silhouette).To(Equal(0.8677934635376648))
		Expect(summary.Clustering.DBSCANClusters).To(Equal(1090))
		Expect(summary.Clustering.DBSCANNoise).To(Equal(7805))
		Expect(summary.Images).To(HaveLen(3))
		Expect(summary.Images[0]).To(Equal(analysis.Image{Path: "download (3).png", Caption: "PCA 2D colored by KMeans (k=3)"}))
	})

	Context("with an image directory", func() {
		var dir string

		BeforeEach(func() {
			var err error
			dir, err = os.MkdirTemp("", "pvdash-analysis")
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(os.RemoveAll, dir)
		})

		It("resolves relative paths against the directory", func() {
			summary := analysis.DefaultSummary()
			summary.ImageDir = dir
			Expect(summary.Resolve(summary.Images[1])).To(Equal(filepath.Join(dir, "download (2).png")))
			Expect(summary.Resolve(analysis.Image{Path: "/abs/chart.png"})).To(Equal("/abs/chart.png"))
		})

		It("lists only the images that are absent", func() {
			summary := analysis.DefaultSummary()
			summary.ImageDir = dir
			Expect(os.WriteFile(filepath.Join(dir, "download (3).png"), []byte("png"), 0o644)).To(Succeed())

			missing := summary.MissingImages()
			Expect(missing).To(HaveLen(2))
			Expect(missing[0].Path).To(Equal("download (2).png"))
			Expect(missing[1].Path).To(Equal("download (1).png"))
		})
	})
})
