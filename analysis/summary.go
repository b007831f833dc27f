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
package analysis

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Clustering holds the results of the upstream clustering run
type Clustering struct {
	K              int     `mapstructure:"k" toml:"k" json:"k"`
	Silhouette     float64 `mapstructure:"silhouette" toml:"silhouette" json:"silhouette"`
	DBSCANClusters int     `mapstructure:"dbscan_clusters" toml:"dbscan_clusters" json:"dbscan_clusters"`
	DBSCANNoise    int     `mapstructure:"dbscan_noise" toml:"dbscan_noise" json:"dbscan_noise"`
}

func (clustering Clustering) MarshalZerologObject(e *zerolog.Event) {
	e.Int("K", clustering.K)
	e.Float64("Silhouette", clustering.Silhouette)
	e.Int("DBSCANClusters", clustering.DBSCANClusters)
	e.Int("DBSCANNoise", clustering.DBSCANNoise)
}

// Image is a chart produced by the clustering run
type Image struct {
	Path    string `mapstructure:"path" toml:"path" json:"path"`
	Caption string `mapstructure:"caption" toml:"caption" json:"caption"`
}

// Summary is everything the dashboard shows about the clustering run. Its
// values are produced elsewhere and only displayed here.
type Summary struct {
	Clustering Clustering `mapstructure:"clustering" toml:"clustering" json:"clustering"`
	Images     []Image    `mapstructure:"images" toml:"images" json:"images"`

	// ImageDir is prepended to relative image paths
	ImageDir string `mapstructure:"image_dir" toml:"image_dir,omitempty" json:"image_dir,omitempty"`
}

func DefaultSummary() Summary {
	return Summary{
		Clustering: Clustering{
			K:              3,
			Silhouette:     0.8677934635376648,
			DBSCANClusters: 1090,
			DBSCANNoise:    7805,
		},
		Images: []Image{
			{Path: "download (3).png", Caption: "PCA 2D colored by KMeans (k=3)"},
			{Path: "download (2).png", Caption: "PCA 2D colored by DBSCAN"},
			{Path: "download (1).png", Caption: "t-SNE (sample) colored by KMeans clusters"},
		},
	}
}

// Resolve returns the location of an image on disk
func (summary Summary) Resolve(img Image) string {
	if summary.ImageDir == "" || filepath.IsAbs(img.Path) {
		return img.Path
	}
	return filepath.Join(summary.ImageDir, img.Path)
}

// MissingImages lists the images whose file cannot be found. A missing image
// is logged and otherwise ignored.
func (summary Summary) MissingImages() []Image {
	missing := make([]Image, 0)
	for _, img := range summary.Images {
		fn := summary.Resolve(img)
		if _, err := os.Stat(fn); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Warn().Err(err).Str("FileName", fn).Msg("cannot stat clustering image")
			}
			missing = append(missing, img)
		}
	}

	for _, img := range missing {
		log.Warn().Str("FileName", summary.Resolve(img)).Str("Caption", img.Caption).Msg("clustering image not found")
	}

	return missing
}
