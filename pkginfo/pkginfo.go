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
package pkginfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sort"

	"github.com/rs/zerolog/log"
)

const Program = "pvdash"

// Set with -ldflags at build time
var (
	BuildDate  string
	CommitHash string
	Version    string
)

// BuildInfo describes the running binary
type BuildInfo struct {
	Program    string   `json:"program"`
	Version    string   `json:"version"`
	OSArch     string   `json:"os_arch"`
	BuildDate  string   `json:"build_date"`
	CommitHash string   `json:"commit"`
	GoVersion  string   `json:"go_version"`
	Deps       []string `json:"deps,omitempty"`
}

// Info collects build information, optionally including linked modules
func Info(withDeps bool) BuildInfo {
	info := BuildInfo{
		Program:    Program,
		Version:    versionOrDev(),
		OSArch:     runtime.GOOS + "/" + runtime.GOARCH,
		BuildDate:  BuildDate,
		CommitHash: CommitHash,
		GoVersion:  runtime.Version(),
	}

	if withDeps {
		info.Deps = GetDependencyList()
	}

	return info
}

// BuildVersionString returns a version info string suitable for printing on the command line
func BuildVersionString() string {
	info := Info(false)
	return fmt.Sprintf(`%s %s %s

Build Date: %s
Commit: %s
Built with: %s`, info.Program, info.Version, info.OSArch, info.BuildDate, info.CommitHash, info.GoVersion)
}

func versionOrDev() string {
	if Version != "" {
		return Version
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok && buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		return buildInfo.Main.Version
	}

	return "dev"
}

// GetDependencyList returns an array of all dependencies linked in with this program
// each string is of the form `package="version"`
func GetDependencyList() []string {
	var deps []string

	formatDep := func(path, version string) string {
		return fmt.Sprintf("%s=%q", path, version)
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		log.Error().Msg("could not get package build info")
		return deps
	}

	for _, dep := range buildInfo.Deps {
		deps = append(deps, formatDep(dep.Path, dep.Version))
	}

	sort.Strings(deps)

	return deps
}
