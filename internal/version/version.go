// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package version reports the build of lexiscan and the versions of the
// language detector and dictionary it was built against.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set with -ldflags "-X lexiscan/internal/version.Version=..."; when left at
// their defaults they are filled from the embedded build information.
var (
	Version   = "0.0.0-development"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// components lists the modules whose versions change results
var components = []struct {
	name   string
	module string
}{
	{"lingua", "github.com/pemistahl/lingua-go"},
	{"kagome", "github.com/ikawaha/kagome/v2"},
	{"ipa-dict", "github.com/ikawaha/kagome-dict/ipa"},
	{"excelize", "github.com/xuri/excelize/v2"},
}

// Build describes one binary
type Build struct {
	Version    string            `json:"version"`
	Commit     string            `json:"commit"`
	Date       string            `json:"date"`
	GoVersion  string            `json:"go_version"`
	Platform   string            `json:"platform"`
	Components map[string]string `json:"components,omitempty"`
}

// Current returns the build of the running binary
func Current() Build {
	info, _ := debug.ReadBuildInfo()
	return fromBuildInfo(info)
}

func fromBuildInfo(info *debug.BuildInfo) Build {
	b := Build{
		Version:   Version,
		Commit:    GitCommit,
		Date:      BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if info == nil {
		return b
	}

	if b.Version == "0.0.0-development" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.Version = strings.TrimPrefix(info.Main.Version, "v")
	}
	var modified bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "unknown" {
				b.Commit = s.Value
				if len(b.Commit) > 12 {
					b.Commit = b.Commit[:12]
				}
			}
		case "vcs.time":
			if b.Date == "unknown" {
				b.Date = s.Value
			}
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if modified && b.Commit != "unknown" && !strings.HasSuffix(b.Commit, "-dirty") {
		b.Commit += "-dirty"
	}

	deps := make(map[string]string, len(info.Deps))
	for _, dep := range info.Deps {
		if dep.Replace != nil {
			dep = dep.Replace
		}
		deps[dep.Path] = dep.Version
	}
	for _, c := range components {
		if v, ok := deps[c.module]; ok {
			if b.Components == nil {
				b.Components = make(map[string]string)
			}
			b.Components[c.name] = v
		}
	}
	return b
}

// String formats the build on one line, followed by the component versions
// in a fixed order
func (b Build) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "lexiscan %s (commit: %s, built: %s, go: %s, platform: %s)",
		b.Version, b.Commit, b.Date, b.GoVersion, b.Platform)
	for _, c := range components {
		if v, ok := b.Components[c.name]; ok {
			fmt.Fprintf(&sb, "\n  %s %s", c.name, v)
		}
	}
	return sb.String()
}

// Info returns formatted version information
func Info() string {
	return Current().String()
}
