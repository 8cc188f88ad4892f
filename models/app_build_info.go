// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// AppBuildInfo is the build metadata stamped into the binary by linker flags.
// It is shown by the version command and, when present, becomes the version
// written into export packages.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: strings.TrimSpace(buildVersion),
		buildDate:    strings.TrimSpace(buildDate),
		buildCommit:  strings.TrimSpace(buildCommit),
	}
}

func (a AppBuildInfo) BuildVersion() string { return a.buildVersion }

func (a AppBuildInfo) BuildDate() string { return a.buildDate }

func (a AppBuildInfo) BuildCommit() string { return a.buildCommit }

// PackageVersion returns the build version, or fallback for development
// builds that were not stamped.
func (a AppBuildInfo) PackageVersion(fallback string) string {
	if a.buildVersion == "" || a.buildVersion == "N/A" {
		return fallback
	}
	return a.buildVersion
}
