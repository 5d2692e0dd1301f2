/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package version provides build information.
package version

import "runtime/debug"

// Version is the current version of Grimnir Planner.
// This is set at build time via ldflags:
//
//	-X github.com/friendsincode/grimnir_planner/internal/version.Version=X.Y.Z
var Version = "0.3.0"

// Commit returns the VCS revision embedded by the Go toolchain, or "unknown".
func Commit() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return "unknown"
}

// String renders the version for --version output.
func String() string {
	return Version + " (" + Commit() + ")"
}
