// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Set at build time via -ldflags.
var (
	Version = "devel"
	Time    = "unknown"
	Commit  = "unknown"
)

func String() string {
	buf := new(strings.Builder)

	fmt.Fprintln(buf, "Version:\t", Version)
	fmt.Fprintln(buf, "Built time:\t", Time)
	fmt.Fprintln(buf, "Git commit:\t", Commit)
	fmt.Fprintln(buf, "Go Arch:\t", runtime.GOARCH)
	fmt.Fprintln(buf, "Go OS:\t\t", runtime.GOOS)
	fmt.Fprintln(buf, "Go Version:\t", runtime.Version())

	return buf.String()
}
