// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package osrelease detects the host distribution from /etc/os-release.
package osrelease

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const Path = "/etc/os-release"

// Info describes the host distribution.
type Info struct {
	ID        string // "debian", "ubuntu"
	VersionID string // "12", "22.04"
	Codename  string // "bookworm", "jammy"
}

func (i Info) String() string {
	return i.ID + " " + i.VersionID
}

// Supported reports whether the distribution is one the tools know how
// to configure.
func (i Info) Supported() bool {
	return i.ID == "debian" || i.ID == "ubuntu"
}

// LegacyResolvconf reports whether the release ships the resolvconf
// package pre-installed alongside systemd-resolved, where it must be
// removed before the daemon can own the resolver file.
func (i Info) LegacyResolvconf() bool {
	return i.ID == "ubuntu" && i.VersionID == "18.04"
}

// Detect reads the host os-release file. Failure to read or parse it is
// a hard error: every tool refuses to mutate a system it cannot
// identify.
func Detect() (Info, error) {
	f, err := os.Open(Path)
	if err != nil {
		return Info{}, fmt.Errorf("detect host OS: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads os-release formatted data.
func Parse(r io.Reader) (Info, error) {
	var info Info

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		val = strings.Trim(val, `"'`)

		switch key {
		case "ID":
			info.ID = strings.ToLower(val)
		case "VERSION_ID":
			info.VersionID = val
		case "VERSION_CODENAME":
			info.Codename = strings.ToLower(val)
		}
	}
	if err := sc.Err(); err != nil {
		return Info{}, fmt.Errorf("parse os-release: %w", err)
	}
	if info.ID == "" {
		return Info{}, fmt.Errorf("parse os-release: missing ID field")
	}

	return info, nil
}
