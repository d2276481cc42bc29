// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package apt

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/debtools/baseline/osrelease"
)

// Mirror is a package-repository host.
type Mirror struct {
	Name string
	// Host paths per distribution ID, without scheme.
	Debian string
	Ubuntu string
}

// URL returns the mirror URL for the distribution.
func (m Mirror) URL(id, scheme string) (string, error) {
	var host string
	switch id {
	case "debian":
		host = m.Debian
	case "ubuntu":
		host = m.Ubuntu
	}
	if host == "" {
		return "", fmt.Errorf("mirror %s does not serve %s", m.Name, id)
	}
	return scheme + "://" + host, nil
}

//nolint:gochecknoglobals // immutable built-in catalog
var mirrors = []Mirror{
	{Name: "official", Debian: "deb.debian.org/debian", Ubuntu: "archive.ubuntu.com/ubuntu"},
	{Name: "cloudflare", Debian: "deb.debian.org/debian", Ubuntu: "mirrors.cloudflare.com/ubuntu"},
	{Name: "ustc", Debian: "mirrors.ustc.edu.cn/debian", Ubuntu: "mirrors.ustc.edu.cn/ubuntu"},
	{Name: "tuna", Debian: "mirrors.tuna.tsinghua.edu.cn/debian", Ubuntu: "mirrors.tuna.tsinghua.edu.cn/ubuntu"},
	{Name: "aliyun", Debian: "mirrors.aliyun.com/debian", Ubuntu: "mirrors.aliyun.com/ubuntu"},
}

// Mirrors returns a copy of the built-in mirror catalog.
func Mirrors() []Mirror {
	c := make([]Mirror, len(mirrors))
	copy(c, mirrors)
	return c
}

// LookupMirror finds a catalog mirror by name.
func LookupMirror(name string) (Mirror, bool) {
	for _, m := range mirrors {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return Mirror{}, false
}

// SourcesConfig describes a generated source list.
type SourcesConfig struct {
	OS     osrelease.Info
	URL    string // mirror URL including scheme
	DEB822 bool   // render the structured .sources format
}

// Components returns the repository components for the distribution.
func (c SourcesConfig) Components() string {
	if c.OS.ID == "ubuntu" {
		return "main restricted universe multiverse"
	}
	return "main contrib non-free non-free-firmware"
}

// Suites returns the release suites, base plus updates and security.
func (c SourcesConfig) Suites() []string {
	cn := c.OS.Codename
	if c.OS.ID == "ubuntu" {
		return []string{cn, cn + "-updates", cn + "-backports", cn + "-security"}
	}
	return []string{cn, cn + "-updates", cn + "-backports"}
}

// Render emits the source list document, either DEB822 .sources
// stanzas or the legacy single-line format.
func (c SourcesConfig) Render() []byte {
	if c.DEB822 {
		return c.renderDEB822()
	}
	return c.renderLegacy()
}

func (c SourcesConfig) renderDEB822() []byte {
	var b bytes.Buffer
	b.WriteString("# Generated by baseline. Changes will be overwritten.\n")
	fmt.Fprintf(&b, "Types: deb\nURIs: %s\nSuites: %s\nComponents: %s\nSigned-By: %s\n",
		c.URL, strings.Join(c.Suites(), " "), c.Components(), c.keyring())

	if sec := c.securityStanza(); sec != "" {
		b.WriteString("\n")
		b.WriteString(sec)
	}
	return b.Bytes()
}

func (c SourcesConfig) renderLegacy() []byte {
	var b bytes.Buffer
	b.WriteString("# Generated by baseline. Changes will be overwritten.\n")
	for _, suite := range c.Suites() {
		fmt.Fprintf(&b, "deb %s %s %s\n", c.URL, suite, c.Components())
	}
	if c.OS.ID == "debian" {
		fmt.Fprintf(&b, "deb %s %s-security %s\n", c.securityURL(), c.OS.Codename, c.Components())
	}
	return b.Bytes()
}

// Debian security updates come from a dedicated host, never from the
// mirror.
func (c SourcesConfig) securityStanza() string {
	if c.OS.ID != "debian" {
		return ""
	}
	return fmt.Sprintf("Types: deb\nURIs: %s\nSuites: %s-security\nComponents: %s\nSigned-By: %s\n",
		c.securityURL(), c.OS.Codename, c.Components(), c.keyring())
}

func (c SourcesConfig) securityURL() string {
	return "https://security.debian.org/debian-security"
}

func (c SourcesConfig) keyring() string {
	if c.OS.ID == "ubuntu" {
		return "/usr/share/keyrings/ubuntu-archive-keyring.gpg"
	}
	return "/usr/share/keyrings/debian-archive-keyring.gpg"
}
