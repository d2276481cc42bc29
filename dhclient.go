// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package baseline

import (
	"bytes"
	"regexp"
)

// The canonical directive pair that points DHCP supplied DNS at the
// systemd-resolved stub listener.
const (
	dhclientSupersede = "supersede domain-name-servers " + StubListenerAddr + ";"
	dhclientPrepend   = "prepend domain-name-servers " + StubListenerAddr + ";"
)

var dhclientDirectiveRe = regexp.MustCompile(`^\s*(supersede|prepend)\s+domain-name-servers\b`)

// EnsureStubDirectives computes the desired dhclient configuration from
// the current content: any pre-existing domain-name-servers override
// directives are stripped, then the canonical pair is appended. The
// result is a fixed point, applying the function to its own output
// yields identical bytes.
func EnsureStubDirectives(current []byte) []byte {
	var b bytes.Buffer
	for _, line := range bytes.Split(current, []byte("\n")) {
		if dhclientDirectiveRe.Match(line) {
			continue
		}
		b.Write(line)
		b.WriteByte('\n')
	}

	// Trim the trailing blank lines the split/join round trip and
	// repeated runs would otherwise accumulate.
	out := bytes.TrimRight(b.Bytes(), "\n")
	if len(out) > 0 {
		out = append(out, '\n')
	}
	out = append(out, dhclientSupersede...)
	out = append(out, '\n')
	out = append(out, dhclientPrepend...)
	out = append(out, '\n')
	return out
}

// HasStubDirectives reports whether the dhclient configuration contains
// both required override directives.
func HasStubDirectives(content []byte) bool {
	return bytes.Contains(content, []byte(dhclientSupersede)) &&
		bytes.Contains(content, []byte(dhclientPrepend))
}
