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

var interfacesDNSRe = regexp.MustCompile(`^\s*dns-(nameservers|search|domain)\b`)

// CommentDNSDirectives comments out legacy per-interface DNS directives
// in an ifupdown interfaces file so they cannot compete with
// systemd-resolved. Already commented lines are left untouched.
// It returns the rewritten content and whether anything changed.
func CommentDNSDirectives(current []byte) (out []byte, changed bool) {
	var b bytes.Buffer
	lines := bytes.Split(current, []byte("\n"))
	for i, line := range lines {
		if interfacesDNSRe.Match(line) {
			b.WriteString("# ")
			changed = true
		}
		b.Write(line)
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.Bytes(), changed
}
