// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package sysctl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRenderIPv6(t *testing.T) {
	golden := `# Generated by baseline. Changes will be overwritten.
net.ipv6.conf.all.disable_ipv6 = 1
net.ipv6.conf.default.disable_ipv6 = 1
net.ipv6.conf.lo.disable_ipv6 = 1
`
	if diff := cmp.Diff(string(RenderIPv6(true)), golden); diff != "" {
		t.Errorf("unexpected document (-got +want):\n%s", diff)
	}

	golden = `# Generated by baseline. Changes will be overwritten.
net.ipv6.conf.all.disable_ipv6 = 0
net.ipv6.conf.default.disable_ipv6 = 0
net.ipv6.conf.lo.disable_ipv6 = 0
`
	if diff := cmp.Diff(string(RenderIPv6(false)), golden); diff != "" {
		t.Errorf("unexpected document (-got +want):\n%s", diff)
	}
}

func TestIPv6Disabled(t *testing.T) {
	dir := t.TempDir()
	node := filepath.Join(dir, "disable_ipv6")

	tests := []struct {
		content string
		want    bool
	}{
		{"1\n", true},
		{"0\n", false},
		{"1", true},
	}
	for _, tc := range tests {
		if err := os.WriteFile(node, []byte(tc.content), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := IPv6Disabled(node)
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.want {
			t.Errorf("IPv6Disabled(%q)=%v, want %v", tc.content, got, tc.want)
		}
	}

	// Kernels without IPv6 have no node at all.
	got, err := IPv6Disabled(filepath.Join(dir, "missing"))
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Error("missing node should read as disabled")
	}
}
