// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package dns

import (
	"bufio"
	"bytes"
	"net/netip"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/debtools/baseline"
)

func TestPromptYesNo(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"", false}, // EOF
		{"whatever\n", false},
	}

	for _, tc := range tests {
		var out bytes.Buffer
		got := promptYesNo(bufio.NewReader(strings.NewReader(tc.input)), &out, "continue?")
		if got != tc.want {
			t.Errorf("promptYesNo(%q)=%v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestPromptSelectionListsCatalog(t *testing.T) {
	var out bytes.Buffer
	input := promptSelection(bufio.NewReader(strings.NewReader("1 2\n")), &out)
	if input != "1 2" {
		t.Errorf("input=%q, want %q", input, "1 2")
	}

	for _, p := range baseline.Catalog() {
		if !strings.Contains(out.String(), p.Name) {
			t.Errorf("catalog listing misses %s:\n%s", p.Name, out.String())
		}
	}
	if !strings.Contains(out.String(), "Custom") {
		t.Errorf("catalog listing misses the custom entry:\n%s", out.String())
	}
}

func TestCustomProviderFromFlags(t *testing.T) {
	c := command{
		customIPv4:    []netip.Addr{netip.MustParseAddr("10.0.0.53")},
		customTLSName: "dns.internal",
	}

	// Fully preseeded, must not read from the prompt.
	var out bytes.Buffer
	p, err := c.customProvider(bufio.NewReader(strings.NewReader("")), &out)
	if err != nil {
		t.Fatal(err)
	}

	want := &baseline.Provider{
		Name:    "Custom",
		IPv4:    []netip.Addr{netip.MustParseAddr("10.0.0.53")},
		TLSName: "dns.internal",
	}
	if diff := cmp.Diff(p, want, cmp.Comparer(func(a, b netip.Addr) bool { return a == b })); diff != "" {
		t.Errorf("unexpected provider (-got +want):\n%s", diff)
	}
	if out.Len() != 0 {
		t.Errorf("prompted despite preseeded flags:\n%s", out.String())
	}
}

func TestCustomProviderPrompted(t *testing.T) {
	c := command{}

	input := "10.0.0.53 10.0.0.54\ndns.internal\n"
	var out bytes.Buffer
	p, err := c.customProvider(bufio.NewReader(strings.NewReader(input)), &out)
	if err != nil {
		t.Fatal(err)
	}

	if len(p.IPv4) != 2 {
		t.Errorf("IPv4=%v, want 2 endpoints", p.IPv4)
	}
	if p.TLSName != "dns.internal" {
		t.Errorf("TLSName=%q, want dns.internal", p.TLSName)
	}
}

func TestCustomProviderEmptyIPv4IsFatal(t *testing.T) {
	c := command{}

	_, err := c.customProvider(bufio.NewReader(strings.NewReader("\n\n")), new(bytes.Buffer))
	if err == nil {
		t.Fatal("expected error for empty IPv4 input")
	}
	if !baseline.IsFatal(err) {
		t.Errorf("err=%v, want fatal", err)
	}
}

func TestCommandFlags(t *testing.T) {
	cmd := Command()
	for _, name := range []string{"select", "custom-dns", "custom-dns6", "custom-tls-name", "ipv6", "force", "dry-run", "log-level"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("flag --%s not registered", name)
		}
	}
}
