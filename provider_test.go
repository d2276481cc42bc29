// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package baseline

import (
	"net/netip"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		ipv6      bool
		names     []string
		defaulted bool
	}{
		{
			name:      "all invalid falls back to defaults",
			input:     "9 10",
			names:     []string{"Cloudflare", "Google", "AdGuard"},
			defaulted: true,
		},
		{
			name:      "empty input falls back to defaults",
			input:     "",
			names:     []string{"Cloudflare", "Google", "AdGuard"},
			defaulted: true,
		},
		{
			name:      "garbage tokens fall back to defaults",
			input:     "x y z",
			names:     []string{"Cloudflare", "Google", "AdGuard"},
			defaulted: true,
		},
		{
			name:  "order is preserved and first is primary",
			input: "3 1 2",
			names: []string{"Quad9", "Cloudflare", "Google"},
		},
		{
			name:  "duplicates are dropped keeping the first occurrence",
			input: "2 2 1 2",
			names: []string{"Google", "Cloudflare"},
		},
		{
			name:  "invalid tokens between valid ones are dropped silently",
			input: "0 1 nine 5 99",
			names: []string{"Cloudflare", "OpenDNS"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sel := ParseSelection(tc.input, nil, tc.ipv6)
			if diff := cmp.Diff(sel.Names(), tc.names); diff != "" {
				t.Errorf("unexpected providers (-got +want):\n%s", diff)
			}
			if sel.Defaulted != tc.defaulted {
				t.Errorf("Defaulted=%v, want %v", sel.Defaulted, tc.defaulted)
			}
		})
	}
}

func TestParseSelectionIPv6Gating(t *testing.T) {
	sel := ParseSelection("1 2", nil, false)
	for _, p := range sel.Providers {
		if len(p.IPv6) > 0 {
			t.Errorf("provider %s kept IPv6 endpoints %v with ipv6 disabled", p.Name, p.IPv6)
		}
	}

	sel = ParseSelection("1 2", nil, true)
	for _, p := range sel.Providers {
		if len(p.IPv6) == 0 {
			t.Errorf("provider %s lost its IPv6 endpoints with ipv6 enabled", p.Name)
		}
	}
}

func TestParseSelectionCustomProvider(t *testing.T) {
	custom := &Provider{
		Name: "Custom",
		IPv4: []netip.Addr{netip.MustParseAddr("10.0.0.53")},
	}

	sel := ParseSelection("6 1", custom, false)
	if diff := cmp.Diff(sel.Names(), []string{"Custom", "Cloudflare"}); diff != "" {
		t.Errorf("unexpected providers (-got +want):\n%s", diff)
	}
	if sel.Primary().Name != "Custom" {
		t.Errorf("primary is %s, want Custom", sel.Primary().Name)
	}

	// The custom index without a custom provider is just another
	// unknown token.
	sel = ParseSelection("6", nil, false)
	if !sel.Defaulted {
		t.Error("expected default substitution when custom index has no provider")
	}
}

func TestRequestsCustom(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"6", true},
		{"1 6 2", true},
		{"1 2", false},
		{"66", false},
		{"", false},
	}

	for _, tc := range tests {
		if got := RequestsCustom(tc.input); got != tc.want {
			t.Errorf("RequestsCustom(%q)=%v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestEncryptedTransport(t *testing.T) {
	withTLS := Selection{Providers: []Provider{Catalog()[0], Catalog()[1]}}
	if !withTLS.EncryptedTransport() {
		t.Error("catalog providers should support encrypted transport")
	}

	noTLS := Selection{Providers: []Provider{
		Catalog()[0],
		{Name: "Custom", IPv4: []netip.Addr{netip.MustParseAddr("10.0.0.53")}},
	}}
	if noTLS.EncryptedTransport() {
		t.Error("a single provider without a TLS name must disable encrypted transport")
	}
}

func TestParseAddrList(t *testing.T) {
	addrs, err := ParseAddrList("1.1.1.1, 8.8.8.8 9.9.9.9")
	if err != nil {
		t.Fatal(err)
	}
	golden := []netip.Addr{
		netip.MustParseAddr("1.1.1.1"),
		netip.MustParseAddr("8.8.8.8"),
		netip.MustParseAddr("9.9.9.9"),
	}
	if diff := cmp.Diff(addrs, golden, cmp.Comparer(func(a, b netip.Addr) bool { return a == b })); diff != "" {
		t.Errorf("unexpected addrs (-got +want):\n%s", diff)
	}

	if _, err := ParseAddrList("1.1.1.1 nonsense"); err == nil {
		t.Error("expected error for malformed address")
	}

	addrs, err = ParseAddrList("")
	if err != nil {
		t.Fatal(err)
	}
	if len(addrs) != 0 {
		t.Errorf("expected no addrs, got %v", addrs)
	}
}
