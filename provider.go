// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package baseline

import (
	"net/netip"
	"strconv"
	"strings"
)

// Provider is a named DNS service offering.
type Provider struct {
	Name string
	IPv4 []netip.Addr
	IPv6 []netip.Addr

	// TLSName is the server identity used to authenticate DNS-over-TLS
	// sessions with the provider endpoints. Empty if the provider does
	// not offer encrypted transport.
	TLSName string
}

// Endpoints returns the provider endpoints as strings, IPv4 first.
func (p Provider) Endpoints() []string {
	s := make([]string, 0, len(p.IPv4)+len(p.IPv6))
	for _, a := range p.IPv4 {
		s = append(s, a.String())
	}
	for _, a := range p.IPv6 {
		s = append(s, a.String())
	}
	return s
}

//nolint:gochecknoglobals // immutable built-in catalog
var catalog = []Provider{
	{
		Name:    "Cloudflare",
		IPv4:    mustAddrs("1.1.1.1", "1.0.0.1"),
		IPv6:    mustAddrs("2606:4700:4700::1111", "2606:4700:4700::1001"),
		TLSName: "cloudflare-dns.com",
	},
	{
		Name:    "Google",
		IPv4:    mustAddrs("8.8.8.8", "8.8.4.4"),
		IPv6:    mustAddrs("2001:4860:4860::8888", "2001:4860:4860::8844"),
		TLSName: "dns.google",
	},
	{
		Name:    "Quad9",
		IPv4:    mustAddrs("9.9.9.9", "149.112.112.112"),
		IPv6:    mustAddrs("2620:fe::fe", "2620:fe::9"),
		TLSName: "dns.quad9.net",
	},
	{
		Name:    "AdGuard",
		IPv4:    mustAddrs("94.140.14.14", "94.140.15.15"),
		IPv6:    mustAddrs("2a10:50c0::ad1:ff", "2a10:50c0::ad2:ff"),
		TLSName: "dns.adguard-dns.com",
	},
	{
		Name:    "OpenDNS",
		IPv4:    mustAddrs("208.67.222.222", "208.67.220.220"),
		IPv6:    mustAddrs("2620:119:35::35", "2620:119:53::53"),
		TLSName: "dns.opendns.com",
	},
}

// Catalog returns a copy of the built-in provider catalog.
// Entries are selected by their 1-based position.
func Catalog() []Provider {
	c := make([]Provider, len(catalog))
	copy(c, catalog)
	return c
}

// CustomIndex is the selection index reserved for a user supplied provider.
// It is one past the last catalog entry.
func CustomIndex() int {
	return len(catalog) + 1
}

// Selection is an ordered, deduplicated list of chosen providers.
// The first element is the primary provider, used as the authoritative
// DNS list. All subsequent elements are fallbacks.
type Selection struct {
	Providers []Provider

	// Defaulted is true when the user input yielded no valid choice and
	// the fixed default selection was substituted.
	Defaulted bool
}

func (s Selection) Primary() Provider {
	return s.Providers[0]
}

func (s Selection) Fallbacks() []Provider {
	return s.Providers[1:]
}

func (s Selection) Names() []string {
	names := make([]string, len(s.Providers))
	for i, p := range s.Providers {
		names[i] = p.Name
	}
	return names
}

// EncryptedTransport reports whether every selected provider supplies a
// DNS-over-TLS server identity. The resulting resolver configuration
// enables encrypted transport only in that case: a custom provider
// configured without a TLS name disables it for the whole document.
func (s Selection) EncryptedTransport() bool {
	for _, p := range s.Providers {
		if p.TLSName == "" {
			return false
		}
	}
	return true
}

// DefaultSelection is the selection substituted when user input yields
// no valid provider choice.
func DefaultSelection(ipv6 bool) Selection {
	s := Selection{
		Providers: []Provider{catalog[0], catalog[1], catalog[3]}, // Cloudflare, Google, AdGuard
		Defaulted: true,
	}
	if !ipv6 {
		s.Providers = stripIPv6(s.Providers)
	}
	return s
}

// RequestsCustom reports whether the selection input contains the
// custom provider index. Callers use it to decide whether to solicit
// custom provider details before parsing.
func RequestsCustom(input string) bool {
	for _, tok := range strings.Fields(input) {
		if n, err := strconv.Atoi(tok); err == nil && n == CustomIndex() {
			return true
		}
	}
	return false
}

// ParseSelection turns a free-text, space separated list of catalog
// indices into a Selection. Unknown or malformed tokens are dropped
// silently. Providers are deduplicated by name, preserving the position
// of the first occurrence. The custom provider, if non-nil, is selected
// by the index returned by CustomIndex.
//
// An input yielding no valid choice results in DefaultSelection.
// When ipv6 is false, IPv6 endpoints are omitted from the selection
// entirely, regardless of provider capability.
func ParseSelection(input string, custom *Provider, ipv6 bool) Selection {
	var (
		providers []Provider
		seen      = map[string]bool{}
	)
	for _, tok := range strings.Fields(input) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		var p Provider
		switch {
		case n >= 1 && n <= len(catalog):
			p = catalog[n-1]
		case n == CustomIndex() && custom != nil:
			p = *custom
		default:
			continue
		}
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		providers = append(providers, p)
	}

	if len(providers) == 0 {
		return DefaultSelection(ipv6)
	}

	if !ipv6 {
		providers = stripIPv6(providers)
	}
	return Selection{Providers: providers}
}

func stripIPv6(in []Provider) []Provider {
	out := make([]Provider, len(in))
	for i, p := range in {
		p.IPv6 = nil
		out[i] = p
	}
	return out
}

func mustAddrs(in ...string) []netip.Addr {
	addrs := make([]netip.Addr, len(in))
	for i, s := range in {
		addrs[i] = netip.MustParseAddr(s)
	}
	return addrs
}

// ParseAddrList parses a space or comma separated list of IP addresses.
// Used for custom provider endpoint input.
func ParseAddrList(input string) ([]netip.Addr, error) {
	f := strings.FieldsFunc(input, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	var addrs []netip.Addr
	for _, s := range f {
		a, err := netip.ParseAddr(s)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, a)
	}
	return addrs, nil
}
