// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package baseline

import (
	"bytes"
	"strings"
)

// StubListenerAddr is the local stub listener address of systemd-resolved.
// Other system components resolve names through it rather than directly
// through the network.
const StubListenerAddr = "127.0.0.53"

// ResolvedUnit is the systemd unit name of the resolution daemon.
const ResolvedUnit = "systemd-resolved.service"

// DNSOverTLSMode is the encrypted transport mode of the resolver
// configuration document. It applies to the whole document, not to
// individual providers.
type DNSOverTLSMode string

const (
	DNSOverTLSOpportunistic DNSOverTLSMode = "opportunistic"
	DNSOverTLSNo            DNSOverTLSMode = "no"
)

// ResolverConfig is the generated configuration document for
// systemd-resolved. It is recomputed fresh on every run from the
// current Selection and fully overwrites the prior configuration file.
type ResolverConfig struct {
	// DNS holds the primary provider endpoints.
	DNS []string
	// FallbackDNS holds the endpoints of all fallback providers, in
	// selection order.
	FallbackDNS []string
	DNSOverTLS  DNSOverTLSMode
}

// NewResolverConfig derives the resolver configuration from a selection.
// The selection must be non-empty.
func NewResolverConfig(sel Selection) ResolverConfig {
	cfg := ResolverConfig{
		DNS:        sel.Primary().Endpoints(),
		DNSOverTLS: DNSOverTLSNo,
	}
	for _, p := range sel.Fallbacks() {
		cfg.FallbackDNS = append(cfg.FallbackDNS, p.Endpoints()...)
	}
	if sel.EncryptedTransport() {
		cfg.DNSOverTLS = DNSOverTLSOpportunistic
	}
	return cfg
}

// Render emits the full resolved.conf document.
func (c ResolverConfig) Render() []byte {
	var b bytes.Buffer
	b.WriteString("# Generated by baseline. Changes will be overwritten.\n")
	b.WriteString("[Resolve]\n")
	b.WriteString("DNS=" + strings.Join(c.DNS, " ") + "\n")
	if len(c.FallbackDNS) > 0 {
		b.WriteString("FallbackDNS=" + strings.Join(c.FallbackDNS, " ") + "\n")
	}
	b.WriteString("Domains=~.\n")
	b.WriteString("DNSSEC=yes\n")
	b.WriteString("DNSOverTLS=" + string(c.DNSOverTLS) + "\n")
	b.WriteString("Cache=yes\n")
	b.WriteString("DNSStubListener=yes\n")
	b.WriteString("ReadEtcHosts=yes\n")
	return b.Bytes()
}
