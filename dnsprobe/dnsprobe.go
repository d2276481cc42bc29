// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dnsprobe answers one question: does name resolution through a
// given server actually work right now.
package dnsprobe

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"
)

// WellKnownName is resolved by default when no name is given.
// It must be a name that exists for as long as DNS itself does.
const WellKnownName = "www.debian.org"

// Prober sends a single A query against a DNS server and checks for a
// usable answer.
type Prober struct {
	// Server is the DNS server address. The port defaults to 53.
	Server string
	// Timeout bounds the whole exchange when the context has no
	// earlier deadline.
	Timeout time.Duration
}

func New(server string) *Prober {
	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}
	return &Prober{
		Server:  server,
		Timeout: 5 * time.Second,
	}
}

// Lookup resolves name through the configured server and returns an
// error unless the response carries at least one A record.
func (p *Prober) Lookup(ctx context.Context, name string) error {
	if name == "" {
		name = WellKnownName
	}

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), dns.TypeA)
	msg.RecursionDesired = true

	client := &dns.Client{
		Net:     "udp",
		Timeout: p.Timeout,
		UDPSize: 4096,
	}

	resp, _, err := client.ExchangeContext(ctx, msg, p.Server)
	if err != nil {
		return fmt.Errorf("resolve %s via %s: %w", name, p.Server, err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return fmt.Errorf("resolve %s via %s: %s", name, p.Server, dns.RcodeToString[resp.Rcode])
	}
	for _, rr := range resp.Answer {
		if _, ok := rr.(*dns.A); ok {
			return nil
		}
	}
	return fmt.Errorf("resolve %s via %s: no A records in answer", name, p.Server)
}
