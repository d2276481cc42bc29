// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package baseline

// HealthCheck is the outcome of a single read-only check against the
// system DNS state.
type HealthCheck struct {
	Name   string
	OK     bool
	Detail string
}

// HealthReport aggregates the individual checks.
type HealthReport []HealthCheck

// OK reports whether every check passed.
func (r HealthReport) OK() bool {
	for _, c := range r {
		if !c.OK {
			return false
		}
	}
	return true
}

// CheckHealth evaluates the DNS health checks against a state snapshot.
// It is a pure predicate: no side effects, so it can be called both
// before reconfiguration (to decide whether work is needed) and after
// (for verification symmetry).
func CheckHealth(s SystemDNSState) HealthReport {
	r := HealthReport{
		{
			Name:   "resolved-active",
			OK:     s.ResolvedActive,
			Detail: "systemd-resolved service is active",
		},
		{
			Name:   "dhclient-override",
			OK:     HasStubDirectives(s.DHClientConf),
			Detail: "dhclient config defers DNS to the stub listener",
		},
		{
			Name:   "hook-script",
			OK:     !s.HookExecutable,
			Detail: "no executable resolvconf hook script",
		},
	}
	return r
}
