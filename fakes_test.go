// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package baseline

import (
	"context"
	"path/filepath"
	"testing"
)

type fakeService struct {
	active bool

	unmasked  []string
	enabled   []string
	started   []string
	restarted []string
}

func (s *fakeService) IsActive(_ context.Context, _ string) bool { return s.active }

func (s *fakeService) Unmask(_ context.Context, unit string) error {
	s.unmasked = append(s.unmasked, unit)
	return nil
}

func (s *fakeService) Enable(_ context.Context, unit string) error {
	s.enabled = append(s.enabled, unit)
	return nil
}

func (s *fakeService) Start(_ context.Context, unit string) error {
	s.started = append(s.started, unit)
	return nil
}

func (s *fakeService) Restart(_ context.Context, unit string) error {
	s.restarted = append(s.restarted, unit)
	s.active = true
	return nil
}

type fakePkg struct {
	installed map[string]bool

	installs []string
	purges   []string
}

func (p *fakePkg) Installed(_ context.Context, name string) bool { return p.installed[name] }

func (p *fakePkg) Install(_ context.Context, name string) error {
	p.installs = append(p.installs, name)
	return nil
}

func (p *fakePkg) Purge(_ context.Context, name string) error {
	p.purges = append(p.purges, name)
	delete(p.installed, name)
	return nil
}

// testPaths relocates every controlled file into a scratch directory.
func testPaths(t *testing.T) Paths {
	t.Helper()
	dir := t.TempDir()
	return Paths{
		DHClientConf:     filepath.Join(dir, "dhclient.conf"),
		HookScript:       filepath.Join(dir, "dhclient-enter-hooks.d", "resolvconf"),
		Interfaces:       filepath.Join(dir, "interfaces"),
		ResolvedConf:     filepath.Join(dir, "resolved.conf"),
		ResolvConf:       filepath.Join(dir, "resolv.conf"),
		StubResolvConf:   filepath.Join(dir, "stub-resolv.conf"),
		LegacyResolvConf: filepath.Join(dir, "legacy-resolv.conf"),
	}
}
