// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package baseline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestCheckHealth(t *testing.T) {
	healthy := SystemDNSState{
		ResolvedActive: true,
		DHClientConf:   EnsureStubDirectives(nil),
		HookExecutable: false,
	}

	tests := []struct {
		name   string
		state  SystemDNSState
		ok     bool
		failed string
	}{
		{
			name:  "all green",
			state: healthy,
			ok:    true,
		},
		{
			name: "daemon inactive",
			state: SystemDNSState{
				ResolvedActive: false,
				DHClientConf:   healthy.DHClientConf,
			},
			failed: "resolved-active",
		},
		{
			name: "dhclient not overridden",
			state: SystemDNSState{
				ResolvedActive: true,
				DHClientConf:   []byte("send host-name = gethostname();\n"),
			},
			failed: "dhclient-override",
		},
		{
			name: "hook script executable",
			state: SystemDNSState{
				ResolvedActive: true,
				DHClientConf:   healthy.DHClientConf,
				HookExecutable: true,
			},
			failed: "hook-script",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := CheckHealth(tc.state)
			if r.OK() != tc.ok {
				t.Errorf("OK()=%v, want %v", r.OK(), tc.ok)
			}
			for _, c := range r {
				if !c.OK && c.Name != tc.failed {
					t.Errorf("unexpected failed check %s", c.Name)
				}
				if c.OK && c.Name == tc.failed {
					t.Errorf("check %s passed, want failure", c.Name)
				}
			}
		})
	}
}

func TestReadSystemDNSState(t *testing.T) {
	paths := testPaths(t)
	svc := &fakeService{active: true}
	ctx := context.Background()

	// Nothing exists yet, all optional.
	s, err := ReadSystemDNSState(ctx, paths, svc)
	if err != nil {
		t.Fatal(err)
	}
	if s.DHClientConf != nil || s.HookExecutable || s.ResolvConfTarget != "" {
		t.Errorf("unexpected state for empty system: %+v", s)
	}
	if !s.ResolvedActive {
		t.Error("ResolvedActive=false, want true")
	}

	// Populate the files.
	if err := os.WriteFile(paths.DHClientConf, []byte("send host-name = gethostname();\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(paths.HookScript), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(paths.HookScript, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(paths.StubResolvConf, paths.ResolvConf); err != nil {
		t.Fatal(err)
	}

	s, err = ReadSystemDNSState(ctx, paths, svc)
	if err != nil {
		t.Fatal(err)
	}
	if s.DHClientConf == nil {
		t.Error("DHClientConf not read")
	}
	if !s.HookExecutable {
		t.Error("HookExecutable=false, want true")
	}
	if s.ResolvConfTarget != paths.StubResolvConf {
		t.Errorf("ResolvConfTarget=%q, want %q", s.ResolvConfTarget, paths.StubResolvConf)
	}
}
