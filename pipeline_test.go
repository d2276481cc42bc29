// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package baseline

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/debtools/baseline/log"
)

func newTestPipeline(paths Paths, svc *fakeService, pkg *fakePkg) *DNSPipeline {
	return &DNSPipeline{
		Remover: &ConflictRemover{
			Paths: paths,
			Pkg:   pkg,
			Log:   log.NopLogger,
		},
		Configurator: &DaemonConfigurator{
			Paths:         paths,
			Svc:           svc,
			Pkg:           pkg,
			Log:           log.NopLogger,
			ReadyInterval: time.Millisecond,
			ReadyTimeout:  100 * time.Millisecond,
		},
		Verifier: &Verifier{
			Svc:    svc,
			Status: func(context.Context) error { return nil },
			Lookup: func(context.Context) error { return nil },
			Log:    log.NopLogger,
		},
		Paths: paths,
		Svc:   svc,
		Log:   log.NopLogger,
	}
}

func TestDNSPipelineRun(t *testing.T) {
	paths := testPaths(t)
	svc := &fakeService{}
	pkg := &fakePkg{}

	p := newTestPipeline(paths, svc, pkg)
	if err := p.Run(context.Background(), ParseSelection("1 2", nil, false)); err != nil {
		t.Fatal(err)
	}

	conf := mustRead(t, paths.ResolvedConf)
	if !strings.Contains(string(conf), "DNS=1.1.1.1 1.0.0.1\n") {
		t.Errorf("unexpected resolved config:\n%s", conf)
	}

	if !HasStubDirectives(mustRead(t, paths.DHClientConf)) {
		t.Error("dhclient config not rewritten")
	}

	target, err := os.Readlink(paths.ResolvConf)
	if err != nil {
		t.Fatal(err)
	}
	if target != paths.StubResolvConf {
		t.Errorf("resolv.conf -> %q, want %q", target, paths.StubResolvConf)
	}

	if diff := cmp.Diff(svc.restarted, []string{ResolvedUnit}); diff != "" {
		t.Errorf("unexpected restarts (-got +want):\n%s", diff)
	}
}

func TestDNSPipelineHealthyShortCircuit(t *testing.T) {
	paths := testPaths(t)
	if err := os.WriteFile(paths.DHClientConf, EnsureStubDirectives(nil), 0o644); err != nil {
		t.Fatal(err)
	}
	before := mustRead(t, paths.DHClientConf)

	svc := &fakeService{active: true}
	pkg := &fakePkg{}

	p := newTestPipeline(paths, svc, pkg)
	p.Confirm = func(string) bool { return false }

	if err := p.Run(context.Background(), ParseSelection("1", nil, false)); err != nil {
		t.Fatal(err)
	}

	// Declined rerun on a healthy system must not touch anything.
	if diff := cmp.Diff(string(mustRead(t, paths.DHClientConf)), string(before)); diff != "" {
		t.Errorf("dhclient config mutated (-got +want):\n%s", diff)
	}
	if _, err := os.Stat(paths.ResolvedConf); !os.IsNotExist(err) {
		t.Error("resolved config written on a healthy system")
	}
	if len(svc.restarted) != 0 {
		t.Errorf("service restarted: %v", svc.restarted)
	}
}

func TestDNSPipelineHealthyConfirmedRerun(t *testing.T) {
	paths := testPaths(t)
	if err := os.WriteFile(paths.DHClientConf, EnsureStubDirectives(nil), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := &fakeService{active: true}
	p := newTestPipeline(paths, svc, &fakePkg{})
	p.Confirm = func(string) bool { return true }

	if err := p.Run(context.Background(), ParseSelection("1", nil, false)); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(paths.ResolvedConf); err != nil {
		t.Error("confirmed rerun did not reconfigure")
	}
}

func TestDNSPipelineForce(t *testing.T) {
	paths := testPaths(t)
	if err := os.WriteFile(paths.DHClientConf, EnsureStubDirectives(nil), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := &fakeService{active: true}
	p := newTestPipeline(paths, svc, &fakePkg{})
	p.Force = true
	p.Confirm = func(string) bool {
		t.Error("force must not prompt")
		return false
	}

	if err := p.Run(context.Background(), ParseSelection("1", nil, false)); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(paths.ResolvedConf); err != nil {
		t.Error("forced run did not reconfigure")
	}
}

func TestDNSPipelineDryRun(t *testing.T) {
	paths := testPaths(t)
	svc := &fakeService{}
	p := newTestPipeline(paths, svc, &fakePkg{})
	p.DryRun = true

	if err := p.Run(context.Background(), ParseSelection("1 2", nil, false)); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(paths.DHClientConf); !os.IsNotExist(err) {
		t.Error("dry run wrote the dhclient config")
	}
	if _, err := os.Stat(paths.ResolvedConf); !os.IsNotExist(err) {
		t.Error("dry run wrote the resolved config")
	}
	if len(svc.restarted) != 0 {
		t.Errorf("dry run restarted services: %v", svc.restarted)
	}
}
