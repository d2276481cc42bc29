// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package baseline

import (
	"context"
	"errors"
	"testing"

	"github.com/debtools/baseline/log"
)

func TestVerifierRun(t *testing.T) {
	v := &Verifier{
		Svc:    &fakeService{active: true},
		Status: func(context.Context) error { return nil },
		Lookup: func(context.Context) error { return nil },
		Log:    log.NopLogger,
	}

	results, err := v.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("%d results, want 3", len(results))
	}
	for _, r := range results {
		if !r.OK() {
			t.Errorf("check %s failed: %s", r.Name, r.Err)
		}
	}
}

func TestVerifierRunCollectsAllFailures(t *testing.T) {
	statusErr := errors.New("no dbus")
	lookupErr := errors.New("no answer")

	v := &Verifier{
		Svc:    &fakeService{},
		Status: func(context.Context) error { return statusErr },
		Lookup: func(context.Context) error { return lookupErr },
		Log:    log.NopLogger,
	}

	results, err := v.Run(context.Background())
	if err == nil {
		t.Fatal("expected aggregated error")
	}

	// Every check ran despite the earlier failures.
	if len(results) != 3 {
		t.Fatalf("%d results, want 3", len(results))
	}
	for _, r := range results {
		if r.OK() {
			t.Errorf("check %s passed, want failure", r.Name)
		}
	}

	if !errors.Is(err, statusErr) || !errors.Is(err, lookupErr) || !errors.Is(err, ErrServiceUnavailable) {
		t.Errorf("aggregated error lost a cause: %v", err)
	}
}
