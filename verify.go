// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package baseline

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/debtools/baseline/log"
)

// VerifyResult is the outcome of one post-reconfiguration check.
type VerifyResult struct {
	Name string
	Err  error
}

func (r VerifyResult) OK() bool {
	return r.Err == nil
}

// Verifier confirms the end state after reconfiguration. A failed check
// produces a warning, never an abort: system state has already been
// mutated and there is nothing meaningful to roll back to.
type Verifier struct {
	Svc ServiceManager
	// Status queries the daemon's control interface.
	Status func(ctx context.Context) error
	// Lookup performs an end-to-end resolution test against a
	// well-known name through the stub listener.
	Lookup func(ctx context.Context) error
	Log    log.Logger
}

// Run executes all checks and reports each independently. The returned
// error aggregates the failures for the final summary.
func (v *Verifier) Run(ctx context.Context) ([]VerifyResult, error) {
	results := []VerifyResult{
		{Name: "daemon-active", Err: v.checkActive(ctx)},
		{Name: "daemon-status", Err: v.Status(ctx)},
		{Name: "resolution", Err: v.Lookup(ctx)},
	}

	var err error
	for _, r := range results {
		if r.Err != nil {
			v.Log.Errorf("check %s failed: %s", r.Name, r.Err)
			err = multierr.Append(err, fmt.Errorf("%s: %w", r.Name, r.Err))
		} else {
			v.Log.Infof("check %s ok", r.Name)
		}
	}
	return results, err
}

func (v *Verifier) checkActive(ctx context.Context) error {
	if !v.Svc.IsActive(ctx, ResolvedUnit) {
		return fmt.Errorf("%s: %w", ResolvedUnit, ErrServiceUnavailable)
	}
	return nil
}
