// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package baseline

import (
	"context"
	"strings"

	"github.com/debtools/baseline/log"
)

// DNSPipeline runs the full DNS reconfiguration workflow:
// health check, conflict removal, daemon configuration, verification.
//
// The pipeline is strictly sequential and every mutating step is
// idempotent. There is no rollback: an interrupted run is recovered by
// running again from scratch.
type DNSPipeline struct {
	Remover      *ConflictRemover
	Configurator *DaemonConfigurator
	Verifier     *Verifier

	Paths Paths
	Svc   ServiceManager

	// Confirm solicits a yes/no answer from the operator. It gates the
	// forced re-run when the health check already passes. A nil func
	// declines.
	Confirm func(prompt string) bool

	// Force skips the confirmation and always reconfigures.
	Force bool

	// DryRun stops the pipeline after the health check, before any
	// mutation, and prints the configuration that would be applied.
	DryRun bool

	Log log.Logger
}

// Run executes the pipeline with the given immutable selection.
// It returns a fatal error when the pipeline aborted, nil otherwise;
// individual verification failures are reported through the logger and
// the summary, not the error.
func (p *DNSPipeline) Run(ctx context.Context, sel Selection) error {
	state, err := ReadSystemDNSState(ctx, p.Paths, p.Svc)
	if err != nil {
		return err
	}

	report := CheckHealth(state)
	for _, c := range report {
		if c.OK {
			p.Log.Infof("health %s: ok", c.Name)
		} else {
			p.Log.Infof("health %s: needs attention (%s)", c.Name, c.Detail)
		}
	}

	if report.OK() && !p.Force && !p.DryRun {
		if p.Confirm == nil || !p.Confirm("DNS is already configured, reconfigure anyway?") {
			p.Log.Infof("nothing to do")
			return nil
		}
	}

	if sel.Defaulted {
		p.Log.Infof("no valid provider choice, using defaults: %s", strings.Join(sel.Names(), ", "))
	}

	cfg := NewResolverConfig(sel)

	if p.DryRun {
		p.printConfig(sel, cfg)
		p.Log.Infof("dry run, no changes made")
		return nil
	}

	if err := p.Remover.Apply(ctx); err != nil {
		return err
	}

	if err := p.Configurator.Apply(ctx, cfg); err != nil {
		return err
	}

	results, _ := p.Verifier.Run(ctx)
	p.summary(sel, cfg, results)
	return nil
}

func (p *DNSPipeline) printConfig(sel Selection, cfg ResolverConfig) {
	p.Log.Infof("providers: %s", strings.Join(sel.Names(), ", "))
	p.Log.Infof("DNS servers: %s", strings.Join(cfg.DNS, " "))
	if len(cfg.FallbackDNS) > 0 {
		p.Log.Infof("fallback DNS servers: %s", strings.Join(cfg.FallbackDNS, " "))
	}
	p.Log.Infof("DNSSEC: enabled, DNS-over-TLS: %s", cfg.DNSOverTLS)
}

// summary always lists which providers and security features ended up
// active, even when some verification checks failed.
func (p *DNSPipeline) summary(sel Selection, cfg ResolverConfig, results []VerifyResult) {
	p.printConfig(sel, cfg)

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	if failed > 0 {
		p.Log.Errorf("%d of %d verification checks failed, see warnings above", failed, len(results))
	} else {
		p.Log.Infof("all verification checks passed")
	}
}
