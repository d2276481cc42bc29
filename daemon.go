// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package baseline

import (
	"context"
	"os/exec"
	"time"

	"github.com/debtools/baseline/log"
	"github.com/debtools/baseline/utils/osfile"
)

// ResolvedPackage is the package that ships the resolution daemon on
// releases where it is split out of the systemd package.
const ResolvedPackage = "systemd-resolved"

// resolvectl going missing is the signal that the daemon package is not
// installed.
const resolvedControlCommand = "resolvectl"

// DaemonConfigurator ensures systemd-resolved is installed, enabled,
// and configured with the current ResolverConfig.
//
// Package installation and service start failures are reported and the
// configurator continues to the configuration file write: verification
// catches a non-functional end state.
type DaemonConfigurator struct {
	Paths Paths
	Svc   ServiceManager
	Pkg   PackageManager
	// Ready reports whether the daemon answers status queries. Used by
	// the readiness poll after restart.
	Ready func(ctx context.Context) error
	// Flush drops the daemon's lookup caches once it is ready, so the
	// new upstream configuration takes effect immediately. Optional.
	Flush func(ctx context.Context) error
	Log   log.Logger

	// Readiness poll tuning, zero values select the defaults.
	ReadyInterval time.Duration
	ReadyTimeout  time.Duration
}

// Apply installs, enables and configures the daemon, then waits for it
// to become ready. Only configuration file write errors are fatal.
func (d *DaemonConfigurator) Apply(ctx context.Context, cfg ResolverConfig) error {
	d.ensureInstalled(ctx)
	d.ensureEnabled(ctx)

	if err := osfile.WriteAtomic(d.Paths.ResolvedConf, cfg.Render(), 0o644); err != nil {
		return classifyFSError("write resolved config", err)
	}
	d.Log.Infof("wrote %s", d.Paths.ResolvedConf)

	if err := d.relinkResolvConf(); err != nil {
		return err
	}

	if err := d.Svc.Restart(ctx, ResolvedUnit); err != nil {
		d.Log.Errorf("restart %s: %s", ResolvedUnit, err)
	}

	if err := d.waitReady(ctx); err != nil {
		d.Log.Errorf("daemon not ready: %s", err)
	} else if d.Flush != nil {
		if err := d.Flush(ctx); err != nil {
			d.Log.Debugf("flush caches: %s", err)
		}
	}
	return nil
}

func (d *DaemonConfigurator) ensureInstalled(ctx context.Context) {
	if _, err := exec.LookPath(resolvedControlCommand); err == nil {
		return
	}
	d.Log.Infof("%s not found, installing %s (this may take a while)", resolvedControlCommand, ResolvedPackage)
	if err := d.Pkg.Install(ctx, ResolvedPackage); err != nil {
		d.Log.Errorf("install %s: %s", ResolvedPackage, err)
	}
}

func (d *DaemonConfigurator) ensureEnabled(ctx context.Context) {
	// Unmask is best-effort, the unit may never have been masked.
	if err := d.Svc.Unmask(ctx, ResolvedUnit); err != nil {
		d.Log.Debugf("unmask %s: %s", ResolvedUnit, err)
	}
	if err := d.Svc.Enable(ctx, ResolvedUnit); err != nil {
		d.Log.Errorf("enable %s: %s", ResolvedUnit, err)
	}
	if err := d.Svc.Start(ctx, ResolvedUnit); err != nil {
		d.Log.Errorf("start %s: %s", ResolvedUnit, err)
	}
}

// relinkResolvConf points the system resolver file at the daemon's
// runtime-generated stub file. A protection attribute left by other
// tooling is cleared first and not restored, the symlink itself is
// meant to stay writable.
func (d *DaemonConfigurator) relinkResolvConf() error {
	if err := osfile.ClearImmutable(d.Paths.ResolvConf); err != nil {
		return classifyFSError("clear resolver file protection", err)
	}
	if err := osfile.Relink(d.Paths.ResolvConf, d.Paths.StubResolvConf); err != nil {
		return classifyFSError("link resolver file", err)
	}
	d.Log.Infof("%s -> %s", d.Paths.ResolvConf, d.Paths.StubResolvConf)
	return nil
}

// waitReady polls the daemon with a short backoff and an overall
// timeout instead of guessing a fixed settle delay. Service startup and
// DNS propagation are not instantaneous.
func (d *DaemonConfigurator) waitReady(ctx context.Context) error {
	interval := d.ReadyInterval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	timeout := d.ReadyTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	t := time.NewTicker(interval)
	defer t.Stop()

	var lastErr error
	for {
		if d.Svc.IsActive(ctx, ResolvedUnit) {
			if d.Ready == nil {
				return nil
			}
			if lastErr = d.Ready(ctx); lastErr == nil {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return lastErr
			}
			return ErrServiceUnavailable
		case <-t.C:
		}
	}
}
