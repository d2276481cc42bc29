// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package baseline

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/debtools/baseline/log"
	"github.com/debtools/baseline/utils/osfile"
)

// ConflictRemover makes the resolution daemon the sole authority for
// DNS by disabling every alternate source of resolver configuration.
// Every operation is idempotent, a re-run from scratch is always safe.
type ConflictRemover struct {
	Paths Paths
	Pkg   PackageManager
	// LegacyResolvconf enables removal of the resolvconf package on
	// releases that ship it alongside systemd-resolved.
	LegacyResolvconf bool
	Log              log.Logger
}

// Apply runs all conflict removal steps. Filesystem permission errors
// are fatal; a missing optional file or package is not an error.
func (r *ConflictRemover) Apply(ctx context.Context) error {
	if err := r.rewriteDHClient(); err != nil {
		return err
	}
	if err := r.disableHookScript(); err != nil {
		return err
	}
	if err := r.hardenInterfaces(); err != nil {
		return err
	}
	r.removeLegacyResolvconf(ctx)
	return nil
}

// rewriteDHClient strips pre-existing override directives and appends
// the canonical pair. Remove-then-add, never append-only, so repeated
// runs do not duplicate directives.
func (r *ConflictRemover) rewriteDHClient() error {
	current, err := os.ReadFile(r.Paths.DHClientConf)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return classifyFSError("read dhclient config", err)
	}

	desired := EnsureStubDirectives(current)
	if bytes.Equal(current, desired) {
		r.Log.Debugf("dhclient config already defers to %s", StubListenerAddr)
		return nil
	}
	if err := osfile.WriteAtomic(r.Paths.DHClientConf, desired, 0o644); err != nil {
		return classifyFSError("write dhclient config", err)
	}
	r.Log.Infof("dhclient config now defers DNS to %s", StubListenerAddr)
	return nil
}

func (r *ConflictRemover) disableHookScript() error {
	fi, err := os.Stat(r.Paths.HookScript)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return classifyFSError("stat hook script", err)
	}
	if fi.Mode().Perm()&0o111 == 0 {
		return nil
	}
	if err := os.Chmod(r.Paths.HookScript, fi.Mode().Perm()&^0o111); err != nil {
		return classifyFSError("disable hook script", err)
	}
	r.Log.Infof("removed execute permission from %s", r.Paths.HookScript)
	return nil
}

// hardenInterfaces comments out legacy per-interface DNS directives.
// Absence of the interfaces file is the normal case on modern systems.
func (r *ConflictRemover) hardenInterfaces() error {
	current, err := os.ReadFile(r.Paths.Interfaces)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return classifyFSError("read interfaces file", err)
	}

	desired, changed := CommentDNSDirectives(current)
	if !changed {
		return nil
	}
	if err := osfile.WriteAtomic(r.Paths.Interfaces, desired, 0o644); err != nil {
		return classifyFSError("write interfaces file", err)
	}
	r.Log.Infof("commented out DNS directives in %s", r.Paths.Interfaces)
	return nil
}

// removeLegacyResolvconf is best-effort hardening, it never fails the
// pipeline.
func (r *ConflictRemover) removeLegacyResolvconf(ctx context.Context) {
	if !r.LegacyResolvconf || r.Pkg == nil {
		return
	}
	if !r.Pkg.Installed(ctx, "resolvconf") {
		return
	}
	r.Log.Infof("removing legacy resolvconf package")
	if err := r.Pkg.Purge(ctx, "resolvconf"); err != nil {
		r.Log.Errorf("purge resolvconf: %s", err)
		return
	}
	if err := os.Remove(r.Paths.LegacyResolvConf); err != nil && !errors.Is(err, fs.ErrNotExist) {
		r.Log.Errorf("remove stale resolver file: %s", err)
	}
}
