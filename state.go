// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package baseline

import (
	"context"
	"errors"
	"io/fs"
	"os"
)

// Paths locates the system files the DNS workflow reads and controls.
// Tests override them to point into a scratch directory.
type Paths struct {
	// DHClientConf is the DHCP client configuration file.
	DHClientConf string
	// HookScript is the dhclient hook script installed by the legacy
	// resolvconf package. When executable it competes with
	// systemd-resolved for control of the resolver file.
	HookScript string
	// Interfaces is the legacy ifupdown interfaces file, optional.
	Interfaces string
	// ResolvedConf is the systemd-resolved configuration file.
	ResolvedConf string
	// ResolvConf is the system-wide resolver file.
	ResolvConf string
	// StubResolvConf is the resolver file systemd-resolved generates at
	// runtime. ResolvConf is symlinked at it.
	StubResolvConf string
	// LegacyResolvConf is the stale resolver file the resolvconf
	// package may leave behind after removal.
	LegacyResolvConf string
}

func DefaultPaths() Paths {
	return Paths{
		DHClientConf:     "/etc/dhcp/dhclient.conf",
		HookScript:       "/etc/dhcp/dhclient-enter-hooks.d/resolvconf",
		Interfaces:       "/etc/network/interfaces",
		ResolvedConf:     "/etc/systemd/resolved.conf",
		ResolvConf:       "/etc/resolv.conf",
		StubResolvConf:   "/run/systemd/resolve/stub-resolv.conf",
		LegacyResolvConf: "/run/resolvconf/resolv.conf",
	}
}

// ServiceManager controls systemd units.
// Implemented by the systemd package, faked in tests.
type ServiceManager interface {
	IsActive(ctx context.Context, unit string) bool
	Unmask(ctx context.Context, unit string) error
	Enable(ctx context.Context, unit string) error
	Start(ctx context.Context, unit string) error
	Restart(ctx context.Context, unit string) error
}

// PackageManager performs package transactions.
// Implemented by the apt package, faked in tests.
type PackageManager interface {
	Installed(ctx context.Context, name string) bool
	Install(ctx context.Context, name string) error
	Purge(ctx context.Context, name string) error
}

// SystemDNSState is a point-in-time snapshot of the live DNS related
// system state: the union of several OS-level files and service states,
// treated as one consistency unit. It is read by the health checker and
// the verifier and mutated by the conflict remover and the daemon
// configurator.
type SystemDNSState struct {
	// ResolvedActive reports whether the resolution daemon is active.
	ResolvedActive bool
	// DHClientConf holds the DHCP client configuration, nil if the
	// file does not exist.
	DHClientConf []byte
	// HookExecutable reports whether the conflicting hook script is
	// present and executable.
	HookExecutable bool
	// ResolvConfTarget is the symlink target of the resolver file,
	// empty for a regular file or a missing file.
	ResolvConfTarget string
}

// ReadSystemDNSState takes the snapshot. A missing optional file is not
// an error; only genuinely unreadable files propagate.
func ReadSystemDNSState(ctx context.Context, paths Paths, svc ServiceManager) (SystemDNSState, error) {
	s := SystemDNSState{
		ResolvedActive: svc.IsActive(ctx, ResolvedUnit),
	}

	b, err := os.ReadFile(paths.DHClientConf)
	switch {
	case err == nil:
		s.DHClientConf = b
	case errors.Is(err, fs.ErrNotExist):
	default:
		return s, classifyFSError("read dhclient config", err)
	}

	if fi, err := os.Stat(paths.HookScript); err == nil {
		s.HookExecutable = fi.Mode().Perm()&0o111 != 0
	}

	if target, err := os.Readlink(paths.ResolvConf); err == nil {
		s.ResolvConfTarget = target
	}

	return s, nil
}
