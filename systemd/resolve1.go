// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package systemd

import (
	"context"
	"fmt"
	"time"

	dbus "github.com/godbus/dbus/v5"
)

const (
	resolvedDest             = "org.freedesktop.resolve1"
	resolvedObjectNode       = "/org/freedesktop/resolve1"
	resolvedManagerIface     = "org.freedesktop.resolve1.Manager"
	resolvedFlushCachesCall  = resolvedManagerIface + ".FlushCaches"
	resolvedDNSSECProperty   = resolvedManagerIface + ".DNSSEC"
	dbusPeerPingCall         = "org.freedesktop.DBus.Peer.Ping"
	resolvedStatusCallBudget = 5 * time.Second
)

// Resolved is a D-Bus client for the systemd-resolved manager object.
type Resolved struct{}

// Ping checks that systemd-resolved is reachable and responsive on the
// system bus.
func (Resolved) Ping(ctx context.Context) error {
	return withResolved(ctx, func(ctx context.Context, obj dbus.BusObject) error {
		if err := obj.CallWithContext(ctx, dbusPeerPingCall, 0).Store(); err != nil {
			return fmt.Errorf("ping resolved: %w", err)
		}
		return nil
	})
}

// Status queries the manager object for its DNSSEC mode. A successful
// round trip doubles as the daemon status check: it proves the manager
// interface answers queries, not merely that the process exists.
func (Resolved) Status(ctx context.Context) (string, error) {
	var mode string
	err := withResolved(ctx, func(ctx context.Context, obj dbus.BusObject) error {
		v, err := obj.GetProperty(resolvedDNSSECProperty)
		if err != nil {
			return fmt.Errorf("query resolved status: %w", err)
		}
		if err := v.Store(&mode); err != nil {
			return fmt.Errorf("decode resolved status: %w", err)
		}
		return nil
	})
	return mode, err
}

// FlushCaches drops cached lookups so the new upstream configuration
// takes effect immediately.
func (Resolved) FlushCaches(ctx context.Context) error {
	return withResolved(ctx, func(ctx context.Context, obj dbus.BusObject) error {
		if err := obj.CallWithContext(ctx, resolvedFlushCachesCall, 0).Store(); err != nil {
			return fmt.Errorf("flush resolved caches: %w", err)
		}
		return nil
	})
}

func withResolved(ctx context.Context, f func(ctx context.Context, obj dbus.BusObject) error) error {
	conn, err := dbus.SystemBus()
	if err != nil {
		return fmt.Errorf("connect to system bus: %w", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, resolvedStatusCallBudget)
	defer cancel()

	return f(ctx, conn.Object(resolvedDest, resolvedObjectNode))
}
