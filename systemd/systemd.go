// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package systemd controls systemd units and talks to
// systemd-resolved over D-Bus.
package systemd

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/debtools/baseline/log"
)

// Manager drives systemctl. It implements baseline.ServiceManager.
type Manager struct {
	log log.Logger
}

func NewManager(logger log.Logger) *Manager {
	if logger == nil {
		logger = log.NopLogger
	}
	return &Manager{log: logger}
}

func (m *Manager) IsActive(ctx context.Context, unit string) bool {
	out, err := exec.CommandContext(ctx, "systemctl", "is-active", unit).Output()
	return err == nil && strings.TrimSpace(string(out)) == "active"
}

// Unmask is best-effort: the unit may never have been masked.
func (m *Manager) Unmask(ctx context.Context, unit string) error {
	return m.run(ctx, "unmask", unit)
}

func (m *Manager) Enable(ctx context.Context, unit string) error {
	return m.run(ctx, "enable", unit)
}

func (m *Manager) Start(ctx context.Context, unit string) error {
	return m.run(ctx, "start", unit)
}

func (m *Manager) Restart(ctx context.Context, unit string) error {
	return m.run(ctx, "restart", unit)
}

func (m *Manager) run(ctx context.Context, verb, unit string) error {
	m.log.Debugf("systemctl %s %s", verb, unit)
	out, err := exec.CommandContext(ctx, "systemctl", verb, unit).CombinedOutput()
	if err != nil {
		return fmt.Errorf("systemctl %s %s: %w: %s", verb, unit, err, strings.TrimSpace(string(out)))
	}
	return nil
}
