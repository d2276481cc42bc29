// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package apt performs Debian package transactions and renders
// package-repository source lists.
package apt

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/debtools/baseline/log"
)

// Manager drives dpkg and apt-get. It implements
// baseline.PackageManager. Transactions run non-interactively and may
// take visible wall-clock time.
type Manager struct {
	log log.Logger
}

func NewManager(logger log.Logger) *Manager {
	if logger == nil {
		logger = log.NopLogger
	}
	return &Manager{log: logger}
}

func (m *Manager) Installed(ctx context.Context, name string) bool {
	out, err := exec.CommandContext(ctx, "dpkg-query", "-W", "-f=${Status}", name).Output()
	return err == nil && strings.Contains(string(out), "install ok installed")
}

func (m *Manager) Install(ctx context.Context, name string) error {
	return m.run(ctx, "install", name)
}

func (m *Manager) Purge(ctx context.Context, name string) error {
	return m.run(ctx, "purge", name)
}

// Update refreshes the package index. Used by the mirrors tool as its
// verification gate after rewriting the source list.
func (m *Manager) Update(ctx context.Context) error {
	return m.run(ctx, "update")
}

func (m *Manager) run(ctx context.Context, verb string, pkgs ...string) error {
	args := append([]string{verb, "-y"}, pkgs...)
	m.log.Infof("apt-get %s", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, "apt-get", args...)
	cmd.Env = append(os.Environ(), "DEBIAN_FRONTEND=noninteractive")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("apt-get %s: %w: %s", verb, err, lastLine(out))
	}
	return nil
}

func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	return lines[len(lines)-1]
}
