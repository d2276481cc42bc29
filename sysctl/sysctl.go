// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package sysctl renders kernel parameter drop-in files and reads the
// live values back from procfs.
package sysctl

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// DropInPath is the drop-in file owned by this tool. A fixed name keeps
// repeated runs from accumulating files.
const DropInPath = "/etc/sysctl.d/99-baseline-ipv6.conf"

// ProcIPv6Disabled is the procfs node reflecting the live state of the
// all-interfaces IPv6 switch.
const ProcIPv6Disabled = "/proc/sys/net/ipv6/conf/all/disable_ipv6"

var ipv6Keys = []string{
	"net.ipv6.conf.all.disable_ipv6",
	"net.ipv6.conf.default.disable_ipv6",
	"net.ipv6.conf.lo.disable_ipv6",
}

// RenderIPv6 emits the drop-in document disabling or enabling IPv6 on
// all interfaces.
func RenderIPv6(disable bool) []byte {
	v := 0
	if disable {
		v = 1
	}

	var b bytes.Buffer
	b.WriteString("# Generated by baseline. Changes will be overwritten.\n")
	for _, k := range ipv6Keys {
		fmt.Fprintf(&b, "%s = %d\n", k, v)
	}
	return b.Bytes()
}

// IPv6Disabled reads the live state from procfs. A kernel built without
// IPv6 has no procfs node, which reads as disabled.
func IPv6Disabled(procPath string) (bool, error) {
	out, err := os.ReadFile(procPath)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(out)) == "1", nil
}

// Apply reloads all sysctl configuration, drop-ins included.
func Apply(ctx context.Context) error {
	out, err := exec.CommandContext(ctx, "sysctl", "--system").CombinedOutput()
	if err != nil {
		return fmt.Errorf("sysctl --system: %w: %s", err, lastLine(out))
	}
	return nil
}

func lastLine(out []byte) string {
	s := strings.TrimSpace(string(out))
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return s
}
