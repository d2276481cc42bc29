// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package hostsfile reads and repairs the system hosts file.
package hostsfile

import (
	"bytes"
	"io"
	"net"
	"os"
	"sort"

	hostsfile "github.com/kevinburke/hostsfile/lib"
	"golang.org/x/exp/maps"

	"github.com/debtools/baseline/utils/osfile"
)

// LoopbackHostAddr is where Debian installers map the machine's own
// hostname so it resolves without a network.
const LoopbackHostAddr = "127.0.1.1"

func LocalhostAliases() ([]string, error) {
	f, err := os.Open(hostsfile.Location)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readLocalhostAliases(f)
}

func readLocalhostAliases(r io.Reader) ([]string, error) {
	hf, err := hostsfile.Decode(r)
	if err != nil {
		return nil, err
	}

	aliases := make(map[string]struct{})
	for _, r := range hf.Records() {
		if r.IpAddress.IP.IsLoopback() {
			for a := range r.Hostnames {
				aliases[a] = struct{}{}
			}
		}
	}

	v := maps.Keys(aliases)
	sort.Strings(v)
	return v, nil
}

// EnsureHostname makes sure the hosts file at path maps hostname to the
// loopback host address. Returns whether the file was modified. The
// write is atomic and the operation is idempotent.
func EnsureHostname(path, hostname string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	hf, err := hostsfile.Decode(f)
	f.Close()
	if err != nil {
		return false, err
	}

	if hasMapping(hf, hostname) {
		return false, nil
	}

	ip := net.ParseIP(LoopbackHostAddr)
	if err := hf.Set(net.IPAddr{IP: ip}, hostname); err != nil {
		return false, err
	}

	var buf bytes.Buffer
	if err := hostsfile.Encode(&buf, hf); err != nil {
		return false, err
	}
	if err := osfile.WriteAtomic(path, buf.Bytes(), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// Resolves reports whether the hosts file at path maps hostname to any
// loopback address. Used to verify the repair.
func Resolves(path, hostname string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	hf, err := hostsfile.Decode(f)
	if err != nil {
		return false, err
	}
	return hasMapping(hf, hostname), nil
}

func hasMapping(hf hostsfile.Hostsfile, hostname string) bool {
	for _, r := range hf.Records() {
		if !r.IpAddress.IP.IsLoopback() {
			continue
		}
		if _, ok := r.Hostnames[hostname]; ok {
			return true
		}
	}
	return false
}
