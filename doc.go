// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package baseline implements baseline configuration workflows for
// Debian and Ubuntu servers.
// The central piece is the DNS reconfiguration pipeline that makes
// systemd-resolved the sole DNS authority on the host: it inspects the
// current system state, removes conflicting configuration sources,
// writes the resolver configuration derived from the selected providers,
// and verifies that name resolution works end to end.
package baseline
