// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package baseline

import (
	"os"
)

// RequireRoot refuses to proceed unless the process runs with root
// privileges. Every tool mutates system files under /etc, nothing works
// without them.
func RequireRoot() error {
	if os.Geteuid() != 0 {
		return Fatalf("this command must be run as root")
	}
	return nil
}
