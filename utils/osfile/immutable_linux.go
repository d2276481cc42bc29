// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package osfile

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// fsImmutableFL is the kernel's FS_IMMUTABLE_FL inode flag
// (linux/fs.h), which x/sys/unix does not export.
const fsImmutableFL = 0x00000010

// ClearImmutable removes the immutable filesystem attribute from path
// so the file can be replaced. A missing file, a filesystem without
// attribute support, or an already clear flag are not errors.
func ClearImmutable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	attr, err := unix.IoctlGetInt(int(f.Fd()), unix.FS_IOC_GETFLAGS)
	if err != nil {
		if unsupportedAttrErr(err) {
			return nil
		}
		return err
	}
	if attr&fsImmutableFL == 0 {
		return nil
	}

	return unix.IoctlSetPointerInt(int(f.Fd()), unix.FS_IOC_SETFLAGS, attr&^fsImmutableFL)
}

// Symlinks cannot carry the attribute and resolv.conf may live on
// tmpfs, both surface as ENOTTY/EINVAL/ENOTSUP from the ioctl.
func unsupportedAttrErr(err error) bool {
	return errors.Is(err, unix.ENOTTY) ||
		errors.Is(err, unix.EINVAL) ||
		errors.Is(err, unix.ENOTSUP) ||
		errors.Is(err, unix.EOPNOTSUPP)
}
