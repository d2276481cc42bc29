// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package baseline

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel errors that let callers decide fatal-vs-warning
// programmatically instead of inspecting error text.
var (
	ErrNotFound           = errors.New("not found")
	ErrPermission         = errors.New("permission denied")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// FatalError marks an error that must abort the pipeline immediately.
// Everything else is reported and the pipeline continues, on the
// principle that a visible end-state report is more valuable than
// stopping early once destructive steps have begun.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

func Fatalf(format string, args ...any) error {
	return &FatalError{Err: fmt.Errorf(format, args...)}
}

func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}

// classifyFSError maps filesystem errors onto the error taxonomy.
// Permission errors are fatal: the pipeline cannot proceed without
// config file write access.
func classifyFSError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrPermission):
		return Fatal(fmt.Errorf("%s: %w: %w", op, ErrPermission, err))
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s: %w: %w", op, ErrNotFound, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
