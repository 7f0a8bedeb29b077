// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package exitcode

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// OSMessage returns the system's text for an errno value, prefixed with
// its symbolic name when known, or "" for 0.
func OSMessage(code int) string {
	if code == 0 {
		return ""
	}
	errno := syscall.Errno(code)
	if name := unix.ErrnoName(errno); name != "" {
		return name + ": " + errno.Error()
	}
	return errno.Error()
}
