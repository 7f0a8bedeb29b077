// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package broker

import (
	"errors"
	"syscall"
)

// osErrorCode extracts the errno (POSIX) or Win32 error code from err's
// chain, or returns 0.
func osErrorCode(err error) int {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return int(errno)
	}
	return 0
}
