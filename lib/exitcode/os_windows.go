// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package exitcode

import (
	"strings"

	"golang.org/x/sys/windows"
)

// OSMessage returns FormatMessage text for a Win32 error code, or "" for
// 0 or a code the system has no text for.
func OSMessage(code int) string {
	if code == 0 {
		return ""
	}
	buffer := make([]uint16, 512)
	flags := uint32(windows.FORMAT_MESSAGE_FROM_SYSTEM | windows.FORMAT_MESSAGE_IGNORE_INSERTS)
	n, err := windows.FormatMessage(flags, 0, uint32(code), 0, buffer, nil)
	if err != nil || n == 0 {
		return ""
	}
	return strings.TrimRight(windows.UTF16ToString(buffer[:n]), "\r\n. ")
}
