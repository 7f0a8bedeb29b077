// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix && !linux

package pipes

import "os"

// newPipe uses os.Pipe, which creates both ends close-on-exec (pipe2
// where available, otherwise under syscall.ForkLock).
func newPipe(Direction) (read, write *os.File, err error) {
	return os.Pipe()
}
