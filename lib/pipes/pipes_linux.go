// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pipes

import (
	"os"

	"golang.org/x/sys/unix"
)

// newPipe creates both ends close-on-exec atomically. The parent end is
// switched to non-blocking mode before wrapping so os.NewFile registers
// it with the runtime poller; the child end stays blocking because the
// interpreter expects ordinary blocking stdio.
func newPipe(direction Direction) (read, write *os.File, err error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_CLOEXEC); err != nil {
		return nil, nil, err
	}

	parentIndex := 0
	if direction == Stdin {
		parentIndex = 1
	}
	if err := unix.SetNonblock(fds[parentIndex], true); err != nil {
		unix.Close(fds[0])
		unix.Close(fds[1])
		return nil, nil, err
	}

	return os.NewFile(uintptr(fds[0]), "|0"), os.NewFile(uintptr(fds[1]), "|1"), nil
}
