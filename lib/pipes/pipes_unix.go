// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package pipes

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// restrict ensures FD_CLOEXEC is set on file. It goes through
// SyscallConn rather than Fd so a pollable parent end stays
// non-blocking.
func restrict(file *os.File) error {
	raw, err := file.SyscallConn()
	if err != nil {
		return err
	}
	var fcntlErr error
	err = raw.Control(func(fd uintptr) {
		var flags int
		flags, fcntlErr = unix.FcntlInt(fd, unix.F_GETFD, 0)
		if fcntlErr != nil || flags&unix.FD_CLOEXEC != 0 {
			return
		}
		_, fcntlErr = unix.FcntlInt(fd, unix.F_SETFD, flags|unix.FD_CLOEXEC)
	})
	if err != nil {
		return err
	}
	if fcntlErr != nil {
		return fmt.Errorf("fcntl: %w", fcntlErr)
	}
	return nil
}

// Inheritable reports whether file would survive exec in a child that
// did not receive it through stdio wiring.
func Inheritable(file *os.File) (bool, error) {
	raw, err := file.SyscallConn()
	if err != nil {
		return false, err
	}
	var (
		flags    int
		fcntlErr error
	)
	err = raw.Control(func(fd uintptr) {
		flags, fcntlErr = unix.FcntlInt(fd, unix.F_GETFD, 0)
	})
	if err != nil {
		return false, err
	}
	if fcntlErr != nil {
		return false, fcntlErr
	}
	return flags&unix.FD_CLOEXEC == 0, nil
}
