// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix && !linux

package broker

import (
	"golang.org/x/sys/unix"
)

// poll checks for termination with wait4(WNOHANG). Without waitid's
// WNOWAIT the child is reaped here and its status kept for Wait.
func (c *execChild) poll() (bool, error) {
	for {
		var status unix.WaitStatus
		pid, err := unix.Wait4(c.cmd.Process.Pid, &status, unix.WNOHANG, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, err
		}
		if pid == 0 {
			return false, nil
		}
		c.reaped = true
		c.reapedCode = status.ExitStatus()
		return true, nil
	}
}
