// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package broker

import (
	"golang.org/x/sys/unix"
)

// poll checks for termination with waitid(WNOWAIT), leaving the child
// for Wait to reap.
func (c *execChild) poll() (bool, error) {
	for {
		var info unix.Siginfo
		err := unix.Waitid(unix.P_PID, c.cmd.Process.Pid, &info, unix.WEXITED|unix.WNOHANG|unix.WNOWAIT, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, err
		}
		// With WNOHANG the kernel leaves info zeroed while the child
		// is still running.
		return info.Signo != 0, nil
	}
}
