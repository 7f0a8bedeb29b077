// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package broker

import (
	"fmt"
	"sync"

	"golang.org/x/sys/windows"
)

// processChild owns the process handle returned by CreateProcessAsUser.
type processChild struct {
	handle windows.Handle
	pid    int

	once sync.Once
	code int
	err  error
}

func (c *processChild) Pid() int { return c.pid }

func (c *processChild) Exited() (bool, error) {
	event, err := windows.WaitForSingleObject(c.handle, 0)
	if err != nil {
		return false, err
	}
	return event == windows.WAIT_OBJECT_0, nil
}

func (c *processChild) Wait() (int, error) {
	c.once.Do(func() {
		defer windows.CloseHandle(c.handle)
		if _, err := windows.WaitForSingleObject(c.handle, windows.INFINITE); err != nil {
			c.code, c.err = -1, fmt.Errorf("waiting for process %d: %w", c.pid, err)
			return
		}
		var status uint32
		if err := windows.GetExitCodeProcess(c.handle, &status); err != nil {
			c.code, c.err = -1, fmt.Errorf("reading exit code of process %d: %w", c.pid, err)
			return
		}
		c.code = int(status)
	})
	return c.code, c.err
}

func (c *processChild) Kill() error {
	exited, err := c.Exited()
	if err != nil || exited {
		return err
	}
	return windows.TerminateProcess(c.handle, 1)
}
