// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package broker

import (
	"errors"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"

	"github.com/bureau-foundation/rhost/lib/exitcode"
)

// resolveExecutable looks bare program names up on the broker's PATH.
func resolveExecutable(name string) (string, error) {
	if strings.Contains(name, "/") {
		return name, nil
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", &Error{
			Kind:    KindProcessCreation,
			Op:      "spawn",
			Code:    int(syscall.ENOENT),
			Message: exitcode.OSMessage(int(syscall.ENOENT)),
			Err:     err,
		}
	}
	return path, nil
}

// startCommand starts path with environment and spawn's stdio. The
// child ends reach the child only as fds 0, 1, and 2; every other
// broker descriptor is close-on-exec.
func startCommand(spawn *Spawn, path string, arguments, environment []string, directory string, attributes *syscall.SysProcAttr) (*execChild, error) {
	cmd := &exec.Cmd{
		Path:        path,
		Args:        append([]string{path}, arguments...),
		Env:         environment,
		Dir:         directory,
		Stdin:       spawn.Pipes.Stdin.ChildEnd(),
		Stdout:      spawn.Pipes.Stdout.ChildEnd(),
		Stderr:      spawn.Pipes.Stderr.ChildEnd(),
		SysProcAttr: attributes,
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &execChild{cmd: cmd}, nil
}

// execChild is a process started through os/exec.
type execChild struct {
	cmd *exec.Cmd

	// reaped is set by poll on platforms where the probe has to reap;
	// reapedCode then holds the exit status.
	reaped     bool
	reapedCode int

	once sync.Once
	code int
	err  error
}

func (c *execChild) Pid() int { return c.cmd.Process.Pid }

func (c *execChild) Exited() (bool, error) {
	if c.reaped {
		return true, nil
	}
	return c.poll()
}

func (c *execChild) Wait() (int, error) {
	c.once.Do(func() {
		if c.reaped {
			c.code = c.reapedCode
			c.cmd.Process.Release()
			return
		}
		err := c.cmd.Wait()
		if c.cmd.ProcessState != nil {
			c.code = c.cmd.ProcessState.ExitCode()
			return
		}
		c.code, c.err = -1, err
	})
	return c.code, c.err
}

func (c *execChild) Kill() error {
	if c.reaped {
		return nil
	}
	err := c.cmd.Process.Kill()
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return err
}
