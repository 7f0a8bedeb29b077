// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package broker

import (
	"errors"
	"io"
	"os"

	"github.com/bureau-foundation/rhost/lib/interpreter"
)

// Request is one launch. It is built per call and not reused.
type Request struct {
	// Interpreter supplies the runtime home, library path, and default
	// executable. Required.
	Interpreter *interpreter.Descriptor

	// Executable overrides Interpreter.Executable. When both are empty
	// the first token of CommandLine is the program.
	Executable string

	// CommandLine holds the arguments in Windows quoting rules.
	CommandLine string

	// WorkingDirectory is where the child starts. Empty means
	// ProfilePath.
	WorkingDirectory string

	// ProfilePath becomes the child's home directory. Empty falls back
	// to WorkingDirectory, then the identity's home, then the root
	// directory.
	ProfilePath string

	// UserName is the account name as the caller knows it, possibly
	// DOMAIN\user. Empty means Identity.Subject().
	UserName string

	// Identity is consumed by this launch.
	Identity Identity

	// ExtraEnv is applied after every other variable.
	ExtraEnv map[string]string
}

// LaunchedProcess is a running interpreter. The caller owns its
// streams and must Close them and Wait for the process.
type LaunchedProcess struct {
	Pid int

	Stdin  io.WriteCloser
	Stdout io.ReadCloser
	Stderr io.ReadCloser

	child Child
}

func newLaunchedProcess(child Child, stdin, stdout, stderr *os.File) *LaunchedProcess {
	return &LaunchedProcess{
		Pid:    child.Pid(),
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
		child:  child,
	}
}

// Wait blocks until the process exits and returns its exit status, or
// -1 if it was terminated by a signal.
func (p *LaunchedProcess) Wait() (int, error) {
	return p.child.Wait()
}

// Kill terminates the process.
func (p *LaunchedProcess) Kill() error {
	return p.child.Kill()
}

// Close closes the three streams. It does not wait for the process.
func (p *LaunchedProcess) Close() error {
	var errs []error
	for _, stream := range []io.Closer{p.Stdin, p.Stdout, p.Stderr} {
		if stream == nil {
			continue
		}
		if err := stream.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
