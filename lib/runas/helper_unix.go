// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package runas

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/rhost/lib/exitcode"
)

// Helper runs the credential helper's sequence. The function fields
// default to the host implementations and are replaced in tests.
type Helper struct {
	Authenticator  Authenticator
	Geteuid        func() int
	LookupAccount  func(name string) (*Account, error)
	SwitchTo       func(*Account) error
	EnterDirectory func(directory, home string) (string, error)
	Exec           func(argv0 string, argv []string, envv []string) error
}

// NewHelper returns a Helper wired to PAM and the real system calls.
func NewHelper() *Helper {
	return &Helper{
		Authenticator:  NewPAM(ServiceName),
		Geteuid:        os.Geteuid,
		LookupAccount:  LookupAccount,
		SwitchTo:       SwitchTo,
		EnterDirectory: EnterDirectory,
		Exec:           unix.Exec,
	}
}

// Run reads one handshake from stdin and, on success, replaces the
// process with the interpreter. It returns only on failure, with the
// exit status to report and the cause.
func (h *Helper) Run(stdin io.Reader) (int, error) {
	handshake, err := Read(stdin)
	if err != nil {
		return exitcode.HandshakeFailed, err
	}
	defer handshake.Wipe()

	if euid := h.Geteuid(); euid != 0 {
		return exitcode.NotPrivileged, fmt.Errorf("effective uid is %d, want 0", euid)
	}

	err = h.Authenticator.Authenticate(handshake.UserName, handshake.Password)
	handshake.Wipe()
	if err != nil {
		return ExitCode(err), fmt.Errorf("user %s: %w", handshake.UserName, err)
	}

	account, err := h.LookupAccount(handshake.UserName)
	if err != nil {
		return exitcode.UnknownUser, fmt.Errorf("looking up %s: %w", handshake.UserName, err)
	}
	if err := h.SwitchTo(account); err != nil {
		return exitcode.PrivilegeDrop, fmt.Errorf("switching to %s: %w", account.Name, err)
	}
	if _, err := h.EnterDirectory(handshake.WorkingDirectory, account.Home); err != nil {
		return exitcode.WorkingDirectory, fmt.Errorf("entering working directory: %w", err)
	}

	argv := append([]string{handshake.Executable}, handshake.Arguments...)
	err = h.Exec(handshake.Executable, argv, handshake.Environment)
	return execFailureCode(err), fmt.Errorf("executing %s: %w", handshake.Executable, err)
}

func execFailureCode(err error) int {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case unix.ENOENT:
			return exitcode.NotFound
		case unix.EACCES, unix.ENOEXEC:
			return exitcode.NotExecutable
		}
	}
	return exitcode.ExecFailed
}
