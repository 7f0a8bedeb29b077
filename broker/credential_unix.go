// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package broker

import (
	"fmt"
	"path/filepath"
	"syscall"

	"github.com/bureau-foundation/rhost/lib/runas"
)

// helperEnvironment is the whole environment rhost-runas starts with.
// The interpreter's block travels in the handshake instead: a setuid
// helper's loader strips LD_LIBRARY_PATH and similar variables before
// the helper could read them.
var helperEnvironment = []string{"PATH=/usr/sbin:/usr/bin:/sbin:/bin"}

type credentialSwitcher struct {
	helper string
}

// NewCredentialSwitcher returns the switcher for user name and
// password identities. helperPath is the absolute path of rhost-runas,
// which must be installed setuid root or the broker must run as root.
func NewCredentialSwitcher(helperPath string) (IdentitySwitcher, error) {
	if !filepath.IsAbs(helperPath) {
		return nil, fmt.Errorf("broker: run-as helper path must be absolute, got %q", helperPath)
	}
	return credentialSwitcher{helper: helperPath}, nil
}

func (credentialSwitcher) Name() string { return "credential" }

// ProbesLiveness is true: authentication happens inside the helper
// after the process exists, so a rejected password shows up as an
// early exit.
func (credentialSwitcher) ProbesLiveness() bool { return true }

func (credentialSwitcher) Authorize(spawn *Spawn) error {
	_, err := authorizeCredential(spawn)
	return err
}

func (c credentialSwitcher) Start(spawn *Spawn) (Child, error) {
	credential := spawn.Identity.(*Credential)

	executable, err := resolveExecutable(spawn.Executable)
	if err != nil {
		return nil, err
	}

	// The helper enters the working directory itself, after dropping
	// to the user, so it starts wherever the broker is.
	child, err := startCommand(spawn, c.helper, nil, helperEnvironment, "", &syscall.SysProcAttr{Setsid: true})
	if err != nil {
		return nil, err
	}

	handshake := &runas.Handshake{
		Version:          runas.ProtocolVersion,
		UserName:         spawn.UserName,
		Password:         credential.Password.Bytes(),
		Executable:       executable,
		Arguments:        spawn.Arguments,
		Environment:      spawn.Environment.Environ(),
		WorkingDirectory: spawn.WorkingDirectory,
	}
	if err := runas.Write(spawn.Pipes.Stdin.ParentEnd(), handshake); err != nil {
		child.Kill()
		child.Wait()
		return nil, &Error{Kind: KindProcessCreation, Op: "spawn", Message: "sending run-as handshake", Err: err}
	}
	return child, nil
}
