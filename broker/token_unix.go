// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package broker

import (
	"os"
	"syscall"
)

type tokenSwitcher struct{}

// NewTokenSwitcher returns the switcher for already-resolved
// identities. The child is started directly under the token's uid,
// gid, and groups, in a new session with no controlling terminal.
func NewTokenSwitcher() IdentitySwitcher { return tokenSwitcher{} }

func (tokenSwitcher) Name() string { return "token" }

func (tokenSwitcher) ProbesLiveness() bool { return false }

func (tokenSwitcher) Authorize(spawn *Spawn) error {
	token, ok := spawn.Identity.(*Token)
	if !ok || token == nil {
		return &Error{Kind: KindInvalidRequest, Message: identityMismatch("token", spawn.Identity)}
	}
	if spawn.UserName != "" && token.UserName != "" && spawn.UserName != token.UserName {
		return &Error{
			Kind:    KindInvalidRequest,
			Message: "token belongs to " + token.UserName + ", not " + spawn.UserName,
		}
	}
	return nil
}

func (tokenSwitcher) Start(spawn *Spawn) (Child, error) {
	token := spawn.Identity.(*Token)

	path, err := resolveExecutable(spawn.Executable)
	if err != nil {
		return nil, err
	}

	credential := &syscall.Credential{
		Uid:    token.Uid,
		Gid:    token.Gid,
		Groups: token.Groups,
		// Only root may replace the supplementary group list. A broker
		// running as the target user keeps its own.
		NoSetGroups: os.Geteuid() != 0,
	}
	child, err := startCommand(spawn, path, spawn.Arguments, spawn.Environment.Environ(), spawn.WorkingDirectory, &syscall.SysProcAttr{
		Credential: credential,
		Setsid:     true,
	})
	if err != nil {
		return nil, err
	}
	return child, nil
}
