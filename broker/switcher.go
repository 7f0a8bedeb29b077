// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package broker

import (
	"github.com/bureau-foundation/rhost/lib/acl"
	"github.com/bureau-foundation/rhost/lib/hostenv"
	"github.com/bureau-foundation/rhost/lib/pipes"
)

// IdentitySwitcher creates a process under an identity.
type IdentitySwitcher interface {
	// Name identifies the switcher in logs ("token", "credential").
	Name() string

	// Authorize checks that spawn.Identity is usable by this switcher
	// for spawn.UserName before any process is created. It returns an
	// *Error of kind KindInvalidRequest or KindAuthentication.
	Authorize(spawn *Spawn) error

	// Start creates the process. The broker's child ends in
	// spawn.Pipes are still open; the launcher closes them after Start
	// returns.
	Start(spawn *Spawn) (Child, error)

	// ProbesLiveness reports whether the launcher must watch the child
	// for an early failure exit after Start succeeds.
	ProbesLiveness() bool
}

// Spawn is everything a switcher needs to create one process.
type Spawn struct {
	// Executable is the program to run.
	Executable string

	// Arguments are the tokenized command line, excluding argv[0].
	Arguments []string

	// CommandLine is the full command line including the executable,
	// for platforms that pass the command line as a single string.
	CommandLine string

	Environment      *hostenv.Block
	WorkingDirectory string
	UserName         string
	Identity         Identity
	Pipes            *pipes.Set
	Descriptor       acl.Descriptor
}

// Child is a created process.
type Child interface {
	Pid() int

	// Exited reports whether the process has terminated, without
	// reaping it.
	Exited() (bool, error)

	// Wait blocks until the process terminates and returns its exit
	// status, or -1 if it was killed by a signal. Calling Wait again
	// returns the same result.
	Wait() (int, error)

	Kill() error
}
