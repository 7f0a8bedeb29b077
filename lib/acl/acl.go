// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package acl builds the security descriptor attached to an
// interpreter's process and thread objects.
//
// On Windows a process created with CreateProcessAsUser gets a default
// DACL that admits only the target user and SYSTEM. The broker's
// companion service runs as a different account and still needs to
// query and terminate the interpreter, so the launcher attaches a
// descriptor that grants one named service principal full access. The
// grant has no inheritance and no propagation flags: it applies to the
// process and thread objects only.
//
// On POSIX hosts there is no equivalent object; isolation comes from
// running the child under the target user's uid and gid. [NewBuilder]
// returns a builder whose descriptors carry nothing.
package acl

// DefaultPrincipal is the account granted access when configuration
// does not name one.
const DefaultPrincipal = "NetworkService"

// Descriptor is a built security descriptor. Release must be called
// once the process has been created; the descriptor must not be used
// afterwards.
type Descriptor interface {
	// Principal returns the account the descriptor grants access to,
	// or "" for the no-op descriptor.
	Principal() string

	Release()
}

// Builder creates descriptors granting access to a principal.
type Builder interface {
	Build(principal string) (Descriptor, error)
}

// noopDescriptor is returned on platforms without security descriptors.
type noopDescriptor struct{}

func (noopDescriptor) Principal() string { return "" }

func (noopDescriptor) Release() {}

// Noop is a Builder that returns empty descriptors on every platform.
// Launchers use it when no service principal is configured.
type Noop struct{}

// Build returns an empty descriptor.
func (Noop) Build(string) (Descriptor, error) { return noopDescriptor{}, nil }
