// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package runas is the contract between the broker and rhost-runas,
// the helper that turns a user name and password into a process
// running as that user.
//
// The broker starts the helper with the interpreter's pipes already
// wired to its stdio and writes a single [Handshake] frame onto its
// stdin: a 4-byte big-endian length followed by one CBOR item. The
// helper reads exactly that many bytes, so everything written to stdin
// afterwards reaches the interpreter untouched. It then authenticates
// the pair against the host, switches to the user, enters the profile
// directory, and execs the interpreter in place. Each failure stage
// exits with its own status from lib/exitcode.
//
// The password travels only through the pipe. It is never placed in
// argv or the environment, and both sides zero their copies as soon as
// they are done with them.
package runas
