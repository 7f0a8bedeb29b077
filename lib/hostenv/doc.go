// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package hostenv builds the environment block for an interpreter
// child process.
//
// The child never inherits the broker's environment wholesale. [Build]
// starts from an empty [Block] and sets, in order:
//
//   - the home directory variable (HOME / USERPROFILE) to the profile
//     path
//   - PATH, copied from the host, or a minimal default when the host
//     has none
//   - PWD (POSIX only) to the profile path
//   - R_HOME to the interpreter's install path
//   - the user name variable (USER / USERNAME), with any DOMAIN\
//     prefix removed
//   - the dynamic-library search path, with the interpreter's library
//     directory prefixed onto the host value
//
// It then copies a fixed allow-list of optional variables (locale,
// paper size, viewers, compression tools, shell) from the host, but
// only those that are present and non-empty. Absent variables are
// omitted, never set to "".
//
// The host environment is read through a [Lookup] function and never
// modified. Tests pass [Snapshot] to pin the host view.
package hostenv
