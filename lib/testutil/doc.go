// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for rhost packages.
//
// [RequireReceive] and [RequireClosed] encapsulate the timeout safety
// valve pattern (select with time.After fallback) so that individual
// tests do not need direct time.After calls.
//
// [WriteScript] writes an executable /bin/sh script into a test's
// temporary directory. Launch tests use scripts as stand-in
// interpreters and run-as helpers so they can exercise real process
// creation without an installed runtime.
//
// [OpenFiles] counts the calling process's open descriptors, for
// asserting that a failed launch released every pipe.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
