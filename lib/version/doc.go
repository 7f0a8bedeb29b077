// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for rhost
// binaries.
//
// [GitCommit], [GitDirty], [BuildTime], and [Version] are injected at
// build time via -ldflags -X:
//
//	go build -ldflags "-X github.com/bureau-foundation/rhost/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// When they are not injected, [Info] falls back to the VCS stamp the
// Go toolchain records in the binary.
package version
