// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix && !linux

package secret

// MADV_DONTDUMP is Linux-specific. Other kernels rely on the process
// being marked non-dumpable by its service manager.
func excludeFromCoreDump([]byte) error { return nil }
