// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds passwords for credential-path launches in memory
// the garbage collector never sees.
//
// [Buffer] allocates its storage outside the Go heap and locks it into
// physical RAM: mmap(MAP_ANONYMOUS) with mlock and MADV_DONTDUMP on
// POSIX hosts, VirtualAlloc with VirtualLock on Windows. Close zeroes
// the memory before releasing it. A password enters a Buffer through
// [NewFromBytes], which zeroes the caller's copy, or through
// [ReadFromPath] and [ReadFromTerminal] on the command line.
//
// After Close, any access panics. Close is idempotent.
package secret
