// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pipes creates the three anonymous pipes that carry a child
// process's standard streams.
//
// Each [Pair] has a child end (wired to the child's fd 0, 1, or 2) and
// a parent end kept by the broker. The parent end is never inheritable:
// a leaked parent end in some unrelated child would hold the pipe open
// and the interpreter would never see EOF on stdin, or the broker would
// never see EOF on stdout.
//
// On Windows the pipe is created inheritable and the parent end is then
// restricted with SetHandleInformation, so exactly one end of each pair
// carries HANDLE_FLAG_INHERIT. The launcher additionally passes an
// explicit handle list so concurrent launches cannot pick up each
// other's child ends.
//
// On POSIX hosts both ends are created close-on-exec in one step. The
// child end reaches the child only as the descriptor dup'd onto its
// fd 0/1/2 in the forked process, so again exactly one end is visible
// to the child. The parent end's FD_CLOEXEC is verified after creation;
// if it cannot be established the pair is closed and [ErrInheritance]
// is returned.
//
// Pipe allocation failures wrap [ErrExhausted].
package pipes
