// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package argv splits a single command-line string into an argument
// vector using the legacy backslash/quote rules that Windows programs
// apply to their command line (the CommandLineToArgvW convention).
//
// The broker receives interpreter parameters as one string from its
// callers and must pass them through to the child unchanged, so the
// splitting rules are fixed:
//
//   - A run of backslashes not followed by '"' is literal.
//   - A run of N backslashes followed by '"' produces N/2 backslashes.
//     If N is odd the quote is literal text; if N is even the quote
//     toggles quoting.
//   - An unescaped '"' toggles quoting and is dropped.
//   - Space and tab outside quotes end the current argument. Runs of
//     whitespace never produce empty arguments.
//
// [Tokenize] never fails: an unmatched quote simply extends to the end
// of the input. [Quote] and [Join] are the inverse direction, used when
// composing a command line for a Windows child and in round-trip tests.
//
// This package has no dependencies on other packages in this module.
package argv
