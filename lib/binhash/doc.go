// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash fingerprints executables with keyed BLAKE3.
//
// The broker logs the fingerprint of every interpreter binary it
// starts, so an operator auditing a launch can tell which build ran
// even after the install directory has been upgraded in place. The
// hash is keyed with a fixed domain key so fingerprints never collide
// with plain BLAKE3 digests of the same file computed elsewhere.
//
//   - [HashFile] streams a file through the hasher with constant memory
//   - [FormatDigest] renders a digest as lowercase hex for log output
//   - [ParseDigest] parses it back, validating length and encoding
package binhash
