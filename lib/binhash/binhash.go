// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte keyed BLAKE3 fingerprint.
type Digest [32]byte

// fingerprintKey separates executable fingerprints from other BLAKE3
// uses. Exactly 32 bytes.
var fingerprintKey = []byte("rhost.interpreter.fingerprint.v1")

// HashFile computes the fingerprint of the file at path.
func HashFile(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	return HashReader(file)
}

// HashReader computes the fingerprint of everything read from reader.
func HashReader(reader io.Reader) (Digest, error) {
	hasher, err := blake3.NewKeyed(fingerprintKey)
	if err != nil {
		panic("binhash: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	if _, err := io.Copy(hasher, reader); err != nil {
		return Digest{}, fmt.Errorf("hashing: %w", err)
	}

	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

// FormatDigest returns the lowercase hex representation of digest.
func FormatDigest(digest Digest) string {
	return hex.EncodeToString(digest[:])
}

// String implements fmt.Stringer.
func (d Digest) String() string { return FormatDigest(d) }

// ParseDigest parses a 64-character hex string.
func ParseDigest(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing hash digest: %w", err)
	}
	if len(decoded) != len(digest) {
		return digest, fmt.Errorf("hash digest is %d bytes, want %d", len(decoded), len(digest))
	}
	copy(digest[:], decoded)
	return digest, nil
}
