// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the CBOR configuration for rhost's private wire
// formats.
//
// The only CBOR producer and consumer today is the run-as handshake
// between the broker and its credential helper. Both sides are built
// from the same tree, so the decoder is strict: unknown fields and
// duplicate map keys are errors rather than forward-compatible
// extensions. The encoder uses Core Deterministic Encoding (RFC 8949
// §4.2) so that identical handshakes produce identical bytes.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Types serialized here carry `cbor` struct tags and are never
// marshaled to JSON.
package codec
