// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package runas

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bureau-foundation/rhost/lib/codec"
	"github.com/bureau-foundation/rhost/lib/secret"
)

// ProtocolVersion is the handshake version this build speaks.
const ProtocolVersion = 1

// MaxFrameSize bounds the encoded handshake.
const MaxFrameSize = 64 * 1024

// ErrFrame reports a malformed, truncated, or oversize frame.
var ErrFrame = errors.New("malformed run-as handshake")

// Handshake carries one launch request to the helper.
type Handshake struct {
	Version  int    `cbor:"version"`
	UserName string `cbor:"user_name"`

	// Password is zeroed by Wipe. Write does not retain it.
	Password []byte `cbor:"password"`

	// Executable is the absolute path of the interpreter.
	Executable string `cbor:"executable"`

	// Arguments excludes argv[0]; the helper supplies Executable.
	Arguments []string `cbor:"arguments"`

	// Environment is the interpreter's complete environment as
	// KEY=value entries. The helper's own environment is not passed on.
	Environment []string `cbor:"environment"`

	// WorkingDirectory is created mode 0700 if missing. Empty means the
	// user's home directory.
	WorkingDirectory string `cbor:"working_directory"`
}

// Validate checks the fields the helper needs before authenticating.
func (h *Handshake) Validate() error {
	if h.Version != ProtocolVersion {
		return fmt.Errorf("%w: version %d, want %d", ErrFrame, h.Version, ProtocolVersion)
	}
	if h.UserName == "" {
		return fmt.Errorf("%w: user name is empty", ErrFrame)
	}
	if h.Executable == "" {
		return fmt.Errorf("%w: executable is empty", ErrFrame)
	}
	for _, entry := range h.Environment {
		if key, _, ok := strings.Cut(entry, "="); !ok || key == "" {
			return fmt.Errorf("%w: environment entry %q is not KEY=value", ErrFrame, entry)
		}
	}
	return nil
}

// Wipe zeroes the password.
func (h *Handshake) Wipe() {
	secret.Zero(h.Password)
	h.Password = nil
}

// Write encodes h as one frame. Intermediate buffers holding the
// password are zeroed before Write returns.
func Write(w io.Writer, h *Handshake) error {
	data, err := codec.Marshal(h)
	defer secret.Zero(data)
	if err != nil {
		return fmt.Errorf("encoding handshake: %w", err)
	}
	if len(data) > MaxFrameSize {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrFrame, len(data), MaxFrameSize)
	}

	frame := make([]byte, 4+len(data))
	defer secret.Zero(frame)
	binary.BigEndian.PutUint32(frame, uint32(len(data)))
	copy(frame[4:], data)

	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("writing handshake: %w", err)
	}
	return nil
}

// Read decodes one frame from r, consuming exactly the frame's bytes.
// The caller must Wipe the result.
func Read(r io.Reader) (*Handshake, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("%w: reading length: %w", ErrFrame, err)
	}
	size := binary.BigEndian.Uint32(header[:])
	if size == 0 || size > MaxFrameSize {
		return nil, fmt.Errorf("%w: frame length %d out of range", ErrFrame, size)
	}

	data := make([]byte, size)
	defer secret.Zero(data)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrFrame, err)
	}

	var handshake Handshake
	if err := codec.Unmarshal(data, &handshake); err != nil {
		handshake.Wipe()
		return nil, fmt.Errorf("%w: %w", ErrFrame, err)
	}
	if err := handshake.Validate(); err != nil {
		handshake.Wipe()
		return nil, err
	}
	return &handshake, nil
}
