// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !(linux && cgo)

package runas

// NewPAM returns an Authenticator that always fails with
// ErrUnsupported. PAM requires cgo on Linux.
func NewPAM(string) Authenticator {
	return AuthenticatorFunc(func(string, []byte) error {
		return ErrUnsupported
	})
}
