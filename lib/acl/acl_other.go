// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package acl

// NewBuilder returns the no-op builder.
func NewBuilder() Builder { return Noop{} }
