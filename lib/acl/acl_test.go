// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package acl

import "testing"

func TestNewBuilderIsNoopOffWindows(t *testing.T) {
	descriptor, err := NewBuilder().Build(DefaultPrincipal)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if descriptor.Principal() != "" {
		t.Errorf("Principal() = %q, want empty for no-op descriptor", descriptor.Principal())
	}
	// Release is idempotent and harmless.
	descriptor.Release()
	descriptor.Release()
}

func TestNoopBuilder(t *testing.T) {
	descriptor, err := Noop{}.Build("anything")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if descriptor.Principal() != "" {
		t.Errorf("Principal() = %q", descriptor.Principal())
	}
}
