// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package interpreter

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestFromInstallPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX layout")
	}
	descriptor := FromInstallPath("R-4.3", "/usr/lib/R")

	if descriptor.BinPath != "/usr/lib/R/lib" {
		t.Errorf("BinPath = %q, want /usr/lib/R/lib", descriptor.BinPath)
	}
	if descriptor.Executable != "/usr/lib/R/bin/exec/R" {
		t.Errorf("Executable = %q, want /usr/lib/R/bin/exec/R", descriptor.Executable)
	}
}

func TestLibraryDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX layout")
	}
	explicit := &Descriptor{Name: "R", InstallPath: "/opt/R", BinPath: "/srv/R/lib"}
	if got := explicit.LibraryDirectory(); got != "/srv/R/lib" {
		t.Errorf("explicit LibraryDirectory() = %q, want /srv/R/lib", got)
	}
	derived := &Descriptor{Name: "R", InstallPath: "/opt/R"}
	if got := derived.LibraryDirectory(); got != "/opt/R/lib" {
		t.Errorf("derived LibraryDirectory() = %q, want /opt/R/lib", got)
	}
	if derived.BinPath != "" {
		t.Errorf("LibraryDirectory mutated BinPath to %q", derived.BinPath)
	}
	if got := (&Descriptor{Name: "R"}).LibraryDirectory(); got != "" {
		t.Errorf("empty LibraryDirectory() = %q, want empty", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		descriptor Descriptor
		wantError  string
	}{
		{name: "valid", descriptor: Descriptor{Name: "R", InstallPath: "/opt/R"}},
		{name: "missing name", descriptor: Descriptor{InstallPath: "/opt/R"}, wantError: "name is required"},
		{name: "missing install path", descriptor: Descriptor{Name: "R"}, wantError: "install_path is required"},
		{name: "relative install path", descriptor: Descriptor{Name: "R", InstallPath: "opt/R"}, wantError: "must be absolute"},
		{name: "negative wait", descriptor: Descriptor{Name: "R", InstallPath: "/opt/R", LivenessWait: -1}, wantError: "must not be negative"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.descriptor.Validate()
			if test.wantError == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), test.wantError) {
				t.Fatalf("Validate() = %v, want error containing %q", err, test.wantError)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permission bits")
	}
	installPath := t.TempDir()
	descriptor := FromInstallPath("R", installPath)

	if err := descriptor.Check(); err == nil {
		t.Fatal("Check() should fail when the executable is missing")
	}

	if err := os.MkdirAll(filepath.Dir(descriptor.Executable), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(descriptor.Executable, []byte("#!/bin/sh\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := descriptor.Check(); err == nil || !strings.Contains(err.Error(), "not executable") {
		t.Fatalf("Check() = %v, want not-executable error", err)
	}

	if err := os.Chmod(descriptor.Executable, 0755); err != nil {
		t.Fatalf("Chmod: %v", err)
	}
	if err := descriptor.Check(); err != nil {
		t.Fatalf("Check() = %v, want nil", err)
	}
}

func TestRegistry(t *testing.T) {
	registry, err := NewRegistry([]Descriptor{
		{Name: "R-4.3", InstallPath: "/opt/R/4.3"},
		{Name: "R-4.2", InstallPath: "/opt/R/4.2", Executable: "/opt/R/4.2/bin/R"},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	first, err := registry.Lookup("")
	if err != nil {
		t.Fatalf("Lookup(\"\"): %v", err)
	}
	if first.Name != "R-4.3" {
		t.Errorf("default interpreter = %q, want R-4.3", first.Name)
	}
	if first.BinPath == "" || first.Executable == "" {
		t.Errorf("layout defaults not filled in: %+v", first)
	}

	second, err := registry.Lookup("R-4.2")
	if err != nil {
		t.Fatalf("Lookup(R-4.2): %v", err)
	}
	if second.Executable != "/opt/R/4.2/bin/R" {
		t.Errorf("explicit executable overwritten: %q", second.Executable)
	}

	if _, err := registry.Lookup("R-3.6"); err == nil {
		t.Error("Lookup of unknown interpreter should fail")
	}
	if got := len(registry.All()); got != 2 {
		t.Errorf("All() returned %d descriptors, want 2", got)
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry([]Descriptor{
		{Name: "R", InstallPath: "/opt/R/a"},
		{Name: "R", InstallPath: "/opt/R/b"},
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("NewRegistry = %v, want duplicate error", err)
	}
}

func TestEmptyRegistry(t *testing.T) {
	registry, err := NewRegistry(nil)
	if err != nil {
		t.Fatalf("NewRegistry(nil): %v", err)
	}
	if _, err := registry.Lookup(""); err == nil {
		t.Error("Lookup on empty registry should fail")
	}
}
