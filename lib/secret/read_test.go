// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadFromPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "password")
	if err := os.WriteFile(path, []byte("  s3cret\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	buffer, err := ReadFromPath(path)
	if err != nil {
		t.Fatalf("ReadFromPath: %v", err)
	}
	defer buffer.Close()

	if got := string(buffer.Bytes()); got != "s3cret" {
		t.Errorf("got %q, want %q", got, "s3cret")
	}
}

func TestReadFromPath_FileNotFound(t *testing.T) {
	if _, err := ReadFromPath(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadFromPath_WhitespaceOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "password")
	if err := os.WriteFile(path, []byte(" \n\t\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFromPath(path); err == nil {
		t.Fatal("expected error for whitespace-only file")
	}
}

func TestReadLine(t *testing.T) {
	buffer, err := readLine(strings.NewReader("first line\nsecond line\n"))
	if err != nil {
		t.Fatalf("readLine: %v", err)
	}
	defer buffer.Close()

	if got := string(buffer.Bytes()); got != "first line" {
		t.Errorf("got %q, want %q", got, "first line")
	}
}

func TestReadLine_Empty(t *testing.T) {
	if _, err := readLine(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestReadFromTerminal_NotATerminal(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "stdin")
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	var output strings.Builder
	if _, err := ReadFromTerminal(int(file.Fd()), &output, "Password: "); err == nil {
		t.Fatal("expected error for non-terminal fd")
	}
}
