// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteScript writes body as an executable shell script named name in
// a fresh temporary directory and returns its absolute path. body
// should not include the interpreter line.
func WriteScript(t *testing.T, name, body string) string {
	t.Helper()
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skipf("/bin/sh unavailable: %v", err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("writing script %s: %v", name, err)
	}
	return path
}

// OpenFiles returns the number of file descriptors open in this
// process. It skips the test on systems without /proc/self/fd or
// /dev/fd.
func OpenFiles(t *testing.T) int {
	t.Helper()
	for _, directory := range []string{"/proc/self/fd", "/dev/fd"} {
		entries, err := os.ReadDir(directory)
		if err == nil {
			// ReadDir holds one descriptor open on the directory itself.
			return len(entries) - 1
		}
	}
	t.Skip("no descriptor directory available")
	return 0
}
