// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package exitcode

import (
	"strings"
	"testing"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{AuthenticationFailed, messages[AuthenticationFailed]},
		{NotFound, "interpreter not found"},
		{3, "exit status 3"},
		{208, "exit status 208"},
	}
	for _, test := range tests {
		if got := Describe(test.code); got != test.want {
			t.Errorf("Describe(%d) = %q, want %q", test.code, got, test.want)
		}
	}
}

func TestMessageUnknownIsEmpty(t *testing.T) {
	if got := Message(1); got != "" {
		t.Errorf("Message(1) = %q, want empty", got)
	}
}

func TestIsAuthentication(t *testing.T) {
	for code := 0; code < 256; code++ {
		want := code == AuthenticationFailed || code == UnknownUser || code == AccountUnavailable
		if got := IsAuthentication(code); got != want {
			t.Errorf("IsAuthentication(%d) = %v, want %v", code, got, want)
		}
	}
}

func TestEveryHelperCodeHasMessage(t *testing.T) {
	for _, code := range []int{
		AuthenticationFailed, UnknownUser, AccountUnavailable, HandshakeFailed,
		PrivilegeDrop, WorkingDirectory, ExecFailed, NotPrivileged, Unsupported,
	} {
		if Message(code) == "" {
			t.Errorf("code %d has no message", code)
		}
	}
}

func TestOSMessage(t *testing.T) {
	if got := OSMessage(0); got != "" {
		t.Errorf("OSMessage(0) = %q, want empty", got)
	}
	// ENOENT is 2 on every supported platform, and ERROR_FILE_NOT_FOUND
	// is 2 on Windows.
	got := strings.ToLower(OSMessage(2))
	if !strings.Contains(got, "no such file") && !strings.Contains(got, "cannot find the file") {
		t.Errorf("OSMessage(2) = %q, want a file-not-found message", got)
	}
}
