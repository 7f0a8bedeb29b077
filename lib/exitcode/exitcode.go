// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package exitcode

import "strconv"

// Exit statuses used by the run-as helper.
const (
	AuthenticationFailed = 200
	UnknownUser          = 201
	AccountUnavailable   = 202
	HandshakeFailed      = 203
	PrivilegeDrop        = 204
	WorkingDirectory     = 205
	ExecFailed           = 206
	NotPrivileged        = 207
	Unsupported          = 209

	// Shell conventions, also produced by the helper when the
	// interpreter path cannot be executed or does not exist.
	NotExecutable = 126
	NotFound      = 127
)

var messages = map[int]string{
	AuthenticationFailed: "authentication failed: user name or password rejected",
	UnknownUser:          "unknown user",
	AccountUnavailable:   "account unavailable: expired, locked, or not permitted to log in",
	HandshakeFailed:      "run-as handshake failed",
	PrivilegeDrop:        "could not switch to the target user",
	WorkingDirectory:     "could not enter the profile directory",
	ExecFailed:           "could not execute the interpreter",
	NotPrivileged:        "run-as helper is not running with root privileges",
	Unsupported:          "credential authentication is not supported by this build",
	NotExecutable:        "interpreter is not executable",
	NotFound:             "interpreter not found",
}

// Message returns the diagnostic for code, or "" if code is not in the
// table.
func Message(code int) string {
	return messages[code]
}

// Describe returns the diagnostic for code, falling back to the bare
// numeric status.
func Describe(code int) string {
	if message, ok := messages[code]; ok {
		return message
	}
	return "exit status " + strconv.Itoa(code)
}

// IsAuthentication reports whether code belongs to the authentication
// class.
func IsAuthentication(code int) bool {
	return code >= AuthenticationFailed && code <= AccountUnavailable
}
