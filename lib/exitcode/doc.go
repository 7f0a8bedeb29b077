// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package exitcode translates process exit statuses and OS error codes
// into human-readable diagnostics.
//
// The run-as helper reports each failure stage through a distinct exit
// status in the 200 range so the broker can tell a rejected password
// apart from a missing interpreter without parsing stderr. The table
// also covers the shell conventions 126 (found but not executable) and
// 127 (not found). Codes 200 through 202 form the authentication class:
// the broker reports them as authentication failures rather than
// process creation failures.
package exitcode
