// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers for rhost
// binaries. These functions centralize the raw stderr writes that
// happen before a structured logger exists:
//
//   - [Fatal] reports an unrecoverable error from main() and exits 1.
//   - [Exit] reports a staged failure with a specific exit status. The
//     run-as helper uses it so the broker can classify the failure from
//     the status alone.
package process
