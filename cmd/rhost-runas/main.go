// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

// rhost-runas is the credential helper behind the broker's credential
// identity path. It must be installed setuid root (or started by a
// broker running as root). It reads one handshake frame from stdin,
// authenticates the user through PAM, drops to the account, enters the
// working directory, and execs the interpreter in place, so the
// interpreter inherits the broker's stdio pipes.
//
// It never returns on success. On failure it exits with one of the
// codes in lib/exitcode, which the broker translates into a launch
// error. Nothing is written to stdout: the broker may already be
// reading it as the interpreter's output.
package main

import (
	"os"

	"github.com/bureau-foundation/rhost/lib/process"
	"github.com/bureau-foundation/rhost/lib/runas"
)

func main() {
	code, err := runas.NewHelper().Run(os.Stdin)
	process.Exit(code, err)
}
