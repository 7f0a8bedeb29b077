// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// rhost launches interpreter processes under another account and
// inspects the pieces of a launch: command line tokenization, the
// child environment, and the configured interpreters.
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/rhost/lib/process"
)

func main() {
	if err := run(); err != nil {
		// "rhost launch" exits with the interpreter's status without an
		// extra "error:" line.
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		process.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newApp(os.Stdin, os.Stdout, os.Stderr).root().Execute(ctx, os.Args[1:])
}

// app holds the streams commands read and write, so tests can run the
// command tree against buffers.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{stdin: stdin, stdout: stdout, stderr: stderr}
}
