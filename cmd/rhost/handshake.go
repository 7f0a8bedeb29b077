// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/rhost/cmd/rhost/cli"
	"github.com/bureau-foundation/rhost/lib/codec"
	"github.com/bureau-foundation/rhost/lib/runas"
)

func (a *app) handshakeCommand() *cli.Command {
	var path string
	return &cli.Command{
		Name:    "handshake",
		Summary: "Decode a captured run-as handshake frame",
		Description: `Read one rhost-runas handshake frame (4-byte big-endian length and a
CBOR body), validate it, and print it in CBOR diagnostic notation. The
password is zeroed before anything is printed.`,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("handshake", pflag.ContinueOnError)
			flagSet.StringVar(&path, "file", "-", `frame file ("-" for stdin)`)
			return flagSet
		},
		Run: func(context.Context, []string) error {
			reader := a.stdin
			if path != "-" {
				file, err := os.Open(path)
				if err != nil {
					return err
				}
				defer file.Close()
				reader = file
			}
			return a.describeHandshake(reader)
		},
	}
}

func (a *app) describeHandshake(reader io.Reader) error {
	handshake, err := runas.Read(reader)
	if err != nil {
		return err
	}
	passwordLength := len(handshake.Password)
	handshake.Wipe()

	data, err := codec.Marshal(handshake)
	if err != nil {
		return err
	}
	notation, err := codec.Diagnose(data)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, notation)
	fmt.Fprintf(a.stdout, "password: %d bytes (removed)\n", passwordLength)
	return nil
}
