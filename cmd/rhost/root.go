// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"

	"github.com/bureau-foundation/rhost/cmd/rhost/cli"
	"github.com/bureau-foundation/rhost/lib/version"
)

func (a *app) root() *cli.Command {
	return &cli.Command{
		Name:   "rhost",
		Output: a.stderr,
		Description: `rhost: interpreter launch broker.

Start interpreter processes as another user with isolated stdio pipes,
a controlled environment, and typed launch errors.`,
		Subcommands: []*cli.Command{
			a.launchCommand(),
			a.tokenizeCommand(),
			a.envCommand(),
			a.interpretersCommand(),
			a.handshakeCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(context.Context, []string) error {
					fmt.Fprintf(a.stdout, "rhost %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Start the default interpreter as alice, reading her password from a file",
				Command:     "rhost launch --config rhost.yaml --user alice --password-file pw.txt -- --vanilla",
			},
			{
				Description: "Show how a command line splits into arguments",
				Command:     `rhost tokenize '"C:\Program Files\R\bin\R.exe" -e "1+1"'`,
			},
			{
				Description: "Print the environment an interpreter would receive",
				Command:     "rhost env --config rhost.yaml --interpreter R-4.3 --user alice",
			},
		},
	}
}
