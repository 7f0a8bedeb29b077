// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/rhost/cmd/rhost/cli"
	"github.com/bureau-foundation/rhost/lib/argv"
)

func (a *app) tokenizeCommand() *cli.Command {
	var asJSON bool
	return &cli.Command{
		Name:    "tokenize",
		Summary: "Split a command line into arguments",
		Description: `Split a command line the way the broker does before launching,
using Windows quoting rules: double quotes group, backslashes escape
only before a quote, and "" inside quotes is a literal quote.

Each argument is printed on its own line, or as a JSON array with --json.`,
		Usage: "rhost tokenize [flags] <command-line>",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("tokenize", pflag.ContinueOnError)
			flagSet.BoolVar(&asJSON, "json", false, "print a JSON array")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Quoted path with spaces",
				Command:     `rhost tokenize '"C:\Program Files\R\bin\R.exe" --vanilla'`,
			},
		},
		Run: func(_ context.Context, args []string) error {
			if len(args) == 0 {
				return errors.New("a command line is required")
			}
			tokens := argv.Tokenize(strings.Join(args, " "))
			if asJSON {
				if tokens == nil {
					tokens = []string{}
				}
				encoder := json.NewEncoder(a.stdout)
				encoder.SetEscapeHTML(false)
				return encoder.Encode(tokens)
			}
			for _, token := range tokens {
				fmt.Fprintln(a.stdout, token)
			}
			return nil
		},
	}
}
