// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/rhost/cmd/rhost/cli"
	"github.com/bureau-foundation/rhost/lib/binhash"
)

func (a *app) interpretersCommand() *cli.Command {
	var flags configFlags
	return &cli.Command{
		Name:    "interpreters",
		Summary: "List configured interpreters and check their installations",
		Description: `List the interpreters in the configuration, in order (the first is the
default), with each executable's fingerprint. An interpreter whose
installation is missing or not executable is reported with the reason.`,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("interpreters", pflag.ContinueOnError)
			flagSet.StringVar(&flags.path, "config", "", "path to rhost.yaml")
			return flagSet
		},
		Run: func(context.Context, []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			registry, err := cfg.Registry()
			if err != nil {
				return err
			}
			descriptors := registry.All()
			if len(descriptors) == 0 {
				fmt.Fprintln(a.stdout, "no interpreters configured")
				return nil
			}

			failed := 0
			writer := tabwriter.NewWriter(a.stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(writer, "NAME\tEXECUTABLE\tSTATUS")
			for _, descriptor := range descriptors {
				status := "ok"
				if err := descriptor.Check(); err != nil {
					status = err.Error()
					failed++
				} else if digest, err := binhash.HashFile(descriptor.Executable); err == nil {
					status = "ok " + digest.String()[:16]
				}
				fmt.Fprintf(writer, "%s\t%s\t%s\n", descriptor.Name, descriptor.Executable, status)
			}
			writer.Flush()

			if failed > 0 {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}
