// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/rhost/cmd/rhost/cli"
	"github.com/bureau-foundation/rhost/lib/hostenv"
)

func (a *app) envCommand() *cli.Command {
	var (
		flags    configFlags
		user     string
		profile  string
		platform string
	)
	return &cli.Command{
		Name:    "env",
		Summary: "Print the environment an interpreter would receive",
		Description: `Build the child environment for an interpreter exactly as a launch
would, from this process's environment, and print it as KEY=value lines
in the order the child receives them. Nothing is started.`,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("env", pflag.ContinueOnError)
			flags.register(flagSet)
			flagSet.StringVarP(&user, "user", "u", "", "account name, optionally DOMAIN\\user")
			flagSet.StringVar(&profile, "profile", "", "home directory for the child")
			flagSet.StringVar(&platform, "platform", "", "variable layout: linux, darwin, or windows (default: this host)")
			return flagSet
		},
		Run: func(context.Context, []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			descriptor, err := flags.resolveInterpreter(cfg)
			if err != nil {
				return err
			}
			layout, err := platformNamed(platform)
			if err != nil {
				return err
			}
			block := hostenv.Build(hostenv.Options{
				Interpreter: descriptor,
				ProfilePath: profile,
				UserName:    user,
				Platform:    &layout,
				Optional:    cfg.Broker.OptionalVariables,
			})
			for _, entry := range block.Environ() {
				fmt.Fprintln(a.stdout, entry)
			}
			return nil
		},
	}
}

func platformNamed(name string) (hostenv.Platform, error) {
	switch name {
	case "":
		return hostenv.Native(), nil
	case "linux":
		return hostenv.Linux, nil
	case "darwin":
		return hostenv.Darwin, nil
	case "windows":
		return hostenv.Windows, nil
	default:
		return hostenv.Platform{}, fmt.Errorf("unknown platform %q", name)
	}
}
