// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "rhost",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(_ context.Context, args []string) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "launch",
				Run: func(_ context.Context, args []string) error {
					called = "launch"
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"launch"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "launch" {
		t.Errorf("dispatched to %q, want %q", called, "launch")
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var user string
	var receivedArgs []string

	command := &Command{
		Name: "launch",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("launch", pflag.ContinueOnError)
			flagSet.StringVar(&user, "user", "", "account to run as")
			return flagSet
		},
		Run: func(_ context.Context, args []string) error {
			receivedArgs = args
			return nil
		},
	}

	if err := command.Execute(context.Background(), []string{"--user", "alice", "--", "--vanilla", "-q"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if user != "alice" {
		t.Errorf("user = %q, want alice", user)
	}
	if strings.Join(receivedArgs, " ") != "--vanilla -q" {
		t.Errorf("args = %v, want [--vanilla -q]", receivedArgs)
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "launch",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("launch", pflag.ContinueOnError)
			flagSet.String("password-file", "", "")
			return flagSet
		},
		Run: func(context.Context, []string) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--pasword-file", "x"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --password-file?") {
		t.Errorf("error = %q, want a suggestion", err)
	}

	err = command.Execute(context.Background(), []string{"--completely-different"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not suggest for distant flag", err)
	}
}

func TestCommand_Execute_UnknownSubcommand(t *testing.T) {
	root := &Command{
		Name: "rhost",
		Subcommands: []*Command{
			{Name: "interpreters", Run: func(context.Context, []string) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), []string{"interpreter"})
	if err == nil {
		t.Fatal("Execute() = nil, want error")
	}
	if !strings.Contains(err.Error(), `did you mean "interpreters"`) {
		t.Errorf("error = %q, want suggestion", err)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	var help bytes.Buffer
	root := &Command{
		Name:   "rhost",
		Output: &help,
		Subcommands: []*Command{
			{Name: "env", Summary: "Print a child environment", Run: func(context.Context, []string) error { return nil }},
		},
	}

	if err := root.Execute(context.Background(), nil); err == nil {
		t.Fatal("Execute() = nil, want subcommand required")
	}
	if !strings.Contains(help.String(), "Print a child environment") {
		t.Errorf("help output missing subcommand summary:\n%s", help.String())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	command := &Command{
		Name:        "tokenize",
		Description: "Split a command line.",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("tokenize", pflag.ContinueOnError)
			flagSet.Bool("json", false, "print a JSON array")
			return flagSet
		},
		Examples: []Example{{Description: "Split quoted words", Command: `rhost tokenize 'a "b c"'`}},
	}

	var output bytes.Buffer
	command.PrintHelp(&output)
	for _, want := range []string{"Split a command line.", "Usage:\n  tokenize [flags]", "--json", "# Split quoted words"} {
		if !strings.Contains(output.String(), want) {
			t.Errorf("help missing %q:\n%s", want, output.String())
		}
	}
}

func TestCommand_HelpFlag(t *testing.T) {
	var output bytes.Buffer
	ran := false
	command := &Command{
		Name:   "version",
		Output: &output,
		Run: func(context.Context, []string) error {
			ran = true
			return nil
		},
	}
	if err := command.Execute(context.Background(), []string{"--help"}); err != nil {
		t.Fatalf("Execute(--help) error: %v", err)
	}
	if ran {
		t.Error("--help ran the command")
	}
	if output.Len() == 0 {
		t.Error("--help printed nothing")
	}
}
