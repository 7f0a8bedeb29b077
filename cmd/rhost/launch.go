// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/rhost/broker"
	"github.com/bureau-foundation/rhost/cmd/rhost/cli"
	"github.com/bureau-foundation/rhost/lib/argv"
	"github.com/bureau-foundation/rhost/lib/config"
	"github.com/bureau-foundation/rhost/lib/secret"
)

type launchFlags struct {
	configFlags
	identity         string
	user             string
	passwordFile     string
	executable       string
	commandLine      string
	workingDirectory string
	profile          string
}

func (a *app) launchCommand() *cli.Command {
	var flags launchFlags
	return &cli.Command{
		Name:    "launch",
		Summary: "Start an interpreter as another user",
		Description: `Start an interpreter as another user and connect it to this
terminal.

The token identity path runs the interpreter directly under the named
account (or the current one) and needs rhost to run as root or as that
account. The credential path authenticates a user name and password
through the rhost-runas helper. Arguments after "--" are passed to the
interpreter; --command-line passes a single pre-quoted string instead.

rhost exits with the interpreter's exit status.`,
		Usage: "rhost launch [flags] [-- interpreter-args...]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("launch", pflag.ContinueOnError)
			flags.register(flagSet)
			flagSet.StringVar(&flags.identity, "identity", "", "identity path: token or credential (default: broker.identity from config)")
			flagSet.StringVarP(&flags.user, "user", "u", "", "account to run as, optionally DOMAIN\\user")
			flagSet.StringVar(&flags.passwordFile, "password-file", "", `file holding the password ("-" for stdin); prompts on a terminal when unset`)
			flagSet.StringVar(&flags.executable, "executable", "", "program to run instead of the interpreter's executable")
			flagSet.StringVar(&flags.commandLine, "command-line", "", "arguments as one command line string")
			flagSet.StringVar(&flags.workingDirectory, "working-directory", "", "directory the interpreter starts in (default: the profile directory)")
			flagSet.StringVar(&flags.profile, "profile", "", "directory used as the interpreter's home")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Run R as the current user",
				Command:     "rhost launch --identity token --install-path /opt/R/4.3 -- --vanilla",
			},
			{
				Description: "Run a configured interpreter as alice",
				Command:     "rhost launch --config /etc/rhost/rhost.yaml --interpreter R-4.4 --user alice",
			},
		},
		Run: func(ctx context.Context, args []string) error {
			return a.launch(ctx, &flags, args)
		},
	}
}

func (a *app) launch(ctx context.Context, flags *launchFlags, args []string) error {
	if flags.commandLine != "" && len(args) > 0 {
		return errors.New("--command-line and positional arguments are mutually exclusive")
	}

	cfg, err := flags.load()
	if err != nil {
		return err
	}
	logger, err := configuredLogger(a.stderr, cfg)
	if err != nil {
		return err
	}
	descriptor, err := flags.resolveInterpreter(cfg)
	if err != nil {
		return err
	}

	identityPath := flags.identity
	if identityPath == "" {
		identityPath = cfg.Broker.Identity
	}
	switcher, err := resolveSwitcher(cfg, identityPath, flags)
	if err != nil {
		return err
	}
	wait, err := cfg.LivenessWait()
	if err != nil {
		return err
	}
	launcher, err := broker.New(broker.Config{
		Switcher:          switcher,
		Principal:         cfg.Broker.ServicePrincipal,
		LivenessWait:      wait,
		Logger:            logger,
		OptionalVariables: cfg.Broker.OptionalVariables,
	})
	if err != nil {
		return err
	}

	// Read the password last; Launch destroys it on every outcome.
	identity, err := a.resolveIdentity(identityPath, flags)
	if err != nil {
		return err
	}

	commandLine := flags.commandLine
	if commandLine == "" {
		commandLine = argv.Join(args)
	}
	process, err := launcher.Launch(ctx, &broker.Request{
		Interpreter:      descriptor,
		Executable:       flags.executable,
		CommandLine:      commandLine,
		WorkingDirectory: flags.workingDirectory,
		ProfilePath:      flags.profile,
		UserName:         flags.user,
		Identity:         identity,
	})
	if err != nil {
		return err
	}

	code, err := a.attach(ctx, process, logger)
	if err != nil {
		return err
	}
	if code != 0 {
		return &cli.ExitError{Code: code}
	}
	return nil
}

// resolveSwitcher picks the identity switcher for path.
func resolveSwitcher(cfg *config.Config, path string, flags *launchFlags) (broker.IdentitySwitcher, error) {
	switch path {
	case config.IdentityToken:
		return broker.NewTokenSwitcher(), nil
	case config.IdentityCredential:
		if flags.user == "" {
			return nil, errors.New("--user is required for the credential identity path")
		}
		return credentialSwitcher(cfg)
	default:
		return nil, fmt.Errorf("unknown identity path %q (want %s or %s)", path, config.IdentityToken, config.IdentityCredential)
	}
}

// resolveIdentity resolves the account for the token path, or reads
// the password for the credential path.
func (a *app) resolveIdentity(path string, flags *launchFlags) (broker.Identity, error) {
	if path == config.IdentityToken {
		return tokenIdentity(flags.user)
	}
	password, err := a.readPassword(flags.passwordFile, flags.user)
	if err != nil {
		return nil, err
	}
	return &broker.Credential{UserName: flags.user, Password: password}, nil
}

func (a *app) readPassword(path, user string) (*secret.Buffer, error) {
	if path != "" {
		return secret.ReadFromPath(path)
	}
	terminal, ok := a.stdin.(*os.File)
	if !ok {
		return nil, errors.New("password prompt requires a terminal; use --password-file")
	}
	return secret.ReadFromTerminal(int(terminal.Fd()), a.stderr, fmt.Sprintf("Password for %s: ", user))
}

// attach copies this process's stdio to and from the interpreter until
// it exits, and returns its exit status. Cancelling ctx kills the
// interpreter.
func (a *app) attach(ctx context.Context, process *broker.LaunchedProcess, logger *slog.Logger) (int, error) {
	defer process.Close()

	go func() {
		if _, err := io.Copy(process.Stdin, a.stdin); err != nil {
			logger.Debug("forwarding stdin", "error", err)
		}
		process.Stdin.Close()
	}()

	var output sync.WaitGroup
	output.Add(2)
	go func() {
		defer output.Done()
		io.Copy(a.stdout, process.Stdout)
	}()
	go func() {
		defer output.Done()
		io.Copy(a.stderr, process.Stderr)
	}()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			logger.Info("interrupted, stopping interpreter", "pid", process.Pid)
			process.Kill()
		case <-done:
		}
	}()

	output.Wait()
	code, err := process.Wait()
	if err != nil {
		return 0, fmt.Errorf("waiting for interpreter: %w", err)
	}
	logger.Debug("interpreter exited", "pid", process.Pid, "exit_code", code)
	return code, nil
}

// configuredLogger builds the logger described by the logging section.
func configuredLogger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	return cli.NewLogger(w, level, cfg.Logging.Format)
}
