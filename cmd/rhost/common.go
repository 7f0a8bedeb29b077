// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/rhost/lib/config"
	"github.com/bureau-foundation/rhost/lib/interpreter"
)

// configFlags are shared by every command that reads configuration.
type configFlags struct {
	path        string
	interpreter string
	installPath string
}

func (f *configFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.path, "config", "", "path to rhost.yaml (default: $"+config.EnvironmentVariable+", else built-in defaults)")
	flagSet.StringVar(&f.interpreter, "interpreter", "", "configured interpreter name (default: the first configured)")
	flagSet.StringVar(&f.installPath, "install-path", "", "interpreter installation directory, overriding --interpreter")
}

// load reads and validates the configuration.
func (f *configFlags) load() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case f.path != "":
		cfg, err = config.LoadFile(f.path)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// resolveInterpreter picks the descriptor named by the flags.
func (f *configFlags) resolveInterpreter(cfg *config.Config) (*interpreter.Descriptor, error) {
	if f.installPath != "" {
		name := f.interpreter
		if name == "" {
			name = "R"
		}
		descriptor := interpreter.FromInstallPath(name, f.installPath)
		if err := descriptor.Validate(); err != nil {
			return nil, err
		}
		return descriptor, nil
	}
	registry, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	return registry.Lookup(f.interpreter)
}
