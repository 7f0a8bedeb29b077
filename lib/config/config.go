// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/rhost/lib/acl"
	"github.com/bureau-foundation/rhost/lib/interpreter"
)

// EnvironmentVariable names the variable Load reads the config path from.
const EnvironmentVariable = "RHOST_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Production is for hosts serving real users.
	Production Environment = "production"
)

// Identity paths the broker can be configured for.
const (
	IdentityToken      = "token"
	IdentityCredential = "credential"
)

// Log formats.
const (
	FormatAuto = "auto"
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the master configuration for rhost.
type Config struct {
	// Environment identifies the deployment type.
	Environment Environment `yaml:"environment"`

	// Broker configures the launch broker.
	Broker BrokerConfig `yaml:"broker"`

	// Interpreters lists the runtimes the broker may launch. The first
	// entry is the default.
	Interpreters []interpreter.Descriptor `yaml:"interpreters"`

	// Logging configures the structured logger.
	Logging LoggingConfig `yaml:"logging"`

	Development *ConfigOverrides `yaml:"development,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Broker  *BrokerConfig  `yaml:"broker,omitempty"`
	Logging *LoggingConfig `yaml:"logging,omitempty"`
}

// BrokerConfig configures the launch broker.
type BrokerConfig struct {
	// Identity selects how launches switch identity: "token" runs the
	// interpreter directly under a resolved account, "credential"
	// authenticates a user name and password through the run-as helper.
	// Default: credential
	Identity string `yaml:"identity"`

	// RunAsHelper is the credential helper binary. A bare name is
	// resolved next to the running executable, then on PATH.
	// Default: rhost-runas
	RunAsHelper string `yaml:"runas_helper"`

	// ServicePrincipal is granted full access to interpreter processes
	// on Windows.
	// Default: NetworkService
	ServicePrincipal string `yaml:"service_principal"`

	// LivenessWait is how long a credential-path launch watches the
	// child for an early exit.
	// Default: 250ms
	LivenessWait string `yaml:"liveness_wait"`

	// OptionalVariables extends the list of host environment variables
	// copied to the child when present.
	OptionalVariables []string `yaml:"optional_variables"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`

	// Format is auto (text on a terminal, JSON otherwise), text, or json.
	// Default: auto
	Format string `yaml:"format"`
}

// Default returns the configuration used as a base before a file is
// loaded, and by commands run without one.
func Default() *Config {
	return &Config{
		Environment: Development,
		Broker: BrokerConfig{
			Identity:         IdentityCredential,
			RunAsHelper:      "rhost-runas",
			ServicePrincipal: acl.DefaultPrincipal,
			LivenessWait:     "250ms",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: FormatAuto,
		},
	}
}

// Load loads configuration from the file named by RHOST_CONFIG.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your rhost.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, applies the
// matching environment section, and expands variables.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
		if overrides == nil && !filepath.IsAbs(c.Broker.RunAsHelper) {
			overrides = &ConfigOverrides{
				Broker: &BrokerConfig{
					RunAsHelper: "/usr/libexec/rhost/rhost-runas",
				},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Broker != nil {
		if overrides.Broker.Identity != "" {
			c.Broker.Identity = overrides.Broker.Identity
		}
		if overrides.Broker.RunAsHelper != "" {
			c.Broker.RunAsHelper = overrides.Broker.RunAsHelper
		}
		if overrides.Broker.ServicePrincipal != "" {
			c.Broker.ServicePrincipal = overrides.Broker.ServicePrincipal
		}
		if overrides.Broker.LivenessWait != "" {
			c.Broker.LivenessWait = overrides.Broker.LivenessWait
		}
		if len(overrides.Broker.OptionalVariables) > 0 {
			c.Broker.OptionalVariables = append(c.Broker.OptionalVariables, overrides.Broker.OptionalVariables...)
		}
	}

	if overrides.Logging != nil {
		if overrides.Logging.Level != "" {
			c.Logging.Level = overrides.Logging.Level
		}
		if overrides.Logging.Format != "" {
			c.Logging.Format = overrides.Logging.Format
		}
	}
}

func (c *Config) expandVariables() {
	c.Broker.RunAsHelper = expandVars(c.Broker.RunAsHelper)
	for index := range c.Interpreters {
		descriptor := &c.Interpreters[index]
		descriptor.InstallPath = expandVars(descriptor.InstallPath)
		descriptor.BinPath = expandVars(descriptor.BinPath)
		descriptor.Executable = expandVars(descriptor.Executable)
	}
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) >= 3 {
			return parts[2]
		}
		return ""
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	identities := []string{IdentityToken, IdentityCredential}
	if !slices.Contains(identities, c.Broker.Identity) {
		errs = append(errs, fmt.Errorf("broker.identity must be one of: %v", identities))
	}
	if c.Broker.Identity == IdentityCredential && c.Broker.RunAsHelper == "" {
		errs = append(errs, errors.New("broker.runas_helper is required for the credential identity path"))
	}
	if _, err := c.LivenessWait(); err != nil {
		errs = append(errs, err)
	}
	for _, name := range c.Broker.OptionalVariables {
		if name == "" || !variableName.MatchString(name) {
			errs = append(errs, fmt.Errorf("broker.optional_variables: invalid variable name %q", name))
		}
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	formats := []string{FormatAuto, FormatText, FormatJSON}
	if !slices.Contains(formats, c.Logging.Format) {
		errs = append(errs, fmt.Errorf("logging.format must be one of: %v", formats))
	}

	if _, err := interpreter.NewRegistry(c.Interpreters); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

var variableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LivenessWait returns broker.liveness_wait as a duration.
func (c *Config) LivenessWait() (time.Duration, error) {
	if c.Broker.LivenessWait == "" {
		return 0, nil
	}
	wait, err := time.ParseDuration(c.Broker.LivenessWait)
	if err != nil {
		return 0, fmt.Errorf("broker.liveness_wait: %w", err)
	}
	if wait < 0 {
		return 0, fmt.Errorf("broker.liveness_wait must not be negative, got %s", wait)
	}
	return wait, nil
}

// LogLevel returns logging.level as a slog level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return 0, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}

// Registry builds the interpreter registry from the configured list.
func (c *Config) Registry() (*interpreter.Registry, error) {
	return interpreter.NewRegistry(c.Interpreters)
}

// RunAsHelperPath resolves broker.runas_helper. An absolute path is
// returned as is. A bare name is looked up next to the running
// executable first, then on PATH.
func (c *Config) RunAsHelperPath() (string, error) {
	name := c.Broker.RunAsHelper
	if filepath.IsAbs(name) {
		return name, nil
	}

	if self, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(self), name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not found next to this executable or in PATH", name)
	}
	return path, nil
}
