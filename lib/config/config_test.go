// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/rhost/lib/interpreter"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rhost.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Environment != Development {
		t.Errorf("expected environment=development, got %s", cfg.Environment)
	}
	if cfg.Broker.Identity != IdentityCredential {
		t.Errorf("expected identity=credential, got %s", cfg.Broker.Identity)
	}
	if cfg.Broker.ServicePrincipal != "NetworkService" {
		t.Errorf("expected service_principal=NetworkService, got %s", cfg.Broker.ServicePrincipal)
	}
	wait, err := cfg.LivenessWait()
	if err != nil || wait != 250*time.Millisecond {
		t.Errorf("LivenessWait() = %v, %v; want 250ms", wait, err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoad_RequiresEnvironmentVariable(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when RHOST_CONFIG not set, got nil")
	}
	if !strings.HasPrefix(err.Error(), "RHOST_CONFIG environment variable not set") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_FromEnvironmentVariable(t *testing.T) {
	path := writeConfig(t, `
environment: development
broker:
  identity: token
  liveness_wait: 1s
interpreters:
  - name: R-4.3
    install_path: /opt/R/4.3
    liveness_wait: 2s
logging:
  level: debug
  format: json
`)
	t.Setenv(EnvironmentVariable, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Broker.Identity != IdentityToken {
		t.Errorf("identity = %q, want token", cfg.Broker.Identity)
	}
	if wait, _ := cfg.LivenessWait(); wait != time.Second {
		t.Errorf("LivenessWait() = %v, want 1s", wait)
	}
	if len(cfg.Interpreters) != 1 || cfg.Interpreters[0].LivenessWait != 2*time.Second {
		t.Errorf("interpreters = %+v, want one entry with liveness_wait 2s", cfg.Interpreters)
	}
	if level, _ := cfg.LogLevel(); level != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, want debug", level)
	}
	// Unset fields keep their defaults.
	if cfg.Broker.RunAsHelper != "rhost-runas" {
		t.Errorf("runas_helper = %q, want default", cfg.Broker.RunAsHelper)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	path := writeConfig(t, "broker: [unterminated\n")
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `
environment: development
broker:
  optional_variables: [LANG]
development:
  broker:
    liveness_wait: 2s
    optional_variables: [LC_ALL]
  logging:
    level: debug
production:
  logging:
    level: error
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Broker.LivenessWait != "2s" {
		t.Errorf("liveness_wait = %q, want development override 2s", cfg.Broker.LivenessWait)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Logging.Level)
	}
	if got := strings.Join(cfg.Broker.OptionalVariables, ","); got != "LANG,LC_ALL" {
		t.Errorf("optional_variables = %s, want LANG,LC_ALL", got)
	}
}

func TestProductionDefaultsRunAsHelperToAbsolutePath(t *testing.T) {
	path := writeConfig(t, "environment: production\n")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !filepath.IsAbs(cfg.Broker.RunAsHelper) {
		t.Errorf("runas_helper = %q, want an absolute path in production", cfg.Broker.RunAsHelper)
	}
}

func TestExpandVariables(t *testing.T) {
	t.Setenv("RHOST_TEST_PREFIX", "/srv/rhost")
	t.Setenv("RHOST_TEST_UNSET", "")
	path := writeConfig(t, `
broker:
  runas_helper: ${RHOST_TEST_PREFIX}/libexec/rhost-runas
interpreters:
  - name: R
    install_path: ${RHOST_TEST_UNSET:-/opt/R}/4.3
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Broker.RunAsHelper != "/srv/rhost/libexec/rhost-runas" {
		t.Errorf("runas_helper = %q", cfg.Broker.RunAsHelper)
	}
	if cfg.Interpreters[0].InstallPath != "/opt/R/4.3" {
		t.Errorf("install_path = %q, want default expansion", cfg.Interpreters[0].InstallPath)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"bad environment", func(c *Config) { c.Environment = "staging" }, "invalid environment"},
		{"bad identity", func(c *Config) { c.Broker.Identity = "kerberos" }, "broker.identity"},
		{"missing helper", func(c *Config) { c.Broker.RunAsHelper = "" }, "runas_helper"},
		{"bad wait", func(c *Config) { c.Broker.LivenessWait = "soon" }, "liveness_wait"},
		{"negative wait", func(c *Config) { c.Broker.LivenessWait = "-1s" }, "negative"},
		{"bad variable", func(c *Config) { c.Broker.OptionalVariables = []string{"NOT-A-NAME"} }, "optional_variables"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"relative interpreter", func(c *Config) {
			c.Interpreters = append(c.Interpreters, interpreterNamed("R", "opt/R"))
		}, "must be absolute"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate succeeded, want error")
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("error %q does not mention %q", err, test.wantErr)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	cfg := Default()
	cfg.Interpreters = append(cfg.Interpreters, interpreterNamed("R-4.3", "/opt/R/4.3"), interpreterNamed("R-4.4", "/opt/R/4.4"))

	registry, err := cfg.Registry()
	if err != nil {
		t.Fatalf("Registry: %v", err)
	}
	descriptor, err := registry.Lookup("")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if descriptor.Name != "R-4.3" {
		t.Errorf("default interpreter = %q, want first configured", descriptor.Name)
	}
}

func TestRunAsHelperPath(t *testing.T) {
	cfg := Default()

	cfg.Broker.RunAsHelper = "/usr/libexec/rhost/rhost-runas"
	if path, err := cfg.RunAsHelperPath(); err != nil || path != cfg.Broker.RunAsHelper {
		t.Errorf("absolute helper resolved to %q, %v", path, err)
	}

	directory := t.TempDir()
	helper := filepath.Join(directory, "rhost-runas-test")
	if err := os.WriteFile(helper, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", directory)

	cfg.Broker.RunAsHelper = "rhost-runas-test"
	path, err := cfg.RunAsHelperPath()
	if err != nil {
		t.Fatalf("RunAsHelperPath: %v", err)
	}
	if path != helper {
		t.Errorf("resolved %q, want %q", path, helper)
	}

	cfg.Broker.RunAsHelper = "rhost-runas-absent"
	if _, err := cfg.RunAsHelperPath(); err == nil {
		t.Error("expected error for helper absent from PATH")
	}
}

func interpreterNamed(name, installPath string) interpreter.Descriptor {
	return interpreter.Descriptor{Name: name, InstallPath: installPath}
}
