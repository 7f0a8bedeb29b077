// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package interpreter describes installed language runtimes that the
// broker can launch.
//
// A [Descriptor] is produced by discovery (configuration, or probing an
// install directory with [FromInstallPath]) and is read-only to the
// broker. The broker uses it for three things: the default executable
// to start, the runtime home variable, and the library directory that
// is prefixed onto the child's dynamic-library search path.
package interpreter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Descriptor is an immutable description of one installed interpreter.
type Descriptor struct {
	// Name identifies the interpreter in configuration and logs
	// (e.g., "R-4.3").
	Name string `yaml:"name"`

	// Version is informational.
	Version string `yaml:"version,omitempty"`

	// InstallPath is the runtime home (R_HOME).
	InstallPath string `yaml:"install_path"`

	// BinPath is the directory holding the runtime's shared libraries.
	// It is prefixed onto the child's dynamic-library search path.
	BinPath string `yaml:"bin_path,omitempty"`

	// Executable is the binary started when a launch request does not
	// name one explicitly.
	Executable string `yaml:"executable,omitempty"`

	// LivenessWait overrides the broker's post-spawn liveness wait for
	// slow-starting runtimes. Zero means use the broker default.
	LivenessWait time.Duration `yaml:"liveness_wait,omitempty"`
}

// FromInstallPath derives a descriptor from an R installation
// directory using the platform's standard layout:
//
//	linux/darwin: <install>/lib, <install>/bin/exec/R
//	windows:      <install>\bin\x64, <install>\bin\x64\Rterm.exe
func FromInstallPath(name, installPath string) *Descriptor {
	descriptor := &Descriptor{Name: name, InstallPath: installPath}
	descriptor.fillDefaults()
	return descriptor
}

// fillDefaults derives BinPath and Executable from InstallPath when
// they are not set explicitly.
func (d *Descriptor) fillDefaults() {
	if d.InstallPath == "" {
		return
	}
	d.BinPath = d.LibraryDirectory()
	if d.Executable != "" {
		return
	}
	if runtime.GOOS == "windows" {
		d.Executable = filepath.Join(d.BinPath, "Rterm.exe")
	} else {
		d.Executable = filepath.Join(d.InstallPath, "bin", "exec", "R")
	}
}

// LibraryDirectory returns BinPath, or the platform's standard library
// directory under InstallPath when BinPath is unset. It returns "" only
// when both are empty.
func (d *Descriptor) LibraryDirectory() string {
	if d.BinPath != "" || d.InstallPath == "" {
		return d.BinPath
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(d.InstallPath, "bin", "x64")
	}
	return filepath.Join(d.InstallPath, "lib")
}

// Validate checks that the descriptor is complete. It does not touch
// the filesystem; use [Descriptor.Check] for that.
func (d *Descriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("interpreter name is required")
	}
	if d.InstallPath == "" {
		return fmt.Errorf("interpreter %q: install_path is required", d.Name)
	}
	if !filepath.IsAbs(d.InstallPath) {
		return fmt.Errorf("interpreter %q: install_path must be absolute, got %q", d.Name, d.InstallPath)
	}
	if d.LivenessWait < 0 {
		return fmt.Errorf("interpreter %q: liveness_wait must not be negative", d.Name)
	}
	return nil
}

// Check verifies that the install directory exists and the executable
// is a regular, executable file.
func (d *Descriptor) Check() error {
	info, err := os.Stat(d.InstallPath)
	if err != nil {
		return fmt.Errorf("interpreter %q: %w", d.Name, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("interpreter %q: install_path %s is not a directory", d.Name, d.InstallPath)
	}

	info, err = os.Stat(d.Executable)
	if err != nil {
		return fmt.Errorf("interpreter %q: %w", d.Name, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("interpreter %q: executable %s is not a regular file", d.Name, d.Executable)
	}
	if runtime.GOOS != "windows" && info.Mode()&0111 == 0 {
		return fmt.Errorf("interpreter %q: executable %s is not executable", d.Name, d.Executable)
	}
	return nil
}

// Registry is an ordered, name-indexed set of descriptors.
type Registry struct {
	descriptors []*Descriptor
	index       map[string]*Descriptor
}

// NewRegistry validates the descriptors, fills in layout defaults, and
// indexes them by name. Duplicate names are an error.
func NewRegistry(descriptors []Descriptor) (*Registry, error) {
	registry := &Registry{index: make(map[string]*Descriptor, len(descriptors))}
	for index := range descriptors {
		descriptor := descriptors[index]
		if err := descriptor.Validate(); err != nil {
			return nil, err
		}
		descriptor.fillDefaults()
		if _, exists := registry.index[descriptor.Name]; exists {
			return nil, fmt.Errorf("duplicate interpreter name %q", descriptor.Name)
		}
		registry.descriptors = append(registry.descriptors, &descriptor)
		registry.index[descriptor.Name] = &descriptor
	}
	return registry, nil
}

// Lookup returns the descriptor with the given name. An empty name
// selects the first configured interpreter.
func (r *Registry) Lookup(name string) (*Descriptor, error) {
	if name == "" {
		if len(r.descriptors) == 0 {
			return nil, fmt.Errorf("no interpreters configured")
		}
		return r.descriptors[0], nil
	}
	descriptor, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("unknown interpreter %q", name)
	}
	return descriptor, nil
}

// All returns the descriptors in configuration order.
func (r *Registry) All() []*Descriptor {
	return append([]*Descriptor(nil), r.descriptors...)
}
