// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hostenv

import (
	"os"
	"sort"
	"strings"

	"github.com/bureau-foundation/rhost/lib/interpreter"
)

// OptionalVariables is the allow-list of host variables copied into the
// child environment when present and non-empty.
var OptionalVariables = []string{
	"LN_S", "R_ARCH", "R_BROWSER", "R_BZIPCMD", "R_GZIPCMD", "R_LIBS_SITE",
	"R_INCLUDE_DIR", "R_DOC_DIR", "R_PAPERSIZE", "R_PAPERSIZE_USER",
	"R_PDFVIEWER", "R_PRINTCMD", "R_RD4PDF", "R_SHARE_DIR", "R_TEXI2DVICMD",
	"R_UNZIPCMD", "R_ZIPCMD", "SED", "SHELL", "SHLVL", "TAR",
}

// Lookup reads one host variable. It has the signature of os.LookupEnv.
type Lookup func(key string) (string, bool)

// Snapshot returns a Lookup over a fixed map.
func Snapshot(variables map[string]string) Lookup {
	return func(key string) (string, bool) {
		value, ok := variables[key]
		return value, ok
	}
}

// Options are the inputs to Build.
type Options struct {
	Interpreter *interpreter.Descriptor
	ProfilePath string
	UserName    string

	// Lookup reads the host environment. Nil means os.LookupEnv.
	Lookup Lookup

	// Platform selects variable names. Nil means Native().
	Platform *Platform

	// Optional extends OptionalVariables.
	Optional []string

	// Extra is applied last and overrides anything set before it.
	Extra map[string]string
}

// Build constructs the child environment block.
func Build(options Options) *Block {
	lookup := options.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	platform := Native()
	if options.Platform != nil {
		platform = *options.Platform
	}
	hostValue := func(key string) string {
		value, _ := lookup(key)
		return value
	}

	var installPath, binPath string
	if options.Interpreter != nil {
		installPath = options.Interpreter.InstallPath
		binPath = options.Interpreter.LibraryDirectory()
	}

	block := NewBlock()
	setIfNamed := func(key, value string) {
		if key != "" {
			block.Set(key, value)
		}
	}

	setIfNamed(platform.Home, options.ProfilePath)

	searchPath := hostValue(platform.Path)
	if searchPath == "" {
		searchPath = platform.DefaultPath
	}
	setIfNamed(platform.Path, searchPath)

	setIfNamed(platform.WorkingDirectory, options.ProfilePath)
	setIfNamed(platform.RuntimeHome, installPath)
	setIfNamed(platform.User, UserName(options.UserName))

	if platform.LibraryPath != "" && binPath != "" {
		existing, _ := block.Get(platform.LibraryPath)
		if platform.LibraryPath != platform.Path {
			existing = hostValue(platform.LibraryPath)
		}
		block.Set(platform.LibraryPath, prefixList(binPath, existing, platform.ListSeparator))
	} else if platform.LibraryPath != "" && platform.LibraryPath != platform.Path {
		// No interpreter library directory: pass the host value
		// through so the key is still present when the host has one.
		if existing := hostValue(platform.LibraryPath); existing != "" {
			block.Set(platform.LibraryPath, existing)
		}
	}

	for _, key := range OptionalVariables {
		copyIfSet(block, lookup, key)
	}
	for _, key := range options.Optional {
		if _, exists := block.Get(key); exists {
			continue
		}
		copyIfSet(block, lookup, key)
	}

	if len(options.Extra) > 0 {
		keys := make([]string, 0, len(options.Extra))
		for key := range options.Extra {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			block.Set(key, options.Extra[key])
		}
	}

	return block
}

func copyIfSet(block *Block, lookup Lookup, key string) {
	if value, ok := lookup(key); ok && value != "" {
		block.Set(key, value)
	}
}

// prefixList returns head, or head+separator+tail when tail is non-empty.
func prefixList(head, tail, separator string) string {
	if tail == "" {
		return head
	}
	return head + separator + tail
}

// UserName strips a "DOMAIN\" prefix from a login name. Names without a
// domain are returned unchanged.
func UserName(name string) string {
	if index := strings.LastIndexByte(name, '\\'); index >= 0 {
		return name[index+1:]
	}
	return name
}
