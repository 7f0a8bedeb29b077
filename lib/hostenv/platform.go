// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hostenv

import "runtime"

// Platform names the variables that carry each required setting on a
// host family. An empty name means the platform has no such variable
// and the setting is skipped.
type Platform struct {
	Home             string
	Path             string
	WorkingDirectory string
	RuntimeHome      string
	User             string

	// LibraryPath is the dynamic-library search path. When it equals
	// Path (Windows resolves DLLs through PATH) the library directory
	// is prefixed onto PATH itself.
	LibraryPath string

	// ListSeparator joins search path entries.
	ListSeparator string

	// DefaultPath is used when the host has no search path at all.
	DefaultPath string
}

var (
	// Linux is the layout for Linux and other ELF POSIX hosts.
	Linux = Platform{
		Home:             "HOME",
		Path:             "PATH",
		WorkingDirectory: "PWD",
		RuntimeHome:      "R_HOME",
		User:             "USER",
		LibraryPath:      "LD_LIBRARY_PATH",
		ListSeparator:    ":",
		DefaultPath:      "/usr/local/bin:/usr/bin:/bin",
	}

	// Darwin differs from Linux only in the loader variable.
	Darwin = Platform{
		Home:             "HOME",
		Path:             "PATH",
		WorkingDirectory: "PWD",
		RuntimeHome:      "R_HOME",
		User:             "USER",
		LibraryPath:      "DYLD_LIBRARY_PATH",
		ListSeparator:    ":",
		DefaultPath:      "/usr/local/bin:/usr/bin:/bin",
	}

	Windows = Platform{
		Home:          "USERPROFILE",
		Path:          "PATH",
		RuntimeHome:   "R_HOME",
		User:          "USERNAME",
		LibraryPath:   "PATH",
		ListSeparator: ";",
		DefaultPath:   `C:\Windows\system32;C:\Windows`,
	}
)

// Native returns the Platform for the running host.
func Native() Platform {
	switch runtime.GOOS {
	case "windows":
		return Windows
	case "darwin":
		return Darwin
	default:
		return Linux
	}
}
