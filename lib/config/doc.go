// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads rhost's YAML configuration.
//
// Configuration comes from a single file named by the --config flag or
// the RHOST_CONFIG environment variable. There is no implicit discovery:
// a broker that launches processes as other users must run with a
// configuration an operator can point at.
//
// The file may contain development and production sections that
// override base values when the top-level environment matches.
// Production without an explicit section forces the credential helper
// to be an absolute path.
//
// Path values may reference ${HOME} or any other environment variable,
// with an optional default: ${RHOST_PREFIX:-/opt/rhost}.
package config
