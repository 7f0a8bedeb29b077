// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !unix

package main

import (
	"errors"

	"github.com/bureau-foundation/rhost/lib/exitcode"
	"github.com/bureau-foundation/rhost/lib/process"
)

func main() {
	process.Exit(exitcode.Unsupported, errors.New("rhost-runas is not used on this platform; the broker logs users on directly"))
}
