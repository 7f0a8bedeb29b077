// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/rhost/broker"
	"github.com/bureau-foundation/rhost/lib/config"
	"github.com/bureau-foundation/rhost/lib/hostenv"
)

// tokenIdentity returns the broker's own token. Another account's
// token cannot be obtained without its password; use the credential
// path for that.
func tokenIdentity(user string) (broker.Identity, error) {
	token, err := broker.CurrentToken()
	if err != nil {
		return nil, err
	}
	if user != "" && !strings.EqualFold(hostenv.UserName(user), hostenv.UserName(token.UserName)) {
		return nil, fmt.Errorf("the token path can only run as %s; use --identity credential for %s", token.UserName, user)
	}
	return token, nil
}

// credentialSwitcher logs users on in-process; no helper is involved.
func credentialSwitcher(*config.Config) (broker.IdentitySwitcher, error) {
	return broker.NewCredentialSwitcher("")
}
