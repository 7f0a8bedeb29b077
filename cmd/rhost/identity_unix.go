// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package main

import (
	"github.com/bureau-foundation/rhost/broker"
	"github.com/bureau-foundation/rhost/lib/config"
	"github.com/bureau-foundation/rhost/lib/hostenv"
)

// tokenIdentity resolves user, or the current account when user is
// empty.
func tokenIdentity(user string) (broker.Identity, error) {
	var (
		token *broker.Token
		err   error
	)
	if user == "" {
		token, err = broker.CurrentToken()
	} else {
		token, err = broker.LookupToken(hostenv.UserName(user))
	}
	if err != nil {
		return nil, err
	}
	return token, nil
}

// credentialSwitcher locates rhost-runas for the credential path.
func credentialSwitcher(cfg *config.Config) (broker.IdentitySwitcher, error) {
	helper, err := cfg.RunAsHelperPath()
	if err != nil {
		return nil, err
	}
	return broker.NewCredentialSwitcher(helper)
}
