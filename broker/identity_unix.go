// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package broker

import (
	"fmt"
	"log/slog"
	"os/user"

	"github.com/bureau-foundation/rhost/lib/runas"
)

// rootDirectory is the profile path of last resort.
const rootDirectory = "/"

// Token is a resolved POSIX account. The token switcher applies it
// with a credential switch at exec time, which requires the broker to
// run as root or as the same account.
type Token struct {
	UserName string
	Uid      uint32
	Gid      uint32
	Groups   []uint32
	Home     string
}

// LookupToken resolves userName in the host account database.
func LookupToken(userName string) (*Token, error) {
	account, err := runas.LookupAccount(userName)
	if err != nil {
		return nil, err
	}
	return tokenFromAccount(account), nil
}

// CurrentToken returns the account the broker runs as.
func CurrentToken() (*Token, error) {
	current, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("resolving current user: %w", err)
	}
	return LookupToken(current.Username)
}

func tokenFromAccount(account *runas.Account) *Token {
	token := &Token{
		UserName: account.Name,
		Uid:      uint32(account.Uid),
		Gid:      uint32(account.Gid),
		Home:     account.Home,
	}
	for _, group := range account.Groups {
		token.Groups = append(token.Groups, uint32(group))
	}
	return token
}

// Subject returns the account name.
func (t *Token) Subject() string { return t.UserName }

// LogValue renders only the account name.
func (t *Token) LogValue() slog.Value { return slog.StringValue(t.UserName) }

// HomeDirectory returns the account's home directory.
func (t *Token) HomeDirectory() string { return t.Home }
