// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package broker

import (
	"fmt"
	"log/slog"

	"golang.org/x/sys/windows"
)

// rootDirectory is the profile path of last resort.
const rootDirectory = `C:\`

// Token is a primary access token. The caller keeps ownership of
// Handle; the broker never closes it.
type Token struct {
	Handle   windows.Token
	UserName string
}

// CurrentToken opens the broker process's own token with the access
// CreateProcessAsUser requires.
func CurrentToken() (*Token, error) {
	var token windows.Token
	access := uint32(windows.TOKEN_QUERY | windows.TOKEN_DUPLICATE | windows.TOKEN_ASSIGN_PRIMARY)
	if err := windows.OpenProcessToken(windows.CurrentProcess(), access, &token); err != nil {
		return nil, fmt.Errorf("opening process token: %w", err)
	}
	return tokenFromHandle(token)
}

func tokenFromHandle(handle windows.Token) (*Token, error) {
	tokenUser, err := handle.GetTokenUser()
	if err != nil {
		return nil, fmt.Errorf("querying token user: %w", err)
	}
	account, domain, _, err := tokenUser.User.Sid.LookupAccount("")
	if err != nil {
		return nil, fmt.Errorf("resolving token user: %w", err)
	}
	name := account
	if domain != "" {
		name = domain + `\` + account
	}
	return &Token{Handle: handle, UserName: name}, nil
}

// Subject returns the account name.
func (t *Token) Subject() string { return t.UserName }

// LogValue renders only the account name.
func (t *Token) LogValue() slog.Value { return slog.StringValue(t.UserName) }

// HomeDirectory returns the token user's profile directory, or "".
func (t *Token) HomeDirectory() string {
	directory, err := t.Handle.GetUserProfileDirectory()
	if err != nil {
		return ""
	}
	return directory
}
