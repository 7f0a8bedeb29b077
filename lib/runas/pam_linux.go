// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux && cgo

package runas

import (
	"fmt"

	"github.com/msteinert/pam"
)

// NewPAM returns an Authenticator backed by the host's PAM stack.
func NewPAM(service string) Authenticator {
	return pamAuthenticator{service: service}
}

type pamAuthenticator struct {
	service string
}

func (p pamAuthenticator) Authenticate(userName string, password []byte) error {
	transaction, err := pam.StartFunc(p.service, userName, func(style pam.Style, message string) (string, error) {
		switch style {
		case pam.PromptEchoOff:
			// The conversation callback must return a string, so this
			// copy lives on the Go heap and cannot be zeroed. The helper
			// execs or exits right after authenticating, which bounds
			// its lifetime.
			return string(password), nil
		case pam.PromptEchoOn:
			return userName, nil
		case pam.ErrorMsg, pam.TextInfo:
			return "", nil
		default:
			return "", fmt.Errorf("unsupported PAM conversation style %d", style)
		}
	})
	if err != nil {
		return fmt.Errorf("%w: starting PAM transaction for service %q: %w", ErrAuthentication, p.service, err)
	}

	if err := transaction.Authenticate(pam.DisallowNullAuthtok); err != nil {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	if err := transaction.AcctMgmt(pam.Silent); err != nil {
		return fmt.Errorf("%w: %w", ErrAccount, err)
	}
	return nil
}
