// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package runas

import (
	"errors"

	"github.com/bureau-foundation/rhost/lib/exitcode"
)

// ServiceName is the PAM service the helper authenticates against.
// Hosts install /etc/pam.d/rhost, usually including common-auth and
// common-account.
const ServiceName = "rhost"

var (
	// ErrAuthentication reports a rejected user name or password.
	ErrAuthentication = errors.New("authentication failed")

	// ErrAccount reports an account that authenticated but may not log
	// in: expired, locked, or outside its permitted hours.
	ErrAccount = errors.New("account unavailable")

	// ErrUnsupported reports a build without a host authenticator.
	ErrUnsupported = errors.New("credential authentication not supported by this build")
)

// Authenticator verifies a user name and password against the host.
type Authenticator interface {
	Authenticate(userName string, password []byte) error
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(userName string, password []byte) error

// Authenticate calls f.
func (f AuthenticatorFunc) Authenticate(userName string, password []byte) error {
	return f(userName, password)
}

// ExitCode maps an Authenticate error to the helper's exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUnsupported):
		return exitcode.Unsupported
	case errors.Is(err, ErrAccount):
		return exitcode.AccountUnavailable
	default:
		return exitcode.AuthenticationFailed
	}
}
