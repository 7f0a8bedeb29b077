// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package broker

import (
	"errors"
	"log/slog"
	"reflect"

	"github.com/bureau-foundation/rhost/lib/secret"
)

// Identity is the principal a launch runs as. Implementations carry
// secrets or OS capabilities and never render them: Subject returns
// only the user name, and LogValue resolves to it as well.
type Identity interface {
	Subject() string
	slog.LogValuer
}

// Credential is a user name and password for the credential path. The
// launcher closes Password when the launch call returns, whether it
// succeeded or not.
type Credential struct {
	UserName string
	Password *secret.Buffer
}

// NewCredential moves password into locked memory and zeroes the
// caller's slice.
func NewCredential(userName string, password []byte) (*Credential, error) {
	if len(password) == 0 {
		return nil, errors.New("password is empty")
	}
	buffer, err := secret.NewFromBytes(password)
	if err != nil {
		return nil, err
	}
	return &Credential{UserName: userName, Password: buffer}, nil
}

// Subject returns the user name.
func (c *Credential) Subject() string {
	if c == nil {
		return ""
	}
	return c.UserName
}

// LogValue renders only the user name.
func (c *Credential) LogValue() slog.Value { return slog.StringValue(c.Subject()) }

// Destroy zeroes and releases the password. Idempotent.
func (c *Credential) Destroy() {
	if c != nil && c.Password != nil {
		c.Password.Close()
	}
}

// destroyer is implemented by identities that hold secrets.
type destroyer interface {
	Destroy()
}

// isNilIdentity reports whether identity is nil or a nil pointer held
// in a non-nil interface.
func isNilIdentity(identity Identity) bool {
	if identity == nil {
		return true
	}
	value := reflect.ValueOf(identity)
	return value.Kind() == reflect.Pointer && value.IsNil()
}
