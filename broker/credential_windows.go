// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package broker

import (
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/bureau-foundation/rhost/lib/exitcode"
)

const (
	logon32LogonInteractive = 2
	logon32ProviderDefault  = 0
)

var procLogonUserW = windows.NewLazySystemDLL("advapi32.dll").NewProc("LogonUserW")

type credentialSwitcher struct{}

// NewCredentialSwitcher returns the switcher for user name and
// password identities. On Windows the broker logs the user on itself;
// helperPath is ignored.
func NewCredentialSwitcher(string) (IdentitySwitcher, error) {
	return credentialSwitcher{}, nil
}

func (credentialSwitcher) Name() string { return "credential" }

// ProbesLiveness is false: LogonUser rejects bad credentials before
// any process exists.
func (credentialSwitcher) ProbesLiveness() bool { return false }

func (credentialSwitcher) Authorize(spawn *Spawn) error {
	_, err := authorizeCredential(spawn)
	return err
}

func (credentialSwitcher) Start(spawn *Spawn) (Child, error) {
	credential := spawn.Identity.(*Credential)

	token, err := logonUser(credential)
	if err != nil {
		return nil, err
	}
	defer token.Close()
	return createProcessAsUser(token, spawn)
}

// logonUser exchanges the credential for a primary token.
func logonUser(credential *Credential) (windows.Token, error) {
	domain, user := ".", credential.UserName
	if index := strings.IndexByte(user, '\\'); index >= 0 {
		domain, user = user[:index], user[index+1:]
	}
	user16, err := windows.UTF16PtrFromString(user)
	if err != nil {
		return 0, &Error{Kind: KindInvalidRequest, Op: "authorize", Err: err}
	}
	domain16, err := windows.UTF16PtrFromString(domain)
	if err != nil {
		return 0, &Error{Kind: KindInvalidRequest, Op: "authorize", Err: err}
	}
	password16, err := windows.UTF16FromString(string(credential.Password.Bytes()))
	if err != nil {
		return 0, &Error{Kind: KindInvalidRequest, Op: "authorize", Err: err}
	}
	defer clear(password16)

	var token windows.Token
	result, _, callErr := procLogonUserW.Call(
		uintptr(unsafe.Pointer(user16)),
		uintptr(unsafe.Pointer(domain16)),
		uintptr(unsafe.Pointer(&password16[0])),
		logon32LogonInteractive,
		logon32ProviderDefault,
		uintptr(unsafe.Pointer(&token)),
	)
	if result == 0 {
		code := osErrorCode(callErr)
		return 0, &Error{
			Kind:    KindAuthentication,
			Op:      "authorize",
			Code:    code,
			Message: exitcode.OSMessage(code),
			Err:     callErr,
		}
	}
	return token, nil
}
