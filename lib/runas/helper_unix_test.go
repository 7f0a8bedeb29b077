// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package runas

import (
	"bytes"
	"errors"
	"os/user"
	"path/filepath"
	"slices"
	"syscall"
	"testing"

	"github.com/bureau-foundation/rhost/lib/exitcode"
)

// fakeHelper records each stage the helper reached.
type fakeHelper struct {
	euid            int
	authErr         error
	lookupErr       error
	switchErr       error
	directoryErr    error
	execErr         error
	authenticated   string
	passwordSeen    string
	switchedTo      *Account
	enteredDir      string
	execArgv        []string
	execEnvironment []string
}

func (f *fakeHelper) helper() *Helper {
	return &Helper{
		Authenticator: AuthenticatorFunc(func(userName string, password []byte) error {
			f.authenticated = userName
			f.passwordSeen = string(password)
			return f.authErr
		}),
		Geteuid: func() int { return f.euid },
		LookupAccount: func(name string) (*Account, error) {
			if f.lookupErr != nil {
				return nil, f.lookupErr
			}
			return &Account{Name: name, Uid: 1000, Gid: 1000, Home: "/home/" + name}, nil
		},
		SwitchTo: func(account *Account) error {
			f.switchedTo = account
			return f.switchErr
		},
		EnterDirectory: func(directory, home string) (string, error) {
			if directory == "" {
				directory = home
			}
			f.enteredDir = directory
			return directory, f.directoryErr
		},
		Exec: func(argv0 string, argv []string, envv []string) error {
			f.execArgv = argv
			f.execEnvironment = envv
			if f.execErr != nil {
				return f.execErr
			}
			// A real exec never returns on success.
			return syscall.Errno(0)
		},
	}
}

func frame(t *testing.T, handshake *Handshake) *bytes.Buffer {
	t.Helper()
	var buffer bytes.Buffer
	if err := Write(&buffer, handshake); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return &buffer
}

func TestHelperRunSuccessReachesExec(t *testing.T) {
	fake := &fakeHelper{euid: 0}
	handshake := sampleHandshake()

	fake.helper().Run(frame(t, handshake))

	if fake.authenticated != "alice" || fake.passwordSeen != "correct horse" {
		t.Errorf("authenticated %q with %q", fake.authenticated, fake.passwordSeen)
	}
	if fake.switchedTo == nil || fake.switchedTo.Name != "alice" {
		t.Errorf("switched to %+v, want alice", fake.switchedTo)
	}
	if fake.enteredDir != handshake.WorkingDirectory {
		t.Errorf("entered %q, want %q", fake.enteredDir, handshake.WorkingDirectory)
	}
	wantArgv := append([]string{handshake.Executable}, handshake.Arguments...)
	if !slices.Equal(fake.execArgv, wantArgv) {
		t.Errorf("exec argv = %q, want %q", fake.execArgv, wantArgv)
	}
	if !slices.Equal(fake.execEnvironment, handshake.Environment) {
		t.Errorf("exec environment = %q, want the handshake block %q", fake.execEnvironment, handshake.Environment)
	}
}

func TestHelperRunEmptyWorkingDirectoryUsesHome(t *testing.T) {
	fake := &fakeHelper{euid: 0}
	handshake := sampleHandshake()
	handshake.WorkingDirectory = ""

	fake.helper().Run(frame(t, handshake))

	if fake.enteredDir != "/home/alice" {
		t.Errorf("entered %q, want the user's home", fake.enteredDir)
	}
}

func TestHelperRunFailureStages(t *testing.T) {
	tests := []struct {
		name     string
		fake     fakeHelper
		input    func(t *testing.T) *bytes.Buffer
		wantCode int
	}{
		{
			name:     "malformed handshake",
			fake:     fakeHelper{euid: 0},
			input:    func(*testing.T) *bytes.Buffer { return bytes.NewBufferString("xx") },
			wantCode: exitcode.HandshakeFailed,
		},
		{
			name:     "not root",
			fake:     fakeHelper{euid: 1000},
			wantCode: exitcode.NotPrivileged,
		},
		{
			name:     "bad password",
			fake:     fakeHelper{authErr: ErrAuthentication},
			wantCode: exitcode.AuthenticationFailed,
		},
		{
			name:     "expired account",
			fake:     fakeHelper{authErr: ErrAccount},
			wantCode: exitcode.AccountUnavailable,
		},
		{
			name:     "no PAM",
			fake:     fakeHelper{authErr: ErrUnsupported},
			wantCode: exitcode.Unsupported,
		},
		{
			name:     "unknown user",
			fake:     fakeHelper{lookupErr: user.UnknownUserError("alice")},
			wantCode: exitcode.UnknownUser,
		},
		{
			name:     "privilege drop",
			fake:     fakeHelper{switchErr: syscall.EPERM},
			wantCode: exitcode.PrivilegeDrop,
		},
		{
			name:     "working directory",
			fake:     fakeHelper{directoryErr: syscall.EACCES},
			wantCode: exitcode.WorkingDirectory,
		},
		{
			name:     "interpreter missing",
			fake:     fakeHelper{execErr: syscall.ENOENT},
			wantCode: exitcode.NotFound,
		},
		{
			name:     "interpreter not executable",
			fake:     fakeHelper{execErr: syscall.EACCES},
			wantCode: exitcode.NotExecutable,
		},
		{
			name:     "exec failure",
			fake:     fakeHelper{execErr: syscall.E2BIG},
			wantCode: exitcode.ExecFailed,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fake := test.fake
			input := frame(t, sampleHandshake())
			if test.input != nil {
				input = test.input(t)
			}

			code, err := fake.helper().Run(input)
			if code != test.wantCode {
				t.Errorf("exit code = %d (%v), want %d", code, err, test.wantCode)
			}
			if err == nil {
				t.Error("Run returned a nil cause")
			}
		})
	}
}

func TestHelperRunDoesNotSwitchBeforeAuthentication(t *testing.T) {
	fake := &fakeHelper{authErr: ErrAuthentication}
	fake.helper().Run(frame(t, sampleHandshake()))

	if fake.switchedTo != nil {
		t.Error("helper switched user after a failed authentication")
	}
	if fake.execArgv != nil {
		t.Error("helper executed the interpreter after a failed authentication")
	}
}

func TestLookupAccountCurrentUser(t *testing.T) {
	current, err := user.Current()
	if err != nil {
		t.Skipf("current user unavailable: %v", err)
	}
	account, err := LookupAccount(current.Username)
	if err != nil {
		t.Fatalf("LookupAccount(%s): %v", current.Username, err)
	}
	if account.Home != current.HomeDir {
		t.Errorf("home = %q, want %q", account.Home, current.HomeDir)
	}
}

func TestLookupAccountUnknown(t *testing.T) {
	_, err := LookupAccount("rhost-no-such-user-7f3a")
	var unknown user.UnknownUserError
	if !errors.As(err, &unknown) {
		t.Errorf("LookupAccount error = %v, want UnknownUserError", err)
	}
}

func TestEnterDirectoryCreatesPrivateDirectory(t *testing.T) {
	// EnterDirectory changes the process working directory.
	t.Chdir(t.TempDir())

	target := filepath.Join(t.TempDir(), "profile", "nested")
	entered, err := EnterDirectory(target, "/nonexistent-home")
	if err != nil {
		t.Fatalf("EnterDirectory: %v", err)
	}
	if entered != target {
		t.Errorf("entered %q, want %q", entered, target)
	}
}
