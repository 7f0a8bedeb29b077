// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package broker

import (
	"fmt"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/bureau-foundation/rhost/lib/acl"
	"github.com/bureau-foundation/rhost/lib/hostenv"
)

type tokenSwitcher struct{}

// NewTokenSwitcher returns the switcher for primary access tokens.
func NewTokenSwitcher() IdentitySwitcher { return tokenSwitcher{} }

func (tokenSwitcher) Name() string { return "token" }

func (tokenSwitcher) ProbesLiveness() bool { return false }

func (tokenSwitcher) Authorize(spawn *Spawn) error {
	token, ok := spawn.Identity.(*Token)
	if !ok || token == nil || token.Handle == 0 {
		return &Error{Kind: KindInvalidRequest, Message: identityMismatch("token", spawn.Identity)}
	}
	return nil
}

func (tokenSwitcher) Start(spawn *Spawn) (Child, error) {
	return createProcessAsUser(spawn.Identity.(*Token).Handle, spawn)
}

// createProcessAsUser starts spawn under token with no window, a
// Unicode environment block, and exactly the three child pipe ends
// inheritable.
func createProcessAsUser(token windows.Token, spawn *Spawn) (Child, error) {
	var application *uint16
	if filepath.IsAbs(spawn.Executable) {
		name, err := windows.UTF16PtrFromString(spawn.Executable)
		if err != nil {
			return nil, err
		}
		application = name
	}
	commandLine, err := windows.UTF16PtrFromString(spawn.CommandLine)
	if err != nil {
		return nil, err
	}
	var directory *uint16
	if spawn.WorkingDirectory != "" {
		if directory, err = windows.UTF16PtrFromString(spawn.WorkingDirectory); err != nil {
			return nil, err
		}
	}
	environment, err := environmentBlock(spawn.Environment)
	if err != nil {
		return nil, err
	}
	desktop, err := windows.UTF16PtrFromString("")
	if err != nil {
		return nil, err
	}

	handles := []windows.Handle{
		windows.Handle(spawn.Pipes.Stdin.ChildEnd().Fd()),
		windows.Handle(spawn.Pipes.Stdout.ChildEnd().Fd()),
		windows.Handle(spawn.Pipes.Stderr.ChildEnd().Fd()),
	}
	attributes, err := windows.NewProcThreadAttributeList(1)
	if err != nil {
		return nil, fmt.Errorf("allocating attribute list: %w", err)
	}
	defer attributes.Delete()
	if err := attributes.Update(windows.PROC_THREAD_ATTRIBUTE_HANDLE_LIST,
		unsafe.Pointer(&handles[0]), uintptr(len(handles))*unsafe.Sizeof(handles[0])); err != nil {
		return nil, fmt.Errorf("restricting inherited handles: %w", err)
	}

	startup := &windows.StartupInfoEx{ProcThreadAttributeList: attributes.List()}
	startup.Cb = uint32(unsafe.Sizeof(*startup))
	startup.Desktop = desktop
	startup.Flags = windows.STARTF_USESTDHANDLES
	startup.StdInput = handles[0]
	startup.StdOutput = handles[1]
	startup.StdErr = handles[2]

	security := acl.Attributes(spawn.Descriptor)
	flags := uint32(windows.CREATE_UNICODE_ENVIRONMENT | windows.CREATE_NO_WINDOW | windows.EXTENDED_STARTUPINFO_PRESENT)

	var info windows.ProcessInformation
	if err := windows.CreateProcessAsUser(token, application, commandLine, security, security,
		true, flags, &environment[0], directory, &startup.StartupInfo, &info); err != nil {
		return nil, err
	}
	windows.CloseHandle(info.Thread)
	return &processChild{handle: info.Process, pid: int(info.ProcessId)}, nil
}

// environmentBlock encodes block as NUL-separated UTF-16 entries with a
// terminating empty entry.
func environmentBlock(block *hostenv.Block) ([]uint16, error) {
	var encoded []uint16
	for _, entry := range block.Environ() {
		utf16, err := windows.UTF16FromString(entry)
		if err != nil {
			return nil, fmt.Errorf("encoding environment: %w", err)
		}
		encoded = append(encoded, utf16...)
	}
	encoded = append(encoded, 0)
	if len(encoded) == 1 {
		encoded = append(encoded, 0)
	}
	return encoded, nil
}
