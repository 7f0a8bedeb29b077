// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pipes

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

var procGetHandleInformation = windows.NewLazySystemDLL("kernel32.dll").NewProc("GetHandleInformation")

// newPipe creates a pipe whose ends are both inheritable. restrict
// then clears the flag on the parent end.
func newPipe(Direction) (read, write *os.File, err error) {
	attributes := windows.SecurityAttributes{InheritHandle: 1}
	attributes.Length = uint32(unsafe.Sizeof(attributes))

	var readHandle, writeHandle windows.Handle
	if err := windows.CreatePipe(&readHandle, &writeHandle, &attributes, 0); err != nil {
		return nil, nil, err
	}
	return os.NewFile(uintptr(readHandle), "|0"), os.NewFile(uintptr(writeHandle), "|1"), nil
}

func restrict(file *os.File) error {
	return windows.SetHandleInformation(windows.Handle(file.Fd()), windows.HANDLE_FLAG_INHERIT, 0)
}

// Inheritable reports whether file carries HANDLE_FLAG_INHERIT.
func Inheritable(file *os.File) (bool, error) {
	var flags uint32
	result, _, err := procGetHandleInformation.Call(file.Fd(), uintptr(unsafe.Pointer(&flags)))
	if result == 0 {
		return false, err
	}
	return flags&windows.HANDLE_FLAG_INHERIT != 0, nil
}
