// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

func allocate(size int) ([]byte, error) {
	address, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, fmt.Errorf("secret: VirtualAlloc failed: %w", err)
	}
	if err := windows.VirtualLock(address, uintptr(size)); err != nil {
		windows.VirtualFree(address, 0, windows.MEM_RELEASE)
		return nil, fmt.Errorf("secret: VirtualLock failed: %w", err)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(address)), size), nil
}

func release(data []byte) error {
	address := uintptr(unsafe.Pointer(unsafe.SliceData(data)))
	var firstError error
	if err := windows.VirtualUnlock(address, uintptr(len(data))); err != nil {
		firstError = fmt.Errorf("secret: VirtualUnlock failed: %w", err)
	}
	if err := windows.VirtualFree(address, 0, windows.MEM_RELEASE); err != nil && firstError == nil {
		firstError = fmt.Errorf("secret: VirtualFree failed: %w", err)
	}
	return firstError
}
