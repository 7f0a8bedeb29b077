// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package runas

import (
	"fmt"
	"os"
	"os/user"
	"strconv"

	"golang.org/x/sys/unix"
)

// Account is a resolved host account.
type Account struct {
	Name   string
	Uid    int
	Gid    int
	Groups []int
	Home   string
}

// LookupAccount resolves name in the host account database.
func LookupAccount(name string) (*Account, error) {
	entry, err := user.Lookup(name)
	if err != nil {
		return nil, err
	}
	uid, err := strconv.Atoi(entry.Uid)
	if err != nil {
		return nil, fmt.Errorf("user %s has non-numeric uid %q", name, entry.Uid)
	}
	gid, err := strconv.Atoi(entry.Gid)
	if err != nil {
		return nil, fmt.Errorf("user %s has non-numeric gid %q", name, entry.Gid)
	}

	account := &Account{Name: entry.Username, Uid: uid, Gid: gid, Home: entry.HomeDir}
	groupIDs, err := entry.GroupIds()
	if err != nil {
		return nil, fmt.Errorf("listing groups of %s: %w", name, err)
	}
	for _, groupID := range groupIDs {
		group, err := strconv.Atoi(groupID)
		if err != nil {
			continue
		}
		account.Groups = append(account.Groups, group)
	}
	return account, nil
}

// SwitchTo drops the calling process to account: supplementary groups,
// then gid, then uid. It fails if the process can still regain root.
func SwitchTo(account *Account) error {
	if err := unix.Setgroups(account.Groups); err != nil {
		return fmt.Errorf("setgroups: %w", err)
	}
	if err := unix.Setgid(account.Gid); err != nil {
		return fmt.Errorf("setgid %d: %w", account.Gid, err)
	}
	if err := unix.Setuid(account.Uid); err != nil {
		return fmt.Errorf("setuid %d: %w", account.Uid, err)
	}
	if account.Uid != 0 && unix.Setuid(0) == nil {
		return fmt.Errorf("privileges were not dropped: setuid(0) still succeeds")
	}
	return nil
}

// EnterDirectory changes to directory, or to home when directory is
// empty, creating it mode 0700 if it does not exist. Call it after
// SwitchTo so the directory is owned by the target user.
func EnterDirectory(directory, home string) (string, error) {
	if directory == "" {
		directory = home
	}
	if directory == "" {
		directory = "/"
	}
	if err := os.MkdirAll(directory, 0o700); err != nil {
		return "", err
	}
	if err := os.Chdir(directory); err != nil {
		return "", err
	}
	return directory, nil
}
