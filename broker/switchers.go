// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package broker

import "fmt"

func identityMismatch(switcher string, identity Identity) string {
	want := "*broker.Token"
	if switcher == "credential" {
		want = "*broker.Credential"
	}
	return fmt.Sprintf("%s switcher requires a %s identity, got %T", switcher, want, identity)
}

// authorizeCredential checks the fields every credential switcher needs.
func authorizeCredential(spawn *Spawn) (*Credential, error) {
	credential, ok := spawn.Identity.(*Credential)
	if !ok || credential == nil {
		return nil, &Error{Kind: KindInvalidRequest, Message: identityMismatch("credential", spawn.Identity)}
	}
	if credential.UserName == "" {
		return nil, &Error{Kind: KindInvalidRequest, Message: "credential user name is empty"}
	}
	if credential.Password == nil || credential.Password.Closed() || credential.Password.Len() == 0 {
		return nil, &Error{Kind: KindInvalidRequest, Message: "credential password is empty"}
	}
	return credential, nil
}
