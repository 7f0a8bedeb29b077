// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package broker starts interpreter processes on behalf of other users.
//
// A [Launcher] turns a [Request] into a running child whose standard
// streams are pipes the caller owns. Each launch moves through a fixed
// sequence of states, logged at debug level:
//
//	building -> pipes-ready -> authorizing -> spawning -> running
//	                                                   \-> failed
//
// building tokenizes the command line and builds the child environment.
// pipes-ready means the three stdio pipes exist with the broker's ends
// restricted from inheritance. authorizing checks that the request's
// [Identity] suits the configured [IdentitySwitcher]. spawning builds
// the access descriptor and creates the process. Any failure releases
// everything acquired so far and returns a typed [*Error].
//
// Identity switching is delegated to one of two switchers:
//
//   - [NewTokenSwitcher] starts the interpreter directly under an
//     already-resolved [Token]: CreateProcessAsUser on Windows, a
//     credential switch at exec time on POSIX hosts.
//   - [NewCredentialSwitcher] takes a user name and password. On POSIX
//     hosts it starts the rhost-runas helper, hands it the password
//     over the child's stdin, and watches the child for a short
//     liveness window because authentication happens after the process
//     already exists. On Windows it logs the user on to obtain a token.
//
// Launches share no mutable state. The Launcher is read-only after
// [New] and may be used from any number of goroutines. Once a launch
// returns, the broker keeps no reference to the child and runs nothing
// in the background on its behalf.
package broker
