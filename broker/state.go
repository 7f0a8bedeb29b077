// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package broker

// State is a launch's position in the launch sequence.
type State int

const (
	StateBuilding State = iota
	StatePipesReady
	StateAuthorizing
	StateSpawning
	StateRunning
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateBuilding:
		return "building"
	case StatePipesReady:
		return "pipes-ready"
	case StateAuthorizing:
		return "authorizing"
	case StateSpawning:
		return "spawning"
	case StateRunning:
		return "running"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can follow s.
func (s State) Terminal() bool {
	return s == StateRunning || s == StateFailed
}
