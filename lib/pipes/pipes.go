// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pipes

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrExhausted reports that the host could not allocate a pipe.
	ErrExhausted = errors.New("pipe allocation failed")

	// ErrInheritance reports that the broker-held end of a pipe could
	// not be made non-inheritable.
	ErrInheritance = errors.New("cannot restrict pipe handle inheritance")
)

// Direction identifies which standard stream a pair carries.
type Direction int

const (
	Stdin Direction = iota
	Stdout
	Stderr
)

func (d Direction) String() string {
	switch d {
	case Stdin:
		return "stdin"
	case Stdout:
		return "stdout"
	case Stderr:
		return "stderr"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Pair is one pipe. For Stdin the child reads and the parent writes;
// for Stdout and Stderr the child writes and the parent reads.
type Pair struct {
	direction Direction
	child     *os.File
	parent    *os.File
}

// New creates a pipe for direction with the parent end restricted.
func New(direction Direction) (*Pair, error) {
	read, write, err := newPipe(direction)
	if err != nil {
		return nil, fmt.Errorf("creating %s pipe: %w: %w", direction, ErrExhausted, err)
	}

	pair := &Pair{direction: direction}
	if direction == Stdin {
		pair.child, pair.parent = read, write
	} else {
		pair.child, pair.parent = write, read
	}

	if err := restrict(pair.parent); err != nil {
		pair.Close()
		return nil, fmt.Errorf("%s pipe: %w: %w", direction, ErrInheritance, err)
	}
	return pair, nil
}

// Direction returns the stream this pair carries.
func (p *Pair) Direction() Direction { return p.direction }

// ChildEnd returns the end handed to the child, or nil once closed.
func (p *Pair) ChildEnd() *os.File { return p.child }

// ParentEnd returns the broker's end, or nil once closed or taken.
func (p *Pair) ParentEnd() *os.File { return p.parent }

// CloseChildEnd closes the broker's copy of the child end. Called after
// the child has been created; the child keeps its own copy.
func (p *Pair) CloseChildEnd() error {
	if p.child == nil {
		return nil
	}
	err := p.child.Close()
	p.child = nil
	return err
}

// TakeParentEnd transfers ownership of the parent end to the caller.
// After TakeParentEnd, Close no longer closes it.
func (p *Pair) TakeParentEnd() *os.File {
	parent := p.parent
	p.parent = nil
	return parent
}

// Close closes whichever ends are still owned by the pair. Safe to call
// more than once and in any order relative to CloseChildEnd.
func (p *Pair) Close() error {
	var errs []error
	if p.parent != nil {
		errs = append(errs, p.parent.Close())
		p.parent = nil
	}
	errs = append(errs, p.CloseChildEnd())
	return errors.Join(errs...)
}

// Set holds the three pairs for one launch.
type Set struct {
	Stdin  *Pair
	Stdout *Pair
	Stderr *Pair
}

// NewSet creates the stdin, stdout, and stderr pairs. If any creation
// fails, the pairs already created are closed before returning.
func NewSet() (*Set, error) {
	set := &Set{}
	targets := []struct {
		direction Direction
		slot      **Pair
	}{
		{Stdin, &set.Stdin},
		{Stdout, &set.Stdout},
		{Stderr, &set.Stderr},
	}
	for _, target := range targets {
		pair, err := New(target.direction)
		if err != nil {
			set.Close()
			return nil, err
		}
		*target.slot = pair
	}
	return set, nil
}

// Pairs returns the non-nil pairs in stdin, stdout, stderr order.
func (s *Set) Pairs() []*Pair {
	var pairs []*Pair
	for _, pair := range []*Pair{s.Stdin, s.Stdout, s.Stderr} {
		if pair != nil {
			pairs = append(pairs, pair)
		}
	}
	return pairs
}

// CloseChildEnds closes the broker's copies of all child ends.
func (s *Set) CloseChildEnds() error {
	var errs []error
	for _, pair := range s.Pairs() {
		errs = append(errs, pair.CloseChildEnd())
	}
	return errors.Join(errs...)
}

// Close closes every handle still owned by the set.
func (s *Set) Close() error {
	var errs []error
	for _, pair := range s.Pairs() {
		errs = append(errs, pair.Close())
	}
	return errors.Join(errs...)
}
