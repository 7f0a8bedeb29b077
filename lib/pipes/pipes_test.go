// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package pipes

import (
	"errors"
	"io"
	"os"
	"testing"
)

func TestNewSetParentEndsAreNotInheritable(t *testing.T) {
	set, err := NewSet()
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	defer set.Close()

	pairs := set.Pairs()
	if len(pairs) != 3 {
		t.Fatalf("Pairs() returned %d pairs, want 3", len(pairs))
	}
	for index, pair := range pairs {
		if pair.Direction() != Direction(index) {
			t.Errorf("pair %d direction = %s", index, pair.Direction())
		}
		inheritable, err := Inheritable(pair.ParentEnd())
		if err != nil {
			t.Fatalf("Inheritable(%s parent): %v", pair.Direction(), err)
		}
		if inheritable {
			t.Errorf("%s parent end is inheritable", pair.Direction())
		}
	}
}

func TestPairDataFlow(t *testing.T) {
	tests := []struct {
		direction Direction
	}{
		{Stdin}, {Stdout}, {Stderr},
	}
	for _, test := range tests {
		t.Run(test.direction.String(), func(t *testing.T) {
			pair, err := New(test.direction)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			defer pair.Close()

			writer, reader := pair.ChildEnd(), pair.ParentEnd()
			if test.direction == Stdin {
				writer, reader = pair.ParentEnd(), pair.ChildEnd()
			}

			message := []byte("hello " + test.direction.String())
			if _, err := writer.Write(message); err != nil {
				t.Fatalf("Write: %v", err)
			}
			buffer := make([]byte, len(message))
			if _, err := io.ReadFull(reader, buffer); err != nil {
				t.Fatalf("ReadFull: %v", err)
			}
			if string(buffer) != string(message) {
				t.Errorf("read %q, want %q", buffer, message)
			}
		})
	}
}

func TestParentSeesEOFAfterChildEndClosed(t *testing.T) {
	pair, err := New(Stdout)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer pair.Close()

	if _, err := pair.ChildEnd().Write([]byte("last")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := pair.CloseChildEnd(); err != nil {
		t.Fatalf("CloseChildEnd: %v", err)
	}
	if pair.ChildEnd() != nil {
		t.Error("ChildEnd() should be nil after CloseChildEnd")
	}

	data, err := io.ReadAll(pair.ParentEnd())
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "last" {
		t.Errorf("ReadAll = %q, want %q", data, "last")
	}
}

func TestCloseParentBeforeChild(t *testing.T) {
	pair, err := New(Stdin)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	parent := pair.TakeParentEnd()
	if pair.ParentEnd() != nil {
		t.Error("ParentEnd() should be nil after TakeParentEnd")
	}
	if err := parent.Close(); err != nil {
		t.Fatalf("closing parent end: %v", err)
	}

	// The child end now reads EOF rather than blocking or crashing.
	buffer := make([]byte, 1)
	if _, err := pair.ChildEnd().Read(buffer); !errors.Is(err, io.EOF) {
		t.Errorf("Read after parent close = %v, want EOF", err)
	}

	if err := pair.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := pair.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestSetCloseReleasesEverything(t *testing.T) {
	set, err := NewSet()
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	files := []*os.File{}
	for _, pair := range set.Pairs() {
		files = append(files, pair.ChildEnd(), pair.ParentEnd())
	}

	if err := set.CloseChildEnds(); err != nil {
		t.Fatalf("CloseChildEnds: %v", err)
	}
	if err := set.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for _, file := range files {
		if _, err := file.Stat(); !errors.Is(err, os.ErrClosed) {
			t.Errorf("%s: Stat after Close = %v, want os.ErrClosed", file.Name(), err)
		}
	}
}

func TestDirectionString(t *testing.T) {
	if got := Direction(7).String(); got != "Direction(7)" {
		t.Errorf("Direction(7).String() = %q", got)
	}
}
