// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hostenv

// Block is an ordered set of environment variables. Keys keep the
// position of their first Set; setting an existing key replaces the
// value in place.
type Block struct {
	keys   []string
	values map[string]string
}

// NewBlock returns an empty block.
func NewBlock() *Block {
	return &Block{values: make(map[string]string)}
}

// Set assigns value to key.
func (b *Block) Set(key, value string) {
	if _, exists := b.values[key]; !exists {
		b.keys = append(b.keys, key)
	}
	b.values[key] = value
}

// Get returns the value of key and whether it is present.
func (b *Block) Get(key string) (string, bool) {
	value, ok := b.values[key]
	return value, ok
}

// Len returns the number of variables.
func (b *Block) Len() int {
	return len(b.keys)
}

// Keys returns the variable names in insertion order.
func (b *Block) Keys() []string {
	return append([]string(nil), b.keys...)
}

// Environ returns the block as "KEY=value" strings in insertion order,
// the form expected by os/exec.Cmd.Env.
func (b *Block) Environ() []string {
	environ := make([]string, 0, len(b.keys))
	for _, key := range b.keys {
		environ = append(environ, key+"="+b.values[key])
	}
	return environ
}
