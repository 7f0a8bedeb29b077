// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ReadFromPath reads a secret from a file, or from stdin if path is "-".
// Surrounding whitespace is trimmed. Every intermediate copy is zeroed.
func ReadFromPath(path string) (*Buffer, error) {
	if path == "-" {
		return readLine(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	defer Zero(data)
	return fromTrimmed(data)
}

func readLine(reader io.Reader) (*Buffer, error) {
	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return nil, errors.New("stdin is empty")
	}
	data := scanner.Bytes()
	defer Zero(data)
	return fromTrimmed(data)
}

// ReadFromTerminal prints prompt to output and reads a line from the
// terminal fd with echo disabled.
func ReadFromTerminal(fd int, output io.Writer, prompt string) (*Buffer, error) {
	if !term.IsTerminal(fd) {
		return nil, errors.New("password prompt requires a terminal; use --password-file")
	}
	fmt.Fprint(output, prompt)
	data, err := term.ReadPassword(fd)
	fmt.Fprintln(output)
	if err != nil {
		Zero(data)
		return nil, fmt.Errorf("reading password: %w", err)
	}
	defer Zero(data)
	return fromTrimmed(data)
}

func fromTrimmed(data []byte) (*Buffer, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("secret is empty")
	}
	return NewFromBytes(trimmed)
}
