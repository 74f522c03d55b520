// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Prompt reads a password from the terminal with echo disabled and
// returns it in a protected buffer. The label is written to stderr so
// it never mixes with piped stdout. Returns an error when stdin is not
// a terminal — callers should offer a file-based alternative for
// scripted use.
func Prompt(label string) (*Buffer, error) {
	descriptor := int(os.Stdin.Fd())
	if !term.IsTerminal(descriptor) {
		return nil, fmt.Errorf("secret: no terminal available for interactive prompt")
	}

	fmt.Fprint(os.Stderr, label)
	passwordBytes, err := term.ReadPassword(descriptor)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("secret: reading password: %w", err)
	}
	if len(passwordBytes) == 0 {
		return nil, fmt.Errorf("secret: password is empty")
	}

	return NewFromBytes(passwordBytes)
}

// ReadFromPath reads a secret from a file into a protected buffer.
// Trailing newlines are stripped — files written by echo or printf
// pipelines usually end with one. Returns an error if the file is
// empty after stripping.
func ReadFromPath(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	for len(data) > 0 && (data[len(data)-1] == '\n' || data[len(data)-1] == '\r') {
		data = data[:len(data)-1]
	}

	if len(data) == 0 {
		Zero(data)
		return nil, fmt.Errorf("secret: file %s is empty", path)
	}

	buffer, err := NewFromBytes(data)
	if err != nil {
		Zero(data)
		return nil, err
	}
	return buffer, nil
}
