// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds sensitive data — passwords and bearer tokens —
// in memory that is locked against swap and excluded from core dumps.
//
// Buffer allocates its backing memory outside the Go heap via
// mmap(MAP_ANONYMOUS), pins it with mlock, and marks it with
// madvise(MADV_DONTDUMP). The garbage collector never sees the region,
// so it cannot copy or relocate the secret. Close zeros the contents
// before unmapping. After Close, any access panics.
package secret

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// Buffer holds secret material in a protected mmap region. A Buffer
// must not be copied after creation; release it with Close when the
// secret is no longer needed. Close is idempotent.
type Buffer struct {
	mu     sync.Mutex
	data   []byte
	length int
	closed bool
}

// New allocates a zero-filled protected buffer of the given size.
func New(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("secret: buffer size must be positive, got %d", size)
	}

	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("secret: mmap failed: %w", err)
	}

	if err := unix.Mlock(data); err != nil {
		unix.Munmap(data)
		return nil, fmt.Errorf("secret: mlock failed: %w", err)
	}

	if err := unix.Madvise(data, unix.MADV_DONTDUMP); err != nil {
		unix.Munlock(data)
		unix.Munmap(data)
		return nil, fmt.Errorf("secret: madvise(MADV_DONTDUMP) failed: %w", err)
	}

	return &Buffer{
		data:   data,
		length: size,
	}, nil
}

// NewFromBytes copies source into a protected buffer and zeros the
// caller's slice in place, so the original no longer holds the secret.
func NewFromBytes(source []byte) (*Buffer, error) {
	if len(source) == 0 {
		return nil, fmt.Errorf("secret: cannot create buffer from empty source")
	}

	buffer, err := New(len(source))
	if err != nil {
		return nil, err
	}

	copy(buffer.data, source)
	Zero(source)

	return buffer, nil
}

// NewFromString copies a string into a protected buffer. The source
// string cannot be zeroed (Go strings are immutable) — it remains on
// the heap until collected. Use this only at boundaries where the
// secret already arrived as a string, such as a deserialized session
// file or an HTTP response.
func NewFromString(source string) (*Buffer, error) {
	if source == "" {
		return nil, fmt.Errorf("secret: cannot create buffer from empty string")
	}

	buffer, err := New(len(source))
	if err != nil {
		return nil, err
	}
	copy(buffer.data, source)
	return buffer, nil
}

// Bytes returns the secret data. The slice points directly into the
// mmap region — do not retain it beyond the Buffer's lifetime.
// Panics if the buffer has been closed.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		panic("secret: read from closed buffer")
	}
	return b.data[:b.length]
}

// String returns the secret as a heap string. Go strings are immutable
// and cannot be zeroed, so use this only at API boundaries that demand
// a string (JSON serialization, Authorization headers). Panics if the
// buffer has been closed.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		panic("secret: read from closed buffer")
	}
	return string(b.data[:b.length])
}

// Len returns the size of the secret data.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.length
}

// Close zeros the contents, then unlocks and unmaps the region.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	Zero(b.data)

	// The memory is released when the process exits regardless, so
	// unmap errors are reported but nothing further is done with them.
	var firstError error
	if err := unix.Munlock(b.data); err != nil && firstError == nil {
		firstError = fmt.Errorf("secret: munlock failed: %w", err)
	}
	if err := unix.Munmap(b.data); err != nil && firstError == nil {
		firstError = fmt.Errorf("secret: munmap failed: %w", err)
	}

	b.data = nil
	return firstError
}

// Zero overwrites a byte slice with zeros. Use on transient heap
// copies of secret material once they have been moved into a Buffer.
func Zero(data []byte) {
	for index := range data {
		data[index] = 0
	}
}
