// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides bounded HTTP response-body readers.
//
// Every backend response is a small JSON document; the bound exists
// only so a misbehaving server cannot exhaust client memory. It is
// deliberately generous and never interferes with normal operation.
package netutil

import (
	"io"
)

// MaxResponseSize bounds response-body reads at 64 MB. The largest
// legitimate payload is a message page carrying base64 image data,
// which stays far below this.
const MaxResponseSize int64 = 64 << 20

// ReadResponse reads an HTTP response body up to MaxResponseSize
// bytes. Use instead of io.ReadAll on response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}
