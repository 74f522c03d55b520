// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"strings"
	"testing"
)

func TestReadResponse(t *testing.T) {
	data, err := ReadResponse(strings.NewReader(`{"ok":true}`))
	if err != nil {
		t.Fatalf("ReadResponse failed: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("unexpected body: %s", data)
	}
}
