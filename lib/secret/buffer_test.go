// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestNewFromBytes(t *testing.T) {
	source := []byte("hunter2")
	buffer, err := NewFromBytes(source)
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	defer buffer.Close()

	if buffer.String() != "hunter2" {
		t.Errorf("unexpected contents: %q", buffer.String())
	}
	if buffer.Len() != 7 {
		t.Errorf("unexpected length: %d", buffer.Len())
	}

	// The caller's slice must be zeroed after the copy.
	if !bytes.Equal(source, make([]byte, len(source))) {
		t.Error("source slice was not zeroed")
	}
}

func TestNewFromBytesEmpty(t *testing.T) {
	if _, err := NewFromBytes(nil); err == nil {
		t.Fatal("expected error for empty source")
	}
}

func TestNewFromString(t *testing.T) {
	buffer, err := NewFromString("token-abc")
	if err != nil {
		t.Fatalf("NewFromString failed: %v", err)
	}
	defer buffer.Close()

	if !bytes.Equal(buffer.Bytes(), []byte("token-abc")) {
		t.Errorf("unexpected contents: %q", buffer.Bytes())
	}

	if _, err := NewFromString(""); err == nil {
		t.Fatal("expected error for empty string")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	buffer, err := NewFromString("secret")
	if err != nil {
		t.Fatalf("NewFromString failed: %v", err)
	}
	if err := buffer.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := buffer.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}

func TestAccessAfterClosePanics(t *testing.T) {
	buffer, err := NewFromString("secret")
	if err != nil {
		t.Fatalf("NewFromString failed: %v", err)
	}
	buffer.Close()

	defer func() {
		if recover() == nil {
			t.Error("expected panic reading closed buffer")
		}
	}()
	_ = buffer.Bytes()
}

func TestReadFromPath(t *testing.T) {
	t.Run("strips trailing newlines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "password")
		if err := os.WriteFile(path, []byte("swordfish\n"), 0600); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}

		buffer, err := ReadFromPath(path)
		if err != nil {
			t.Fatalf("ReadFromPath failed: %v", err)
		}
		defer buffer.Close()

		if buffer.String() != "swordfish" {
			t.Errorf("unexpected contents: %q", buffer.String())
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty")
		if err := os.WriteFile(path, []byte("\n\n"), 0600); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
		if _, err := ReadFromPath(path); err == nil {
			t.Fatal("expected error for empty file")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := ReadFromPath(filepath.Join(t.TempDir(), "absent")); err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}
