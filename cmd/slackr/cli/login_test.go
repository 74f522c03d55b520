// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWhoAmI_SessionExpired(t *testing.T) {
	useTempSessionFile(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": "Invalid token"}`))
	}))
	defer server.Close()

	if err := SaveStoredSession(&StoredSession{
		UserID: 42,
		Token:  "stale-token",
		Server: server.URL,
	}); err != nil {
		t.Fatalf("SaveStoredSession() error: %v", err)
	}

	// A rejected token is reported via the exit code, so scripts can
	// detect expiry without parsing output.
	err := WhoAmICommand().Run(context.Background(), nil, testLogger())
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Run() error = %v, want *ExitError", err)
	}
	if exitErr.ExitCode() != ExitAuth {
		t.Errorf("exit code = %d, want %d", exitErr.ExitCode(), ExitAuth)
	}
}

func TestWhoAmI_NotLoggedIn(t *testing.T) {
	useTempSessionFile(t)

	if err := WhoAmICommand().Run(context.Background(), nil, testLogger()); err == nil {
		t.Error("Run() = nil, want error when no session file exists")
	}
}
