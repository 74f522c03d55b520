// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rachel-Huang77/6080-slackr/lib/secret"
)

func testPassword(t *testing.T) *secret.Buffer {
	t.Helper()
	password, err := secret.NewFromString("hunter2hunter2")
	if err != nil {
		t.Fatalf("creating password buffer: %v", err)
	}
	t.Cleanup(func() { password.Close() })
	return password
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Errorf("encoding response: %v", err)
	}
}

func TestNewClient(t *testing.T) {
	t.Run("requires base URL", func(t *testing.T) {
		if _, err := NewClient(ClientConfig{}); err == nil {
			t.Fatal("expected error for empty BaseURL")
		}
	})

	t.Run("strips trailing slash", func(t *testing.T) {
		var gotPath string
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			writeJSON(t, w, http.StatusOK, map[string]any{"channels": []any{}})
		}))
		// Rebuild with a trailing slash on the same server URL.
		client2, err := NewClient(ClientConfig{BaseURL: client.baseURL + "/"})
		if err != nil {
			t.Fatalf("NewClient: %v", err)
		}
		session, err := client2.SessionFromToken(1, "tok")
		if err != nil {
			t.Fatalf("SessionFromToken: %v", err)
		}
		defer session.Close()
		if _, err := session.Channels(context.Background()); err != nil {
			t.Fatalf("Channels: %v", err)
		}
		if gotPath != "/channel" {
			t.Errorf("path = %q, want /channel", gotPath)
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			if auth := r.Header.Get("Authorization"); auth != "" {
				t.Errorf("login request carried Authorization header %q", auth)
			}
			var req loginRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decoding login body: %v", err)
			}
			if req.Email != "alice@example.com" {
				t.Errorf("email = %q", req.Email)
			}
			writeJSON(t, w, http.StatusOK, map[string]any{"token": "abc123", "userId": 42})
		}))

		session, err := client.Login(context.Background(), "alice@example.com", testPassword(t))
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		defer session.Close()

		if session.UserID() != 42 {
			t.Errorf("UserID = %v, want 42", session.UserID())
		}
		if session.Token() != "abc123" {
			t.Errorf("Token = %q, want abc123", session.Token())
		}
	})

	t.Run("rejected credentials yield no session", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusBadRequest, map[string]any{"error": "Invalid email or password"})
		}))

		session, err := client.Login(context.Background(), "alice@example.com", testPassword(t))
		if session != nil {
			t.Fatal("expected nil session on rejected login")
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("error = %v, want *APIError", err)
		}
		if apiErr.Message != "Invalid email or password" {
			t.Errorf("Message = %q", apiErr.Message)
		}
		if apiErr.StatusCode != http.StatusBadRequest {
			t.Errorf("StatusCode = %d, want 400", apiErr.StatusCode)
		}
	})

	t.Run("validates inputs before any request", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request should be issued")
		}))
		if _, err := client.Login(context.Background(), "", testPassword(t)); err == nil {
			t.Error("expected error for empty email")
		}
		if _, err := client.Login(context.Background(), "a@b.c", nil); err == nil {
			t.Error("expected error for nil password")
		}
	})
}

func TestRegister(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding register body: %v", err)
		}
		if req.Name != "Alice" {
			t.Errorf("name = %q", req.Name)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"token": "fresh", "userId": 7})
	}))

	session, err := client.Register(context.Background(), "alice@example.com", "Alice", testPassword(t))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	defer session.Close()
	if session.UserID() != 7 {
		t.Errorf("UserID = %v, want 7", session.UserID())
	}
}

func TestDoRequestErrorHandling(t *testing.T) {
	t.Run("error field inside 200 payload", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{"error": "Channel name taken"})
		}))
		session, err := client.SessionFromToken(1, "tok")
		if err != nil {
			t.Fatalf("SessionFromToken: %v", err)
		}
		defer session.Close()

		_, err = session.CreateChannel(context.Background(), CreateChannelRequest{Name: "general"})
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("error = %v, want *APIError", err)
		}
		if apiErr.StatusCode != 0 {
			t.Errorf("StatusCode = %d, want 0 for in-payload error", apiErr.StatusCode)
		}
		if apiErr.Message != "Channel name taken" {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})

	t.Run("non-JSON error body fails loud", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			fmt.Fprint(w, "<html>bad gateway</html>")
		}))
		session, err := client.SessionFromToken(1, "tok")
		if err != nil {
			t.Fatalf("SessionFromToken: %v", err)
		}
		defer session.Close()

		_, err = session.Channels(context.Background())
		if err == nil {
			t.Fatal("expected error")
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			t.Errorf("non-JSON body should not parse as APIError, got %v", apiErr)
		}
	})
}

func TestErrorHelpers(t *testing.T) {
	forbidden := &APIError{Message: "not a member", StatusCode: http.StatusForbidden}
	if !IsStatus(forbidden, http.StatusForbidden) {
		t.Error("IsStatus(403) = false")
	}
	if IsStatus(forbidden, http.StatusNotFound) {
		t.Error("IsStatus(404) matched a 403")
	}
	if !IsAuthFailure(forbidden) {
		t.Error("IsAuthFailure(403) = false")
	}
	if !IsAuthFailure(&APIError{Message: "bad token", StatusCode: http.StatusUnauthorized}) {
		t.Error("IsAuthFailure(401) = false")
	}
	if IsAuthFailure(errors.New("connection refused")) {
		t.Error("IsAuthFailure matched a transport error")
	}
	if IsAuthFailure(fmt.Errorf("wrapped: %w", &APIError{Message: "x", StatusCode: 400})) {
		t.Error("IsAuthFailure matched a 400")
	}
}
