// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a structured error response from the backend. The
// Message field carries the server's human-readable description and is
// shown to the user verbatim. Callers can use errors.As to branch on
// the status code:
//
//	var apiErr *api.APIError
//	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden { ... }
type APIError struct {
	// Message is the server's error description from the "error" field.
	Message string `json:"error"`
	// StatusCode is the HTTP status of the response. Zero when the
	// error field appeared in a 2xx payload.
	StatusCode int `json:"-"`
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("slackr: %s", e.Message)
	}
	return fmt.Sprintf("slackr: %s (%d)", e.Message, e.StatusCode)
}

// IsStatus reports whether err is an *APIError with the given HTTP
// status code.
func IsStatus(err error, statusCode int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == statusCode
	}
	return false
}

// IsAuthFailure reports whether err indicates a dead or invalid
// session (401/403 from an authenticated endpoint). Callers typically
// clear the saved session and direct the user to log in again.
func IsAuthFailure(err error) bool {
	return IsStatus(err, http.StatusForbidden) || IsStatus(err, http.StatusUnauthorized)
}
