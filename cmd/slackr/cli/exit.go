// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"net/http"

	"github.com/Rachel-Huang77/6080-slackr/api"
)

// ExitError signals a non-zero exit code without printing an extra
// error message. When a command handler returns an ExitError, the CLI
// framework exits with the specified code without printing the error
// string — the command is expected to have already written its own
// output.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. The CLI framework's main function
// checks for this interface on returned errors to distinguish
// "handled non-zero exit" from "unexpected error to display".
func (e *ExitError) ExitCode() int {
	return e.Code
}

// Exit codes by error category, so scripted callers can branch on the
// code instead of parsing error text.
const (
	ExitFailure    = 1 // unclassified error
	ExitValidation = 2 // backend rejected the request (400)
	ExitAuth       = 3 // session invalid or access denied (401/403)
	ExitNotFound   = 4 // entity does not exist (404)
	ExitServer     = 5 // backend fault (5xx)
)

// ExitCodeFor maps an error to its categorized exit code.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return 0
	case api.IsStatus(err, http.StatusBadRequest):
		return ExitValidation
	case api.IsAuthFailure(err):
		return ExitAuth
	case api.IsStatus(err, http.StatusNotFound):
		return ExitNotFound
	case api.IsStatus(err, http.StatusInternalServerError),
		api.IsStatus(err, http.StatusBadGateway),
		api.IsStatus(err, http.StatusServiceUnavailable):
		return ExitServer
	default:
		return ExitFailure
	}
}
