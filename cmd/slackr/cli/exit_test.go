// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Rachel-Huang77/6080-slackr/api"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "plain error", err: errors.New("boom"), want: ExitFailure},
		{
			name: "validation",
			err:  &api.APIError{Message: "name required", StatusCode: http.StatusBadRequest},
			want: ExitValidation,
		},
		{
			name: "forbidden",
			err:  &api.APIError{Message: "invalid token", StatusCode: http.StatusForbidden},
			want: ExitAuth,
		},
		{
			name: "unauthorized",
			err:  &api.APIError{Message: "invalid token", StatusCode: http.StatusUnauthorized},
			want: ExitAuth,
		},
		{
			name: "not found",
			err:  &api.APIError{Message: "no such channel", StatusCode: http.StatusNotFound},
			want: ExitNotFound,
		},
		{
			name: "server fault",
			err:  &api.APIError{Message: "internal", StatusCode: http.StatusInternalServerError},
			want: ExitServer,
		},
		{
			name: "wrapped api error",
			err:  fmt.Errorf("creating channel: %w", &api.APIError{Message: "name required", StatusCode: http.StatusBadRequest}),
			want: ExitValidation,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ExitCodeFor(test.err); got != test.want {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", test.err, got, test.want)
			}
		})
	}
}
