// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

// Package api is a typed client for the Slackr backend REST API.
//
// The package has two layers. Client is the unauthenticated transport:
// it owns the base URL and HTTP connection pool and exposes the auth
// endpoints (Login, Register). Session wraps a Client with a bearer
// token and exposes one method per authenticated backend operation —
// channels, messages, reactions, pins, invites, and profiles. Sessions
// are thin request/response mappings: every business rule lives on the
// server, and callers re-fetch after mutating rather than patching
// local state.
//
// Errors come in two classes. Application errors — a non-2xx status
// with an {"error": "..."} payload, or an error field in an otherwise
// well-formed response — surface as *APIError with the server's
// message verbatim. Transport errors (connection refused, DNS failure)
// surface as wrapped errors from the HTTP layer. Nothing is retried;
// a single unresolved attempt is the extent of the failure policy.
package api
