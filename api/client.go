// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/Rachel-Huang77/6080-slackr/lib/ident"
	"github.com/Rachel-Huang77/6080-slackr/lib/netutil"
	"github.com/Rachel-Huang77/6080-slackr/lib/secret"
)

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the base URL of the backend (e.g., "http://localhost:5005").
	BaseURL string
	// HTTPClient is used for all requests. If nil, http.DefaultClient is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Client is an unauthenticated backend client. It holds the base URL
// and HTTP transport, shared across Sessions.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new unauthenticated backend client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}

	// Validate the URL structure. The string form (trailing slash
	// stripped) is stored and request URLs are built by concatenation,
	// sidestepping url.URL.String() re-encoding of already-escaped
	// path segments.
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("api: invalid BaseURL %q: %w", config.BaseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Login authenticates with email and password, returning a Session.
// The password Buffer is read but not closed — the caller retains
// ownership. On rejected credentials no session state is created
// anywhere: the token exists only inside the successful response.
func (c *Client) Login(ctx context.Context, email string, password *secret.Buffer) (*Session, error) {
	if email == "" {
		return nil, fmt.Errorf("api: email is required for login")
	}
	if password == nil {
		return nil, fmt.Errorf("api: password is required for login")
	}

	// Password converts to string at the JSON serialization boundary;
	// the heap copy lives only for the duration of the request.
	body, err := c.doRequest(ctx, http.MethodPost, "/auth/login", nil, loginRequest{
		Email:    email,
		Password: password.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("api: login failed: %w", err)
	}

	var authResponse AuthResponse
	if err := json.Unmarshal(body, &authResponse); err != nil {
		return nil, fmt.Errorf("api: failed to parse login response: %w", err)
	}

	c.logger.Info("logged in", "user_id", authResponse.UserID)
	return c.sessionFromAuth(&authResponse)
}

// Register creates a new account and returns a Session for it. The
// backend logs the new account in immediately — no confirmation round
// trip. Password confirmation is a front-end concern and must be
// checked by the caller before this point.
func (c *Client) Register(ctx context.Context, email, name string, password *secret.Buffer) (*Session, error) {
	if email == "" {
		return nil, fmt.Errorf("api: email is required for registration")
	}
	if name == "" {
		return nil, fmt.Errorf("api: name is required for registration")
	}
	if password == nil {
		return nil, fmt.Errorf("api: password is required for registration")
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/auth/register", nil, registerRequest{
		Email:    email,
		Password: password.String(),
		Name:     name,
	})
	if err != nil {
		return nil, fmt.Errorf("api: registration failed: %w", err)
	}

	var authResponse AuthResponse
	if err := json.Unmarshal(body, &authResponse); err != nil {
		return nil, fmt.Errorf("api: failed to parse register response: %w", err)
	}

	c.logger.Info("registered account", "user_id", authResponse.UserID)
	return c.sessionFromAuth(&authResponse)
}

// SessionFromToken rebuilds a Session from saved credentials. The
// token string is moved into mmap-backed memory; the original remains
// on the heap briefly until collected. The token is NOT validated —
// the first authenticated call fails if it is stale.
//
// The caller must call Close on the returned Session when done.
func (c *Client) SessionFromToken(userID ident.UserID, token string) (*Session, error) {
	tokenBuffer, err := secret.NewFromString(token)
	if err != nil {
		return nil, fmt.Errorf("api: protecting token: %w", err)
	}
	return &Session{
		client: c,
		token:  tokenBuffer,
		userID: userID,
	}, nil
}

func (c *Client) sessionFromAuth(auth *AuthResponse) (*Session, error) {
	tokenBuffer, err := secret.NewFromString(auth.Token)
	if err != nil {
		return nil, fmt.Errorf("api: protecting token: %w", err)
	}
	return &Session{
		client: c,
		token:  tokenBuffer,
		userID: auth.UserID,
	}, nil
}

// doRequest performs an HTTP request and returns the response body.
// On 2xx with no application error field, returns the body. On a
// non-2xx status or an error field in the payload, returns *APIError.
// token may be nil for the unauthenticated auth endpoints. query may
// be omitted for endpoints without query parameters.
func (c *Client) doRequest(ctx context.Context, method, path string, token *secret.Buffer, requestBody any, query ...url.Values) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 && query[0] != nil {
		requestURL += "?" + query[0].Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("api: failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("api: failed to create request: %w", err)
	}

	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != nil {
		request.Header.Set("Authorization", "Bearer "+token.String())
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("api: request to %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("api: failed to read response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		// Some handlers report failure inside a 200 payload. Probe for
		// the error field before handing the body to the caller.
		var probe APIError
		if json.Unmarshal(responseBody, &probe) == nil && probe.Message != "" {
			return responseBody, &probe
		}
		return responseBody, nil
	}

	var apiErr APIError
	if jsonErr := json.Unmarshal(responseBody, &apiErr); jsonErr != nil || apiErr.Message == "" {
		// Non-JSON error body. Should not happen with this backend,
		// but fail loud with the raw body.
		return nil, fmt.Errorf("api: unexpected %d response from %s %s: %s",
			response.StatusCode, method, path, string(responseBody))
	}
	apiErr.StatusCode = response.StatusCode

	return responseBody, &apiErr
}
