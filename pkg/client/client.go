// Package client provides a strongly-typed HTTP client for the PDF
// annotation service REST API.
//
// The client mirrors the server's endpoint structure:
//   - Authentication: register, login, resolve the current identity
//   - Documents: list, multipart PDF upload with progress, raw file access
//   - Annotations: list per document, create, update, delete
//   - Administration: usage statistics and user management
//
// All operations use the [github.com/chirag807/pdf-annotation-frontend/pkg/models]
// entities, take a context, and return wrapped errors. Server-reported
// failures are returned as [*APIError] so callers can surface the server's
// own message verbatim, which the UI layer relies on for login and
// registration feedback.
//
// A bearer token set via [Client.SetAuthToken] is attached to every request
// until cleared; the session store owns the token lifecycle.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is used when no API endpoint is configured.
const DefaultBaseURL = "http://localhost:8080/api"

// Client talks to the annotation service REST API.
//
// Reads may happen from any goroutine; SetAuthToken must not race with
// in-flight requests, which holds in practice because only the session
// store mutates the token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	authToken  string
}

// New creates an API client for the given base URL, which should include the
// API path prefix (e.g. "https://example.com/api") without a trailing slash.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetHTTPClient replaces the underlying HTTP client, mainly for tests.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// SetAuthToken sets the bearer token attached to subsequent requests.
// An empty token detaches authorization entirely.
func (c *Client) SetAuthToken(token string) {
	c.authToken = token
}

// AuthToken returns the bearer token currently attached to requests.
func (c *Client) AuthToken() string {
	return c.authToken
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError is a non-2xx response from the server. Message holds the server's
// own "message" field when the body carried one, so it is safe to show to
// the user unchanged.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// doRequest performs an HTTP request with JSON body handling and auth headers.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	return c.httpClient.Do(req)
}

// decodeResponse decodes the JSON response into target, translating non-2xx
// statuses into *APIError. A nil target discards the body.
func decodeResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return apiError(resp)
	}

	if target != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func apiError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		apiErr.Message = envelope.Message
	}
	return apiErr
}
