// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the REST client for the storefront backend.
//
// All durable state lives on the backend; this client is the only component
// that talks to it. Requests are paced with a client-side rate limiter,
// carry a per-request ID, and go out with the session cookie jar plus the
// bearer credential when one has been issued.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Configuration constants for the storefront API.
const (
	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 15 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	MaxResponseSize = 4 * 1024 * 1024 // 4MB limit
)

// Error variables for common backend responses.
var (
	// ErrNotConfigured indicates the backend base URL is not set.
	ErrNotConfigured = errors.New("storefront backend not configured")

	// ErrUnauthorized indicates the backend rejected the session or credentials (401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the account lacks the required capability (403).
	ErrForbidden = errors.New("forbidden")

	// ErrRateLimited indicates the backend is throttling this client (429).
	ErrRateLimited = errors.New("rate limited")

	// ErrNotFound indicates the requested resource does not exist (404).
	ErrNotFound = errors.New("not found")
)

// APIError represents a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.Status)
}

// errorResponse is the backend's error payload shape.
type errorResponse struct {
	Message string `json:"message"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is a client for the storefront REST backend.
//
// The bearer credential is owned by the client instance, not a package-level
// default, so tests and multiple clients cannot clobber each other.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger

	userAgent string

	// mu guards accessToken: logout rotates it from the session store's
	// goroutine while view fetches read it on theirs.
	mu          sync.RWMutex
	accessToken string
}

// NewClient creates a client for the backend at baseURL.
//
// Requests carry cookies (the backend issues a session cookie on login), so
// the underlying http.Client always has a cookie jar.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Jar:     jar,
		},
		limiter:   rate.NewLimiter(rate.Inf, 1),
		userAgent: "shopfront/1.0",
	}
}

// WithTimeout sets the request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithRateLimit caps outgoing requests at rps with the given burst.
// rps <= 0 disables pacing.
func (c *Client) WithRateLimit(rps float64, burst int) *Client {
	if rps <= 0 {
		c.limiter = rate.NewLimiter(rate.Inf, 1)
		return c
	}
	if burst < 1 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	return c
}

// WithLogger sets the request logger. A nil logger disables logging.
func (c *Client) WithLogger(logger *log.Logger) *Client {
	c.logger = logger
	return c
}

// IsConfigured returns true if the client has a backend URL.
func (c *Client) IsConfigured() bool {
	return c.baseURL != ""
}

// =============================================================================
// BEARER CREDENTIAL
// =============================================================================

// SetAccessToken installs the bearer credential applied to all subsequent
// requests. Called by the session store when the bootstrap response carries
// an access token.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

// ClearAccessToken forgets the bearer credential (logout).
func (c *Client) ClearAccessToken() {
	c.mu.Lock()
	c.accessToken = ""
	c.mu.Unlock()
}

// HasAccessToken reports whether a bearer credential is installed.
func (c *Client) HasAccessToken() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken != ""
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// do performs a single JSON request against the backend.
// body and out may be nil. Extra headers are applied after the defaults.
func (c *Client) do(ctx context.Context, method, path string, body, out any, headers map[string]string) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req, body != nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	// The Authorization header must not leak into logs.
	req.Header.Del("Authorization")

	if err != nil {
		c.Logf("API Request: %s %s failed after %v", method, path, duration)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.Logf("API Request: %s %s -> %d (%v)", method, path, resp.StatusCode, duration)

	data, err := readResponse(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// setHeaders sets the default headers for backend requests.
func (c *Client) setHeaders(req *http.Request, hasBody bool) {
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	c.mu.RLock()
	token := c.accessToken
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(data)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", int64(MaxResponseSize))
	}
	return data, nil
}

// handleErrorResponse converts HTTP error responses to typed errors.
// The backend's {message} payload is preserved where present so views can
// show it verbatim (login failures in particular).
func (c *Client) handleErrorResponse(statusCode int, body []byte) error {
	var payload errorResponse
	message := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		message = payload.Message
	}

	var sentinel error
	switch statusCode {
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusForbidden:
		sentinel = ErrForbidden
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusTooManyRequests:
		sentinel = ErrRateLimited
	default:
		return &APIError{Status: statusCode, Message: message}
	}

	if message != "" {
		return fmt.Errorf("%w: %s", sentinel, message)
	}
	return sentinel
}

// Logf writes to the request logger when one is configured. Also used by
// callers to report non-fatal client-side failures alongside request logs.
// Bodies and credentials are never logged.
func (c *Client) Logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

// =============================================================================
// ERROR CLASSIFICATION
// =============================================================================

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsRateLimited reports whether err is a 429 response.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// ErrorMessage extracts the backend-provided message from err, or returns
// fallback when none is present.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	for _, sentinel := range []error{ErrUnauthorized, ErrForbidden, ErrNotFound, ErrRateLimited} {
		if errors.Is(err, sentinel) {
			msg := err.Error()
			prefix := sentinel.Error() + ": "
			if strings.HasPrefix(msg, prefix) {
				return strings.TrimPrefix(msg, prefix)
			}
		}
	}
	return fallback
}
