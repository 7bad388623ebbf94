// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
)

// =============================================================================
// AUTH ENDPOINTS
// =============================================================================

// CheckAuthResponse is the session-check payload. The backend returns either
// an embedded user object or bare identifier fields, and optionally a bearer
// credential for subsequent requests.
type CheckAuthResponse struct {
	User        *User  `json:"user,omitempty"`
	UserID      string `json:"userId,omitempty"`
	IsAdmin     bool   `json:"isAdmin,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`
}

// LoginRequest is the credential payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the payload for account registration.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CheckAuth performs the session check against the backend. The caller owns
// the context deadline; the session store bounds it at the configured
// bootstrap timeout.
func (c *Client) CheckAuth(ctx context.Context) (*CheckAuthResponse, error) {
	var out CheckAuthResponse
	if err := c.do(ctx, http.MethodGet, "/auth/check-auth", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates with email and password. On failure the returned error
// carries the backend's message when one was provided.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var out User
	req := LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, name, email, password string) error {
	req := SignupRequest{Name: name, Email: email, Password: password}
	return c.do(ctx, http.MethodPost, "/auth/signup", req, nil, nil)
}

// Logout notifies the backend that the session is over. Callers treat a
// failure as non-fatal; local session state is cleared regardless.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/auth/logout", nil, nil, nil)
}
