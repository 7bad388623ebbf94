// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"
)

// =============================================================================
// ADDRESS ENDPOINTS
// =============================================================================

// ListAddresses fetches the delivery addresses for a user. A 404 means the
// user simply has none yet; callers get an empty slice, not an error.
func (c *Client) ListAddresses(ctx context.Context, userID string) ([]Address, error) {
	var out []Address
	err := c.do(ctx, http.MethodGet, "/address/user/"+url.PathEscape(userID), nil, &out, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

// CreateAddress adds a delivery address.
func (c *Client) CreateAddress(ctx context.Context, addr Address) (*Address, error) {
	var out Address
	if err := c.do(ctx, http.MethodPost, "/address", addr, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAddress removes a delivery address.
func (c *Client) DeleteAddress(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/address/"+url.PathEscape(id), nil, nil, nil)
}
