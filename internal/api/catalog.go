// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"
)

// =============================================================================
// PRODUCT ENDPOINTS
// =============================================================================

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProduct fetches a single catalog entry.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct adds a catalog entry (admin).
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodPost, "/products", input, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct patches a catalog entry (admin).
func (c *Client) UpdateProduct(ctx context.Context, id string, input ProductInput) error {
	return c.do(ctx, http.MethodPatch, "/products/"+url.PathEscape(id), input, nil, nil)
}

// DeleteProduct removes a catalog entry (admin).
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil, nil)
}
