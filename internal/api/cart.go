// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"
)

// =============================================================================
// CART ENDPOINTS
// =============================================================================

// cartAddRequest is the payload for adding a product to a cart.
type cartAddRequest struct {
	UserID    string `json:"user"`
	ProductID string `json:"product"`
	Quantity  int    `json:"quantity"`
}

// cartUpdateRequest patches a cart line's quantity.
type cartUpdateRequest struct {
	Quantity int `json:"quantity"`
}

// ListCart fetches the cart lines for a user.
func (c *Client) ListCart(ctx context.Context, userID string) ([]CartItem, error) {
	var out []CartItem
	if err := c.do(ctx, http.MethodGet, "/cart/user/"+url.PathEscape(userID), nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// AddToCart appends a product line to the user's cart.
func (c *Client) AddToCart(ctx context.Context, userID, productID string, quantity int) error {
	req := cartAddRequest{UserID: userID, ProductID: productID, Quantity: quantity}
	return c.do(ctx, http.MethodPost, "/cart", req, nil, nil)
}

// UpdateCartQuantity sets the quantity of a cart line.
func (c *Client) UpdateCartQuantity(ctx context.Context, itemID string, quantity int) error {
	req := cartUpdateRequest{Quantity: quantity}
	return c.do(ctx, http.MethodPatch, "/cart/"+url.PathEscape(itemID), req, nil, nil)
}

// RemoveCartItem deletes a single cart line.
func (c *Client) RemoveCartItem(ctx context.Context, itemID string) error {
	return c.do(ctx, http.MethodDelete, "/cart/"+url.PathEscape(itemID), nil, nil, nil)
}

// ClearCart deletes every cart line for a user. Called after checkout.
func (c *Client) ClearCart(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/cart/user/"+url.PathEscape(userID), nil, nil, nil)
}
