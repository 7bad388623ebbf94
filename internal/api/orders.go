// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// =============================================================================
// ORDER ENDPOINTS
// =============================================================================

// ordersEnvelope tolerates both {orders: [...]} and bare-array responses,
// which the backend has returned at different times.
type ordersEnvelope struct {
	Orders []Order `json:"orders"`
}

// orderStatusRequest patches an order's status.
type orderStatusRequest struct {
	Status string `json:"status"`
}

// ListOrders fetches every order (admin).
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &raw, nil); err != nil {
		return nil, err
	}
	return decodeOrders(raw)
}

// ListUserOrders fetches the order history for one user.
func (c *Client) ListUserOrders(ctx context.Context, userID string) ([]Order, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/orders/user/"+url.PathEscape(userID), nil, &raw, nil); err != nil {
		return nil, err
	}
	return decodeOrders(raw)
}

// decodeOrders unwraps either response shape.
func decodeOrders(raw json.RawMessage) ([]Order, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var list []Order
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var env ordersEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	return env.Orders, nil
}

// CreateOrder places an order. An Idempotency-Key header guards against a
// retried submit creating a duplicate order.
func (c *Client) CreateOrder(ctx context.Context, input OrderInput) error {
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}
	return c.do(ctx, http.MethodPost, "/orders", input, nil, headers)
}

// UpdateOrderStatus advances an order's status (admin).
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	req := orderStatusRequest{Status: status}
	return c.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(orderID), req, nil, nil)
}
