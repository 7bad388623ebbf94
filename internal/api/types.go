// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "time"

// =============================================================================
// BACKEND RESOURCE TYPES
// =============================================================================

// User is an account record as returned by the backend.
type User struct {
	ID      string `json:"_id"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// Product is a catalog entry.
type Product struct {
	ID            string  `json:"_id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Brand         string  `json:"brand"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stockQuantity"`
	Image         string  `json:"image"`
}

// ProductInput is the payload for creating or updating a product.
type ProductInput struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Brand         string  `json:"brand"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stockQuantity"`
	Image         string  `json:"image"`
}

// CartItem is a line in a user's cart. Product may be nil when the catalog
// entry was deleted after the item was added.
type CartItem struct {
	ID       string   `json:"_id"`
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}

// Address is a delivery address owned by a user.
type Address struct {
	ID          string `json:"_id,omitempty"`
	UserID      string `json:"user,omitempty"`
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
	PostalCode  string `json:"postalCode"`
	PhoneNumber string `json:"phoneNumber"`
}

// OrderItem is one product line inside an order. Product is the catalog ID;
// price is captured at order time.
type OrderItem struct {
	ProductID string  `json:"product"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order lifecycle statuses, in fulfillment sequence.
const (
	OrderStatusPending    = "Pending"
	OrderStatusDispatched = "Dispatched"
	OrderStatusDelivered  = "Delivered"
)

// Order is a placed order as returned by the backend.
type Order struct {
	ID          string      `json:"_id"`
	UserID      string      `json:"user"`
	Items       []OrderItem `json:"item"`
	Address     *Address    `json:"address"`
	Status      string      `json:"status"`
	PaymentMode string      `json:"paymentMode"`
	Total       float64     `json:"total"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// OrderInput is the payload for placing an order.
type OrderInput struct {
	UserID      string      `json:"user"`
	Items       []OrderItem `json:"item"`
	Address     *Address    `json:"address"`
	Status      string      `json:"status"`
	PaymentMode string      `json:"paymentMode"`
	Total       float64     `json:"total"`
}

// NextOrderStatus returns the status an order advances to, or "" when the
// order is already terminal.
func NextOrderStatus(status string) string {
	switch status {
	case OrderStatusPending:
		return OrderStatusDispatched
	case OrderStatusDispatched:
		return OrderStatusDelivered
	default:
		return ""
	}
}
