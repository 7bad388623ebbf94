// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAuth_EmbeddedUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/check-auth", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{"_id": "u1", "email": "a@b.c", "isAdmin": false},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.CheckAuth(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, "u1", resp.User.ID)
	assert.False(t, resp.User.IsAdmin)
	assert.Empty(t, resp.AccessToken)
}

func TestCheckAuth_BareFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"userId":      "u2",
			"isAdmin":     true,
			"accessToken": "tok-123",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.CheckAuth(context.Background())
	require.NoError(t, err)
	assert.Nil(t, resp.User)
	assert.Equal(t, "u2", resp.UserID)
	assert.True(t, resp.IsAdmin)
	assert.Equal(t, "tok-123", resp.AccessToken)
}

func TestCheckAuth_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"401 maps to ErrUnauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"429 maps to ErrRateLimited", http.StatusTooManyRequests, ErrRateLimited},
		{"403 maps to ErrForbidden", http.StatusForbidden, ErrForbidden},
		{"404 maps to ErrNotFound", http.StatusNotFound, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client := NewClient(srv.URL)
			_, err := client.CheckAuth(context.Background())
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestLogin_BackendMessagePreserved(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "jo@example.com", req.Email)

		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Login(context.Background(), "jo@example.com", "nope")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", ErrorMessage(err, "Login failed"))
}

func TestLogin_FallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Login(context.Background(), "jo@example.com", "pw")
	require.Error(t, err)
	assert.Equal(t, "Login failed", ErrorMessage(err, "Login failed"))
}

func TestBearerToken_AppliedAndCleared(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	_, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)

	client.SetAccessToken("tok-abc")
	_, err = client.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", gotAuth)

	client.ClearAccessToken()
	_, err = client.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestBearerToken_ConcurrentRotation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	// Logout rotates the token while requests are in flight; run under
	// -race to catch unsynchronized access.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			client.SetAccessToken("tok")
			client.ClearAccessToken()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_, err := client.ListProducts(context.Background())
			assert.NoError(t, err)
		}
	}()
	wg.Wait()

	assert.False(t, client.HasAccessToken())
}

func TestCreateOrder_IdempotencyKey(t *testing.T) {
	var key string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key = r.Header.Get("Idempotency-Key")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.CreateOrder(context.Background(), OrderInput{
		UserID:      "u1",
		Items:       []OrderItem{{ProductID: "p1", Quantity: 2, Price: 100}},
		Status:      OrderStatusPending,
		PaymentMode: "COD",
		Total:       200,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, key)
}

func TestListOrders_BothShapes(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"_id":"o1","status":"Pending"}]`))
		}))
		defer srv.Close()

		orders, err := NewClient(srv.URL).ListOrders(context.Background())
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "o1", orders[0].ID)
	})

	t.Run("envelope", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"orders":[{"_id":"o2","status":"Dispatched"}]}`))
		}))
		defer srv.Close()

		orders, err := NewClient(srv.URL).ListOrders(context.Background())
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "o2", orders[0].ID)
	})
}

func TestListAddresses_NotFoundMeansEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "No addresses found for this user"})
	}))
	defer srv.Close()

	addrs, err := NewClient(srv.URL).ListAddresses(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, addrs)
}

func TestNextOrderStatus(t *testing.T) {
	assert.Equal(t, OrderStatusDispatched, NextOrderStatus(OrderStatusPending))
	assert.Equal(t, OrderStatusDelivered, NextOrderStatus(OrderStatusDispatched))
	assert.Equal(t, "", NextOrderStatus(OrderStatusDelivered))
}

func TestNotConfigured(t *testing.T) {
	client := NewClient("")
	_, err := client.ListProducts(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}
