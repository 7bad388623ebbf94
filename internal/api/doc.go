// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the REST client for the storefront backend: auth, catalog,
// cart, orders, addresses, and user administration. It owns the bearer
// credential, paces requests, and maps backend failures onto typed errors.
package api
