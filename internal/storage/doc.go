// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists small client-local state in a SQLite database
// under the user's config directory.
//
// Two concerns live here: a key/value table holding single values that must
// survive a restart (most importantly the "return here after login" path,
// which is consumed read-and-clear), and a catalog cache that lets the
// storefront paint the last known product list while a fresh fetch is in
// flight, with a TTL so stale entries are never trusted.
package storage
