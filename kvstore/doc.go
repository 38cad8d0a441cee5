// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package kvstore is the key-value store adapter behind users and boards.

# Interface

Store exposes the small Redis-like surface the services need:

	Get(key)                  -> value | ErrNotFound
	Set(key, value)
	Del(key)
	Keys(pattern)             -> matching keys ('*' and '?' globs)
	MGet(keys...)             -> values, nil for missing keys
	SetNX(key, value)         -> stored?
	CompareAndSwap(key, old, new) -> swapped?

SetNX guards unique keys (usernames, board IDs). CompareAndSwap backs the
optimistic read-modify-write loop in package boards.

# Backends

	kvstore.Open(ctx, "memory", "", nil)
	kvstore.Open(ctx, "sqlite", "file:retro.db", nil)
	kvstore.Open(ctx, "postgres", "postgres://...", nil)
	kvstore.Open(ctx, "badger", "/var/lib/retro", logger)

SQL backends store rows in the kv table created by package db. The badger
backend is embedded and runs value log GC in the background.

GetJSON and SetJSON encode documents as JSON.
*/
package kvstore
