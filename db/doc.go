// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db manages the SQL schema behind the key-value store.

# Schema Creation

CreateSchema creates the single kv table. It's idempotent (uses IF NOT EXISTS):

	err := db.CreateSchema(conn, db.DialectPostgres)

# Table

	kv (key TEXT PRIMARY KEY, value BLOB/BYTEA)

Documents are stored as JSON bytes. Keys in use:

  - user:<lowercased-username>  - user document
  - userId:<id>                 - same user document, looked up by ID
  - board:<boardId>             - board document with embedded items

On PostgreSQL the key column gets a text_pattern_ops index so that the
prefix LIKE queries issued by Keys("board:*") can use it.
*/
package db
