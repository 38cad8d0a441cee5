// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the retro board API server.

A retro board collects what went well (glad), what went wrong (mad) and what
was disappointing (sad) after a sprint. The team then votes on items and
assigns action items before closing the board.

# Starting the Server

The server reads environment variables (optionally from a .env file) or CLI
flags:

	SESSION_SECRET=... DATABASE_TYPE=sqlite DATABASE_URL=retro.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." --session-secret ...

# Configuration

Required settings:

  - SESSION_SECRET (--session-secret): HMAC key for session tokens
  - DATABASE_URL (-d): SQLite file, PostgreSQL DSN or badger directory.
    Not needed for the memory store.

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): memory, sqlite, postgres or badger (default: sqlite)
  - SESSION_TTL (--session-ttl): Session lifetime (default: 24h)
  - IP_HASH_SALT (--ip-salt): Salt for rate limiter keys
  - AUTH_RATE_LIMIT (--auth-rps): Login/register requests per second per client (default: 5)
  - AUTH_RATE_BURST (--auth-burst): Login/register burst (default: 10)
  - TRUST_PROXY (--trust-proxy): Rate limit by X-Forwarded-For. Only set this
    behind a proxy that overwrites the header (default: false)

# Architecture

  - handlers: HTTP request handlers (auth, boards, items, voting, events)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, sessions, rate limiting, validation
  - boards: Board service with optimistic concurrency over the store
  - retro: Board rules (lifecycle, items, votes, timer)
  - users: Account registration and login
  - events: In-process fan-out of board changes
  - kvstore: Key-value store over memory, SQLite, PostgreSQL or badger
  - metrics: Prometheus collectors
  - apperr: Error kinds and their HTTP mapping
  - auth: ID generation, password hashing and session tokens
  - db: SQL schema for the key-value table
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
