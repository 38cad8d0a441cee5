// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: memory, sqlite, postgres or badger (default: sqlite)
  - DatabaseURL: SQLite file, PostgreSQL DSN or badger directory (required unless memory)
  - SessionSecret: HMAC key for session tokens (required)
  - SessionTTL: Session lifetime (default: 24h)
  - IPHashSalt: Salt for hashing client IPs in the rate limiter
  - AuthRateLimit, AuthRateBurst: Per-client limit on /auth routes (default: 5/s, burst 10)
  - TrustProxy: Key the limiter on X-Forwarded-For instead of the peer address (default: false)

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	--session-secret  Session signing secret
	--session-ttl     Session lifetime (Go duration, e.g. 12h)
	--ip-salt         IP hash salt
	--auth-rps        Auth requests per second per client (0 disables)
	--auth-burst      Auth burst per client
	--trust-proxy     Trust X-Forwarded-For and X-Real-IP

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	SESSION_SECRET  → --session-secret
	SESSION_TTL     → --session-ttl
	IP_HASH_SALT    → --ip-salt
	AUTH_RATE_LIMIT → --auth-rps
	AUTH_RATE_BURST → --auth-burst
	TRUST_PROXY     → --trust-proxy

CLI flags take precedence over environment variables. LoadDotEnv fills the
environment from a .env file first; variables that are already set win.

# Example

	// In main.go
	if err := cliparse.LoadDotEnv(".env"); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	store, err := kvstore.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL, slog.Default())
	// ...
	mux := router.NewRouter(store, cfg)
*/
package cliparse
