package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	SessionSecret string
	SessionTTL    time.Duration
	IPHashSalt    string
	AuthRateLimit float64
	AuthRateBurst int
	TrustProxy    bool
}

// LoadDotEnv reads KEY=value pairs from the given files into the process
// environment. Missing files are skipped; variables already set win.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("retro-board", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (SQLite file, PostgreSQL DSN or badger directory)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (memory, sqlite, postgres or badger)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session signing secret (prefer env)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "Salt for hashing client IPs (prefer env)")

	fs.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Session lifetime")
	fs.Float64Var(&cfg.AuthRateLimit, "auth-rps", -1, "Login/register requests per second per client (0 disables)")
	fs.IntVar(&cfg.AuthRateBurst, "auth-burst", 0, "Login/register burst per client")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", false, "Key rate limits on X-Forwarded-For (only behind a proxy that sets it)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	switch cfg.DatabaseType {
	case "memory", "sqlite", "postgres", "badger":
	default:
		return Config{}, fmt.Errorf("unknown database type %q (use memory, sqlite, postgres or badger)", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" && cfg.DatabaseType != "memory" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.SessionTTL == 0 {
		if ttlStr := os.Getenv("SESSION_TTL"); ttlStr != "" {
			ttl, err := time.ParseDuration(ttlStr)
			if err != nil {
				return Config{}, errors.New("invalid SESSION_TTL env variable")
			}
			cfg.SessionTTL = ttl
		} else {
			cfg.SessionTTL = 24 * time.Hour
		}
	}
	if cfg.SessionTTL < 0 {
		return Config{}, errors.New("session TTL must be positive")
	}

	if cfg.AuthRateLimit < 0 {
		if rpsStr := os.Getenv("AUTH_RATE_LIMIT"); rpsStr != "" {
			rps, err := strconv.ParseFloat(rpsStr, 64)
			if err != nil || rps < 0 {
				return Config{}, errors.New("invalid AUTH_RATE_LIMIT env variable")
			}
			cfg.AuthRateLimit = rps
		} else {
			cfg.AuthRateLimit = 5
		}
	}
	if cfg.AuthRateBurst == 0 {
		if burstStr := os.Getenv("AUTH_RATE_BURST"); burstStr != "" {
			burst, err := strconv.Atoi(burstStr)
			if err != nil || burst < 1 {
				return Config{}, errors.New("invalid AUTH_RATE_BURST env variable")
			}
			cfg.AuthRateBurst = burst
		} else {
			cfg.AuthRateBurst = 10
		}
	}

	if !cfg.TrustProxy {
		if proxyStr := os.Getenv("TRUST_PROXY"); proxyStr != "" {
			trust, err := strconv.ParseBool(proxyStr)
			if err != nil {
				return Config{}, errors.New("invalid TRUST_PROXY env variable")
			}
			cfg.TrustProxy = trust
		}
	}

	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}

	// Secrets - MUST be provided
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	return cfg, nil
}
