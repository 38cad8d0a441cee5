// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv unsets every variable ParseFlags reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DATABASE_URL", "DATABASE_TYPE", "SESSION_SECRET", "SESSION_TTL",
		"IP_HASH_SALT", "AUTH_RATE_LIMIT", "AUTH_RATE_BURST", "TRUST_PROXY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("IP_HASH_SALT", "pepper")
	t.Setenv("AUTH_RATE_LIMIT", "2.5")
	t.Setenv("AUTH_RATE_BURST", "4")
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.SessionSecret != "test-secret" {
		t.Errorf("expected session secret from env, got %q", cfg.SessionSecret)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("expected 2h TTL, got %s", cfg.SessionTTL)
	}
	if cfg.IPHashSalt != "pepper" {
		t.Errorf("expected ip salt from env, got %q", cfg.IPHashSalt)
	}
	if cfg.AuthRateLimit != 2.5 || cfg.AuthRateBurst != 4 {
		t.Errorf("expected rate 2.5/4, got %v/%d", cfg.AuthRateLimit, cfg.AuthRateBurst)
	}
	if !cfg.TrustProxy {
		t.Error("expected TRUST_PROXY from env")
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_SECRET", "env-secret")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-session-secret", "cli-secret", "-session-ttl", "30m"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.SessionSecret != "cli-secret" {
		t.Errorf("CLI should override env: expected cli-secret, got %q", cfg.SessionSecret)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("expected 30m TTL, got %s", cfg.SessionTTL)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{"-d", "retro.db", "-session-secret", "s"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default type sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("expected default TTL 24h, got %s", cfg.SessionTTL)
	}
	if cfg.AuthRateLimit != 5 || cfg.AuthRateBurst != 10 {
		t.Errorf("expected default rate 5/10, got %v/%d", cfg.AuthRateLimit, cfg.AuthRateBurst)
	}
}

func TestParseFlags_RateLimitDisabled(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{"-t", "memory", "-session-secret", "s", "-auth-rps", "0"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AuthRateLimit != 0 {
		t.Errorf("expected rate limiting disabled, got %v", cfg.AuthRateLimit)
	}
	if cfg.TrustProxy {
		t.Error("expected forwarding headers to be untrusted by default")
	}
}

func TestParseFlags_TrustProxyFlag(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{"-t", "memory", "-session-secret", "s", "-trust-proxy"})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.TrustProxy {
		t.Error("expected -trust-proxy to enable forwarding headers")
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		wantErr string
	}{
		{"missing session secret", nil, []string{"-d", "retro.db"}, "SESSION_SECRET"},
		{"missing database url", nil, []string{"-session-secret", "s"}, "database URL required"},
		{"unknown database type", nil, []string{"-t", "mongo", "-d", "x", "-session-secret", "s"}, "unknown database type"},
		{"invalid port env", map[string]string{"PORT": "abc"}, []string{"-d", "x", "-session-secret", "s"}, "invalid PORT"},
		{"invalid ttl env", map[string]string{"SESSION_TTL": "forever"}, []string{"-d", "x", "-session-secret", "s"}, "invalid SESSION_TTL"},
		{"invalid burst env", map[string]string{"AUTH_RATE_BURST": "0"}, []string{"-d", "x", "-session-secret", "s"}, "invalid AUTH_RATE_BURST"},
		{"invalid trust proxy env", map[string]string{"TRUST_PROXY": "maybe"}, []string{"-d", "x", "-session-secret", "s"}, "invalid TRUST_PROXY"},
		{"unknown flag", nil, []string{"-admin-salt", "x"}, "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := ParseFlags(tt.args)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestParseFlags_MemoryNeedsNoURL(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{"-t", "memory", "-session-secret", "s"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("expected empty database URL, got %q", cfg.DatabaseURL)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "SESSION_SECRET=from-dotenv\nDATABASE_TYPE=memory\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SessionSecret != "from-dotenv" {
		t.Errorf("expected secret from .env, got %q", cfg.SessionSecret)
	}
	if cfg.DatabaseType != "memory" {
		t.Errorf("expected memory from .env, got %q", cfg.DatabaseType)
	}
}

func TestLoadDotEnv_ExistingEnvWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", "from-env")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("SESSION_SECRET=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := LoadDotEnv(path); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("SESSION_SECRET"); got != "from-env" {
		t.Errorf("expected existing env to win, got %q", got)
	}
}
