// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(1, 3, "salt", false)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	handler := limiter.Limit(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	call := func(ip string) int {
		req := httptest.NewRequest("POST", "/auth/login", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		handler(w, req)
		return w.Code
	}

	// Burst of three, then rejected
	for i := 0; i < 3; i++ {
		if code := call("10.0.0.1"); code != http.StatusOK {
			t.Fatalf("Request %d: expected 200, got %d", i, code)
		}
	}
	if code := call("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Errorf("Expected 429 after burst, got %d", code)
	}

	// Other clients have their own bucket
	if code := call("10.0.0.2"); code != http.StatusOK {
		t.Errorf("Expected 200 for a different client, got %d", code)
	}

	// Tokens refill over time
	now = now.Add(time.Second)
	if code := call("10.0.0.1"); code != http.StatusOK {
		t.Errorf("Expected 200 after refill, got %d", code)
	}
}

func TestRateLimiter_IgnoresForwardedHeaders(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2, "salt", false)
	handler := limiter.Limit(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	var codes []int
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest("POST", "/auth/login", nil)
		req.RemoteAddr = "192.0.2.10:52100"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i+1))
		req.Header.Set("X-Real-IP", fmt.Sprintf("203.0.113.%d", i+1))
		w := httptest.NewRecorder()
		handler(w, req)
		codes = append(codes, w.Code)
	}

	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("Rotating forwarding headers must not reset the bucket: got %v, want %v", codes, want)
		}
	}
}

func TestRateLimiter_TrustedProxy(t *testing.T) {
	limiter := NewRateLimiter(0.001, 1, "salt", true)
	handler := limiter.Limit(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	call := func(forwarded string) int {
		req := httptest.NewRequest("POST", "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:443"
		req.Header.Set("X-Forwarded-For", forwarded)
		w := httptest.NewRecorder()
		handler(w, req)
		return w.Code
	}

	// Behind the proxy every client shares one peer address
	if code := call("198.51.100.1"); code != http.StatusOK {
		t.Fatalf("Expected 200 for first client, got %d", code)
	}
	if code := call("198.51.100.2"); code != http.StatusOK {
		t.Errorf("Expected 200 for second client behind the proxy, got %d", code)
	}
	if code := call("198.51.100.1"); code != http.StatusTooManyRequests {
		t.Errorf("Expected 429 for repeated client, got %d", code)
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := NewRateLimiter(0, 0, "", false)
	handler := limiter.Limit(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("POST", "/auth/login", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Request %d: expected 200 with limiting disabled, got %d", i, w.Code)
		}
	}
}

func TestRateLimiter_Response(t *testing.T) {
	limiter := NewRateLimiter(0.001, 1, "salt", false)
	handler := limiter.Limit(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler(httptest.NewRecorder(), httptest.NewRequest("POST", "/", nil))

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("POST", "/", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Error("Expected JSON error body")
	}
}
