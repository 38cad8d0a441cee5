// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/retro-board/auth"
	"github.com/danielhkuo/retro-board/boards"
	"github.com/danielhkuo/retro-board/cliparse"
	"github.com/danielhkuo/retro-board/kvstore"
	"github.com/danielhkuo/retro-board/models"
	"github.com/danielhkuo/retro-board/retro"
	"github.com/danielhkuo/retro-board/users"
)

// TestDBURL is an in-memory SQLite database private to one store
const TestDBURL = ":memory:"

// SetupTestStore opens a fresh SQLite-backed store with the kv schema
func SetupTestStore(t *testing.T) kvstore.Store {
	t.Helper()

	store, err := kvstore.Open(context.Background(), kvstore.BackendSQLite, TestDBURL, nil)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   TestDBURL,
		DatabaseType:  kvstore.BackendSQLite,
		SessionSecret: "test-session-secret",
		SessionTTL:    time.Hour,
		IPHashSalt:    "test-ip-salt",
		AuthRateLimit: 0,
		AuthRateBurst: 10,
	}
}

// CreateTestUser registers a user and returns it with a session token
func CreateTestUser(t *testing.T, store kvstore.Store, cfg cliparse.Config, username string) (models.User, string) {
	t.Helper()

	user, err := users.NewService(store).Register(context.Background(), username, "password123")
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user, SessionToken(t, cfg, user)
}

// SessionToken issues a session token for user
func SessionToken(t *testing.T, cfg cliparse.Config, user models.User) string {
	t.Helper()

	token, err := auth.IssueSessionToken(auth.Session{UserID: user.ID, Username: user.Username},
		[]byte(cfg.SessionSecret), cfg.SessionTTL)
	if err != nil {
		t.Fatalf("Failed to issue session token: %v", err)
	}
	return token
}

// AuthHeader returns request headers carrying token
func AuthHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// CreateTestBoard creates a board owned by creator
func CreateTestBoard(t *testing.T, store kvstore.Store, name string, creator models.User) *models.RetroBoard {
	t.Helper()

	board, err := boards.NewService(store, nil).Create(context.Background(), name,
		retro.Actor{UserID: creator.ID, Username: creator.Username})
	if err != nil {
		t.Fatalf("Failed to create test board: %v", err)
	}
	return board
}

// AddTestItem adds an item authored by author and returns it
func AddTestItem(t *testing.T, store kvstore.Store, boardID string, author models.User, content, category string) models.RetroItem {
	t.Helper()

	item, err := boards.NewService(store, nil).AddItem(context.Background(), boardID, content, category,
		retro.Actor{UserID: author.ID, Username: author.Username})
	if err != nil {
		t.Fatalf("Failed to create test item: %v", err)
	}
	return item
}

// SetTestStatus walks the board to status on behalf of actor
func SetTestStatus(t *testing.T, store kvstore.Store, boardID, actor string, path ...models.BoardStatus) {
	t.Helper()

	svc := boards.NewService(store, nil)
	for _, status := range path {
		if _, err := svc.SetStatus(context.Background(), boardID, string(status), actor); err != nil {
			t.Fatalf("Failed to set status %s: %v", status, err)
		}
	}
}

// GetTestBoard loads a board straight from the store
func GetTestBoard(t *testing.T, store kvstore.Store, boardID string) *models.RetroBoard {
	t.Helper()

	board, err := boards.NewService(store, nil).Get(context.Background(), boardID)
	if err != nil {
		t.Fatalf("Failed to load test board: %v", err)
	}
	return board
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertError checks the status code and the {"error": ...} message
func AssertError(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	AssertStatus(t, w, status)
	var resp models.ErrorResponse
	AssertJSON(t, w, &resp)
	if resp.Error != message {
		t.Errorf("Expected error '%s', got '%s'", message, resp.Error)
	}
}
