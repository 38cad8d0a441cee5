// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/retro-board/boards"
	"github.com/danielhkuo/retro-board/cliparse"
	"github.com/danielhkuo/retro-board/events"
	"github.com/danielhkuo/retro-board/kvstore"
	"github.com/danielhkuo/retro-board/middleware"
	"github.com/danielhkuo/retro-board/testutil"
	"github.com/danielhkuo/retro-board/users"
)

// testEnv wires the services the handlers need over a fresh store.
type testEnv struct {
	store  kvstore.Store
	cfg    cliparse.Config
	broker *events.Broker
	boards *boards.Service
	users  *users.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := testutil.SetupTestStore(t)
	broker := events.NewBroker()
	return &testEnv{
		store:  store,
		cfg:    testutil.GetTestConfig(),
		broker: broker,
		boards: boards.NewService(store, broker),
		users:  users.NewService(store),
	}
}

// serve runs h behind the session middleware, as the router does.
func (e *testEnv) serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	middleware.RequireSession([]byte(e.cfg.SessionSecret), e.users, h)(w, req)
	return w
}

// newRequest builds a request with a bearer token and path values given as
// name, value pairs.
func newRequest(method, path string, body interface{}, token string, pathValues ...string) *http.Request {
	var headers map[string]string
	if token != "" {
		headers = testutil.AuthHeader(token)
	}
	req := testutil.MakeRequest(method, path, body, headers)
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}
	return req
}

// rawRequest sends body verbatim, for malformed JSON cases.
func rawRequest(method, path, body, token string) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v. Body: %s", err, w.Body.String())
	}
	return v
}
