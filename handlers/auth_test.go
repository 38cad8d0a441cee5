// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/retro-board/auth"
	"github.com/danielhkuo/retro-board/kvstore"
	"github.com/danielhkuo/retro-board/models"
	"github.com/danielhkuo/retro-board/testutil"
	"github.com/danielhkuo/retro-board/users"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAuthHandler(users.NewService(env.store), env.cfg)

	tests := []struct {
		name           string
		request        interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "valid registration",
			request:        models.CredentialsRequest{Username: "alice", Password: "secret123"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "duplicate username",
			request:        models.CredentialsRequest{Username: "alice", Password: "other-secret"},
			expectedStatus: http.StatusConflict,
			expectedError:  "Username already exists",
		},
		{
			name:           "missing password",
			request:        models.CredentialsRequest{Username: "bob"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Username and password are required",
		},
		{
			name:           "short username",
			request:        models.CredentialsRequest{Username: "bo", Password: "secret123"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Username must be at least 3 characters long",
		},
		{
			name:           "short password",
			request:        models.CredentialsRequest{Username: "bob", Password: "12345"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Password must be at least 6 characters long",
		},
		{
			name:           "empty body",
			request:        nil,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Username and password are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/auth/register", tt.request, nil)
			w := httptest.NewRecorder()

			handler.Register(w, req)

			if tt.expectedError != "" {
				testutil.AssertError(t, w, tt.expectedStatus, tt.expectedError)
				return
			}
			testutil.AssertStatus(t, w, tt.expectedStatus)

			resp := decode[models.AuthResponse](t, w)
			assert.Equal(t, "alice", resp.User.Username)
			assert.NotEmpty(t, resp.User.ID)
			assert.Empty(t, resp.User.PasswordHash, "password hash must not be returned")

			session, err := auth.ParseSessionToken(resp.Token, []byte(env.cfg.SessionSecret))
			require.NoError(t, err)
			assert.Equal(t, resp.User.ID, session.UserID)
			assert.Equal(t, "alice", session.Username)
		})
	}

	t.Run("invalid JSON", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Register(w, rawRequest("POST", "/auth/register", "{not json", ""))
		testutil.AssertError(t, w, http.StatusBadRequest, "Invalid JSON")
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAuthHandler(users.NewService(env.store), env.cfg)
	alice, _ := testutil.CreateTestUser(t, env.store, env.cfg, "alice")

	tests := []struct {
		name           string
		request        models.CredentialsRequest
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "valid login",
			request:        models.CredentialsRequest{Username: "alice", Password: "password123"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong password",
			request:        models.CredentialsRequest{Username: "alice", Password: "password124"},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid username or password",
		},
		{
			name:           "unknown user",
			request:        models.CredentialsRequest{Username: "mallory", Password: "password123"},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid username or password",
		},
		{
			name:           "missing fields",
			request:        models.CredentialsRequest{},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Username and password are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/auth/login", tt.request, nil)
			w := httptest.NewRecorder()

			handler.Login(w, req)

			if tt.expectedError != "" {
				testutil.AssertError(t, w, tt.expectedStatus, tt.expectedError)
				return
			}
			testutil.AssertStatus(t, w, tt.expectedStatus)

			resp := decode[models.AuthResponse](t, w)
			assert.Equal(t, alice.ID, resp.User.ID)
			assert.NotEmpty(t, resp.Token)
		})
	}
}

func TestRegister_LowercasesUsername(t *testing.T) {
	env := newTestEnv(t)
	authHandler := NewAuthHandler(env.users, env.cfg)
	boardHandler := NewBoardHandler(env.boards)

	w := httptest.NewRecorder()
	authHandler.Register(w, testutil.MakeRequest("POST", "/auth/register",
		models.CredentialsRequest{Username: "Alice", Password: "secret123"}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
	registered := decode[models.AuthResponse](t, w)
	assert.Equal(t, "alice", registered.User.Username)

	var stored models.User
	require.NoError(t, kvstore.GetJSON(context.Background(), env.store, "user:alice", &stored))
	assert.Equal(t, "alice", stored.Username)

	w = httptest.NewRecorder()
	authHandler.Login(w, testutil.MakeRequest("POST", "/auth/login",
		models.CredentialsRequest{Username: "ALICE", Password: "secret123"}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	login := decode[models.AuthResponse](t, w)
	assert.Equal(t, "alice", login.User.Username)

	// The session acts as "alice", so a lowercase body identity is accepted.
	w = env.serve(boardHandler.CreateBoard, newRequest("POST", "/boards",
		models.CreateBoardRequest{Name: "Sprint 1", CreatedBy: "alice"}, login.Token))
	testutil.AssertStatus(t, w, http.StatusCreated)
	board := decode[models.RetroBoard](t, w)
	assert.Equal(t, "alice", board.CreatedBy)
	assert.Equal(t, []string{"alice"}, board.Participants)
}
