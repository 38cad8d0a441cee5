// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/retro-board/apperr"
	"github.com/danielhkuo/retro-board/auth"
	"github.com/danielhkuo/retro-board/cliparse"
	"github.com/danielhkuo/retro-board/middleware"
	"github.com/danielhkuo/retro-board/models"
	"github.com/danielhkuo/retro-board/users"
)

type AuthHandler struct {
	users *users.Service
	cfg   cliparse.Config
}

func NewAuthHandler(users *users.Service, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{users: users, cfg: cfg}
}

// parseCredentials leaves field checks to the users service so register and
// login report missing fields with the same message.
func parseCredentials(r *http.Request) (models.CredentialsRequest, error) {
	var req models.CredentialsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		return req, apperr.Validation("Invalid JSON")
	}
	return req, nil
}

func (h *AuthHandler) respond(w http.ResponseWriter, r *http.Request, status int, user models.User) {
	token, err := auth.IssueSessionToken(auth.Session{UserID: user.ID, Username: user.Username},
		[]byte(h.cfg.SessionSecret), h.cfg.SessionTTL)
	if err != nil {
		middleware.WriteError(w, r, fmt.Errorf("failed to issue session: %w", err))
		return
	}
	middleware.JSONResponse(w, status, models.AuthResponse{User: user, Token: token})
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := parseCredentials(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusCreated, user)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := parseCredentials(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	user, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("user logged in", "user_id", user.ID)
	h.respond(w, r, http.StatusOK, user)
}
