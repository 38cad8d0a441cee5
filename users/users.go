// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/retro-board/apperr"
	"github.com/danielhkuo/retro-board/auth"
	"github.com/danielhkuo/retro-board/kvstore"
	"github.com/danielhkuo/retro-board/models"
)

const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

// invalidCredentials is returned for both unknown users and wrong passwords
// so login cannot be used to discover usernames.
const invalidCredentials = "Invalid username or password"

// NameKey is the store key of the user record addressed by username.
func NameKey(username string) string {
	return "user:" + strings.ToLower(username)
}

// IDKey is the store key of the user record addressed by ID.
func IDKey(id string) string {
	return "userId:" + id
}

// Service registers and authenticates users.
type Service struct {
	store kvstore.Store
	now   func() time.Time
}

func NewService(store kvstore.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Register creates a new account. Usernames are stored lowercased, so they
// are unique case-insensitively and every session carries the lowercase form.
func (s *Service) Register(ctx context.Context, username, password string) (models.User, error) {
	if username == "" || password == "" {
		return models.User{}, apperr.Validation("Username and password are required")
	}
	if len(username) < MinUsernameLength {
		return models.User{}, apperr.Validation("Username must be at least 3 characters long")
	}
	if len(password) < MinPasswordLength {
		return models.User{}, apperr.Validation("Password must be at least 6 characters long")
	}
	username = strings.ToLower(username)

	// Cheap pre-check before paying for bcrypt. SetNX below is what decides.
	if _, err := s.store.Get(ctx, NameKey(username)); err == nil {
		return models.User{}, apperr.Conflict("Username already exists")
	} else if !errors.Is(err, kvstore.ErrNotFound) {
		return models.User{}, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           auth.NewUserID(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now().UnixMilli(),
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to encode user: %w", err)
	}

	created, err := s.store.SetNX(ctx, NameKey(username), raw)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to store user: %w", err)
	}
	if !created {
		return models.User{}, apperr.Conflict("Username already exists")
	}
	if err := kvstore.SetJSON(ctx, s.store, IDKey(user.ID), user); err != nil {
		// Release the name so the account can be registered again.
		if delErr := s.store.Del(ctx, NameKey(username)); delErr != nil {
			slog.Error("failed to release username", "username", username, "error", delErr)
		}
		return models.User{}, fmt.Errorf("failed to store user index: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user.Public(), nil
}

// Login checks credentials and returns the user without its hash.
func (s *Service) Login(ctx context.Context, username, password string) (models.User, error) {
	if username == "" || password == "" {
		return models.User{}, apperr.Validation("Username and password are required")
	}

	var user models.User
	if err := kvstore.GetJSON(ctx, s.store, NameKey(username), &user); err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return models.User{}, apperr.New(apperr.ErrAuth, invalidCredentials)
		}
		return models.User{}, fmt.Errorf("failed to load user: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return models.User{}, apperr.New(apperr.ErrAuth, invalidCredentials)
		}
		return models.User{}, fmt.Errorf("failed to verify password: %w", err)
	}

	return user.Public(), nil
}

// GetByID loads a user by ID.
func (s *Service) GetByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	if err := kvstore.GetJSON(ctx, s.store, IDKey(id), &user); err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return models.User{}, apperr.NotFound("User not found")
		}
		return models.User{}, fmt.Errorf("failed to load user: %w", err)
	}
	return user.Public(), nil
}

// ResolveSession checks that the account a session token names still exists
// and returns the session with the stored username.
func (s *Service) ResolveSession(ctx context.Context, session auth.Session) (auth.Session, error) {
	user, err := s.GetByID(ctx, session.UserID)
	if err != nil {
		return auth.Session{}, err
	}
	return auth.Session{UserID: user.ID, Username: user.Username}, nil
}
