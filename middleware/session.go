// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/retro-board/apperr"
	"github.com/danielhkuo/retro-board/auth"
)

type sessionKey struct{}

// WithSession returns a context carrying s.
func WithSession(ctx context.Context, s auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session stored by RequireSession.
func SessionFrom(ctx context.Context) (auth.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(auth.Session)
	return s, ok
}

// sessionToken reads the bearer token. Browsers cannot set headers on a
// WebSocket handshake, so upgrade requests may pass it as ?token= instead.
func sessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if websocket.IsWebSocketUpgrade(r) {
		return r.URL.Query().Get("token")
	}
	return ""
}

// SessionResolver maps the claims of a verified token to the current account.
// It returns an apperr.ErrNotFound error when the account no longer exists.
type SessionResolver interface {
	ResolveSession(ctx context.Context, s auth.Session) (auth.Session, error)
}

// RequireSession rejects requests without a valid session token and stores
// the resolved session in the request context. The username comes from the
// resolver, never from the token alone.
func RequireSession(secret []byte, resolver SessionResolver, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)
		if token == "" {
			ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		session, err := auth.ParseSessionToken(token, secret)
		if err != nil {
			msg := "Invalid session"
			if errors.Is(err, auth.ErrTokenExpired) {
				msg = "Session expired"
			}
			ErrorResponse(w, http.StatusUnauthorized, msg)
			return
		}

		session, err = resolver.ResolveSession(r.Context(), session)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				ErrorResponse(w, http.StatusUnauthorized, "Invalid session")
				return
			}
			WriteError(w, r, err)
			return
		}

		next(w, r.WithContext(WithSession(r.Context(), session)))
	}
}
