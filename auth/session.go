// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Session identifies the user behind a request.
type Session struct {
	UserID   string
	Username string
}

// SessionClaims are the JWT claims of a session token. Subject holds the user ID.
type SessionClaims struct {
	jwt.RegisteredClaims
	Username string `json:"name"`
}

// IssueSessionToken signs an HS256 token valid for ttl.
func IssueSessionToken(s Session, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username: s.Username,
	})

	return token.SignedString(secret)
}

// ParseSessionToken validates a token and returns its session.
func ParseSessionToken(tokenString string, secret []byte) (Session, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, ErrTokenExpired
		}
		return Session{}, ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" || claims.Username == "" {
		return Session{}, ErrInvalidToken
	}

	return Session{UserID: claims.Subject, Username: claims.Username}, nil
}
