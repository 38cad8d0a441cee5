// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides ID generation, password hashing, and session tokens.

# Passwords

Passwords are hashed with bcrypt at cost 10:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, candidate) // ErrPasswordMismatch on mismatch

# Session Tokens

Register and login hand out an HS256 JWT. The subject is the user ID and the
"name" claim carries the username:

	token, err := auth.IssueSessionToken(auth.Session{UserID: id, Username: name}, secret, 24*time.Hour)
	session, err := auth.ParseSessionToken(token, secret)

ParseSessionToken returns ErrTokenExpired for expired tokens and
ErrInvalidToken for everything else (bad signature, wrong algorithm, missing
claims).

# IDs

Short shareable board IDs (8 base62 characters):

	id, err := auth.GenerateBoardID()

Board IDs are collision-tolerant, not collision-free; the board store claims
them with SetNX and retries on collision.

User and author IDs are UUIDs:

	id := auth.NewUserID()

Random hex IDs for items:

	id, err := auth.GenerateID(8) // 16 hex characters

# IP Hashing

For privacy-preserving request logs and rate-limit keys:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
