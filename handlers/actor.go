// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/retro-board/apperr"
	"github.com/danielhkuo/retro-board/middleware"
	"github.com/danielhkuo/retro-board/retro"
)

// sessionActor returns the session user. claimed is the optional identity
// field of the request body (userName, authorName, createdBy); when set it
// must name the session user.
func sessionActor(r *http.Request, claimed string) (retro.Actor, error) {
	s, ok := middleware.SessionFrom(r.Context())
	if !ok {
		return retro.Actor{}, apperr.New(apperr.ErrAuth, "Authentication required")
	}
	if claimed != "" && claimed != s.Username {
		return retro.Actor{}, apperr.Forbidden("Request user does not match session")
	}
	return retro.Actor{UserID: s.UserID, Username: s.Username}, nil
}
