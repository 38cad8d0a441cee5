// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/retro-board/boards"
	"github.com/danielhkuo/retro-board/middleware"
	"github.com/danielhkuo/retro-board/models"
)

type VotingHandler struct {
	boards *boards.Service
}

func NewVotingHandler(boards *boards.Service) *VotingHandler {
	return &VotingHandler{boards: boards}
}

// Vote handles POST /boards/{id}/vote
//
// The acting user is always the session user, so nobody can spend another
// participant's votes.
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
	if err := middleware.DecodeRequest(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	actor, err := sessionActor(r, req.UserName)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	boardID := r.PathValue("id")
	resp, err := h.boards.Vote(r.Context(), boardID, req.ItemID, actor.Username, req.Action)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("vote recorded",
		"board_id", boardID,
		"item_id", req.ItemID,
		"action", req.Action,
		"votes_remaining", resp.UserVotesRemaining,
	)

	middleware.JSONResponse(w, http.StatusOK, resp)
}
