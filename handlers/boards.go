// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/retro-board/boards"
	"github.com/danielhkuo/retro-board/middleware"
	"github.com/danielhkuo/retro-board/models"
)

type BoardHandler struct {
	boards *boards.Service
}

func NewBoardHandler(boards *boards.Service) *BoardHandler {
	return &BoardHandler{boards: boards}
}

// CreateBoard handles POST /boards
func (h *BoardHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBoardRequest
	if err := middleware.DecodeRequest(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	actor, err := sessionActor(r, req.CreatedBy)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	board, err := h.boards.Create(r.Context(), req.Name, actor)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, board)
}

// ListBoards handles GET /boards/list?includeArchived=true&userId=...
func (h *BoardHandler) ListBoards(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := boards.ListFilter{
		IncludeArchived: query.Get("includeArchived") == "true",
		UserID:          query.Get("userId"),
	}

	summaries, err := h.boards.List(r.Context(), filter)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, summaries)
}

// GetBoard handles GET /boards/{id}
func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.boards.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, board)
}

// JoinBoard handles PATCH /boards/{id}
func (h *BoardHandler) JoinBoard(w http.ResponseWriter, r *http.Request) {
	var req models.JoinBoardRequest
	if err := middleware.DecodeRequest(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	actor, err := sessionActor(r, req.UserName)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	board, err := h.boards.Join(r.Context(), r.PathValue("id"), actor.Username)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, board)
}

// DeleteBoard handles DELETE /boards/{id}/delete
func (h *BoardHandler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteBoardRequest
	if err := middleware.DecodeRequest(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	actor, err := sessionActor(r, req.UserName)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := h.boards.Delete(r.Context(), r.PathValue("id"), actor.Username); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: "Board deleted successfully",
	})
}

// ArchiveBoard handles PATCH /boards/{id}/archive
func (h *BoardHandler) ArchiveBoard(w http.ResponseWriter, r *http.Request) {
	var req models.ArchiveRequest
	if err := middleware.DecodeRequest(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	actor, err := sessionActor(r, req.UserName)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	id := r.PathValue("id")
	var board *models.RetroBoard
	if req.Action == models.ActionArchive {
		board, err = h.boards.Archive(r.Context(), id, actor.Username)
	} else {
		board, err = h.boards.Unarchive(r.Context(), id, actor.Username)
	}
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, board)
}

// UpdateTimer handles POST /boards/{id}/timer
func (h *BoardHandler) UpdateTimer(w http.ResponseWriter, r *http.Request) {
	var req models.TimerRequest
	if err := middleware.DecodeRequest(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	id := r.PathValue("id")
	var board *models.RetroBoard
	var err error
	if req.Action == models.ActionStart {
		board, err = h.boards.StartTimer(r.Context(), id, req.DurationMinutes)
	} else {
		board, err = h.boards.StopTimer(r.Context(), id)
	}
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, board)
}

// UpdateStatus handles PATCH /boards/{id}/status
func (h *BoardHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.StatusRequest
	if err := middleware.DecodeRequest(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	actor, err := sessionActor(r, req.UserName)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	board, err := h.boards.SetStatus(r.Context(), r.PathValue("id"), string(req.Status), actor.Username)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, board)
}
