// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/retro-board/boards"
	"github.com/danielhkuo/retro-board/middleware"
	"github.com/danielhkuo/retro-board/models"
)

type ItemHandler struct {
	boards *boards.Service
}

func NewItemHandler(boards *boards.Service) *ItemHandler {
	return &ItemHandler{boards: boards}
}

// ListItems handles GET /boards/{id}/items
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.boards.ListItems(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, items)
}

// CreateItem handles POST /boards/{id}/items
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req models.CreateItemRequest
	if err := middleware.DecodeRequest(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	actor, err := sessionActor(r, req.AuthorName)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	item, err := h.boards.AddItem(r.Context(), r.PathValue("id"), req.Content, req.Category, actor)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, item)
}

// EditItem handles PATCH /boards/{id}/items/{itemId}
func (h *ItemHandler) EditItem(w http.ResponseWriter, r *http.Request) {
	var req models.EditItemRequest
	if err := middleware.DecodeRequest(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	actor, err := sessionActor(r, req.AuthorName)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	item, err := h.boards.EditItem(r.Context(), r.PathValue("id"), r.PathValue("itemId"), req.Content, actor.Username)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /boards/{id}/items/{itemId}
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteItemRequest
	if err := middleware.DecodeRequest(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	actor, err := sessionActor(r, req.AuthorName)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := h.boards.DeleteItem(r.Context(), r.PathValue("id"), r.PathValue("itemId"), actor.Username); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: "Item deleted successfully",
	})
}

// RevealItem handles PATCH /boards/{id}/items/{itemId}/reveal
func (h *ItemHandler) RevealItem(w http.ResponseWriter, r *http.Request) {
	var req models.RevealRequest
	if err := middleware.DecodeRequest(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	actor, err := sessionActor(r, req.AuthorName)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	revealed := req.Action == models.ActionReveal
	item, err := h.boards.SetRevealed(r.Context(), r.PathValue("id"), r.PathValue("itemId"), actor.Username, revealed)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, item)
}

// UpdateActionItem handles PATCH /boards/{id}/items/{itemId}/action
func (h *ItemHandler) UpdateActionItem(w http.ResponseWriter, r *http.Request) {
	var req models.ActionItemRequest
	if err := middleware.DecodeRequest(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	actor, err := sessionActor(r, req.UserName)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	item, err := h.boards.SetActionItem(r.Context(), r.PathValue("id"), r.PathValue("itemId"),
		actor.Username, req.ActionItem, req.ResponsiblePerson)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, item)
}
