// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/retro-board/boards"
	"github.com/danielhkuo/retro-board/cliparse"
	"github.com/danielhkuo/retro-board/events"
	"github.com/danielhkuo/retro-board/handlers"
	"github.com/danielhkuo/retro-board/kvstore"
	"github.com/danielhkuo/retro-board/metrics"
	"github.com/danielhkuo/retro-board/middleware"
	"github.com/danielhkuo/retro-board/users"
)

func NewRouter(store kvstore.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Services
	broker := events.NewBroker()
	boardService := boards.NewService(store, broker)
	userService := users.NewService(store)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, cfg)
	boardHandler := handlers.NewBoardHandler(boardService)
	itemHandler := handlers.NewItemHandler(boardService)
	votingHandler := handlers.NewVotingHandler(boardService)
	eventsHandler := handlers.NewEventsHandler(boardService, broker)

	secret := []byte(cfg.SessionSecret)
	limiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst, cfg.IPHashSalt, cfg.TrustProxy)

	public := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithMetrics(h))
	}
	session := func(h http.HandlerFunc) http.HandlerFunc {
		return public(middleware.RequireSession(secret, userService, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	// Accounts (public, rate limited)
	mux.HandleFunc("POST /auth/register", public(limiter.Limit(authHandler.Register)))
	mux.HandleFunc("POST /auth/login", public(limiter.Limit(authHandler.Login)))

	// Boards
	mux.HandleFunc("POST /boards", session(boardHandler.CreateBoard))
	mux.HandleFunc("GET /boards/list", session(boardHandler.ListBoards))
	mux.HandleFunc("GET /boards/{id}", session(boardHandler.GetBoard))
	mux.HandleFunc("PATCH /boards/{id}", session(boardHandler.JoinBoard))
	mux.HandleFunc("DELETE /boards/{id}/delete", session(boardHandler.DeleteBoard))
	mux.HandleFunc("PATCH /boards/{id}/archive", session(boardHandler.ArchiveBoard))
	mux.HandleFunc("POST /boards/{id}/timer", session(boardHandler.UpdateTimer))
	mux.HandleFunc("PATCH /boards/{id}/status", session(boardHandler.UpdateStatus))

	// Items
	mux.HandleFunc("GET /boards/{id}/items", session(itemHandler.ListItems))
	mux.HandleFunc("POST /boards/{id}/items", session(itemHandler.CreateItem))
	mux.HandleFunc("PATCH /boards/{id}/items/{itemId}", session(itemHandler.EditItem))
	mux.HandleFunc("DELETE /boards/{id}/items/{itemId}", session(itemHandler.DeleteItem))
	mux.HandleFunc("PATCH /boards/{id}/items/{itemId}/reveal", session(itemHandler.RevealItem))
	mux.HandleFunc("PATCH /boards/{id}/items/{itemId}/action", session(itemHandler.UpdateActionItem))

	// Voting
	mux.HandleFunc("POST /boards/{id}/vote", session(votingHandler.Vote))

	// Live updates
	mux.HandleFunc("GET /boards/{id}/events", session(eventsHandler.Stream))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("retro-board API v1"))
	})

	return mux
}
