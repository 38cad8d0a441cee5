// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Retro Board API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, cfg)

# Endpoints

Health and monitoring:

	GET /health
	GET /metrics

Accounts (public, rate limited per client):

	POST /auth/register - Create account, returns user and session token
	POST /auth/login    - Authenticate, returns user and session token

Boards (require "Authorization: Bearer <token>"):

	POST   /boards              - Create board
	GET    /boards/list         - Summaries (?includeArchived=true&userId=...)
	GET    /boards/{id}         - Fetch board
	PATCH  /boards/{id}         - Join board
	DELETE /boards/{id}/delete  - Delete board
	PATCH  /boards/{id}/archive - Archive or unarchive
	POST   /boards/{id}/timer   - Start or stop the timer
	PATCH  /boards/{id}/status  - Change lifecycle phase (creator only)

Items:

	GET    /boards/{id}/items                 - List items
	POST   /boards/{id}/items                 - Add item (registering only)
	PATCH  /boards/{id}/items/{itemId}        - Edit item (author only)
	DELETE /boards/{id}/items/{itemId}        - Delete item (author only)
	PATCH  /boards/{id}/items/{itemId}/reveal - Reveal or hide (author only)
	PATCH  /boards/{id}/items/{itemId}/action - Set action item (creator, action-planning)

Voting and live updates:

	POST /boards/{id}/vote   - Vote or unvote an item
	GET  /boards/{id}/events - WebSocket stream of board snapshots

# Handler Initialization

The router builds the services over the store and injects them:

	boardService := boards.NewService(store, broker)
	boardHandler := handlers.NewBoardHandler(boardService)

Every route is wrapped with request logging and metrics.
*/
package router
