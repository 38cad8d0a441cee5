// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the retro board API.

# Handler Types

Each handler is a struct holding the services it calls:

  - AuthHandler: account registration and login
  - BoardHandler: board lifecycle (create, join, archive, delete, status, timer)
  - ItemHandler: retro items (create, edit, delete, reveal, action items)
  - VotingHandler: vote and unvote
  - EventsHandler: WebSocket stream of board snapshots

Handlers are created via constructor functions:

	boardHandler := handlers.NewBoardHandler(boardService)

# Sessions

Everything except /auth runs behind middleware.RequireSession. The acting
user always comes from the session. Bodies may still carry the identity
fields older clients send (userName, authorName, createdBy); when present
they must name the session user, otherwise the request fails with 403.

# Board Lifecycle

Boards move forward through four phases:

	registering → voting → action-planning → closed

Only the creator changes the phase:

	PATCH /boards/{id}/status → UpdateStatus

Items are added while registering, votes are cast while voting, and action
items are assigned while action-planning.

# Errors

Every failure is written by middleware.WriteError as {"error": "..."} with
the status code of its apperr kind.
*/
package handlers
