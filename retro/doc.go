// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package retro holds the rules of a retrospective board.

Every function mutates a *models.RetroBoard in place and returns an
*apperr.Error when a rule is broken. Nothing here touches storage; the
boards package loads a document, applies one of these functions and writes
it back.

# Lifecycle

A board moves through four phases:

	registering <-> voting <-> action-planning <-> closed

Only the creator may move it, and only along an edge. Entering voting from
registering reveals every item.

# Voting

Each user has VoteBudget votes per board, at most one per item. Votes are
only accepted while the board is in the voting phase.
*/
package retro
