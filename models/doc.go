// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

Documents stored in the key-value store as JSON:

  - User: username, bcrypt hash, creation time (stored under user:<name> and userId:<id>)
  - RetroBoard: board metadata, participants, lifecycle status, timer, revision (board:<id>)
  - RetroItem: glad/mad/sad note embedded in its board, with votes and action item
  - Timer: soft countdown attached to a board
  - BoardSummary: derived listing row (participant and item counts)

Timestamps are Unix milliseconds.

# Request Types

  - CredentialsRequest: username, password
  - CreateBoardRequest: name
  - ArchiveRequest: action (archive | unarchive)
  - TimerRequest: action (start | stop), durationMinutes
  - StatusRequest: status
  - CreateItemRequest: content, category
  - EditItemRequest: content
  - RevealRequest: action (reveal | hide)
  - ActionItemRequest: actionItem, responsiblePerson
  - VoteRequest: itemId, action (vote | unvote)

Legacy identity fields (userName, authorName, createdBy) are accepted but the
acting user always comes from the session token.

# Response Types

  - AuthResponse: user (without hash), token
  - VoteResponse: item, userVotesRemaining
  - SuccessResponse: success, message
  - BoardEvent: type, board
  - ErrorResponse: error

# Constants

Status values:

	StatusRegistering    = "registering"
	StatusVoting         = "voting"
	StatusActionPlanning = "action-planning"
	StatusClosed         = "closed"

Categories:

	CategoryGlad = "glad"
	CategoryMad  = "mad"
	CategorySad  = "sad"
*/
package models
