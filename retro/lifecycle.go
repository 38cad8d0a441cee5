// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package retro

import (
	"fmt"

	"github.com/danielhkuo/retro-board/apperr"
	"github.com/danielhkuo/retro-board/models"
)

// transitions lists the allowed next statuses. Every forward edge has a
// matching backward edge.
var transitions = map[models.BoardStatus][]models.BoardStatus{
	models.StatusRegistering:    {models.StatusVoting},
	models.StatusVoting:         {models.StatusRegistering, models.StatusActionPlanning},
	models.StatusActionPlanning: {models.StatusVoting, models.StatusClosed},
	models.StatusClosed:         {models.StatusActionPlanning},
}

// ParseStatus validates a status string.
func ParseStatus(s string) (models.BoardStatus, error) {
	status := models.BoardStatus(s)
	if _, ok := transitions[status]; !ok {
		return "", apperr.Validation("Invalid status")
	}
	return status, nil
}

// CanTransition reports whether from -> to is a defined edge.
func CanTransition(from, to models.BoardStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves the board to status to on behalf of actor.
//
// Only the creator may change status. Setting the current status is a no-op.
// Entering voting from registering reveals every item; going back never
// hides them again.
func Transition(b *models.RetroBoard, to models.BoardStatus, actor string) error {
	if _, err := ParseStatus(string(to)); err != nil {
		return err
	}
	if actor != b.CreatedBy {
		return apperr.Forbidden("Only board creator can change board status")
	}
	if b.Status == to {
		return nil
	}
	if !CanTransition(b.Status, to) {
		return apperr.Phase(fmt.Sprintf("Cannot change board status from %s to %s", b.Status, to))
	}

	if b.Status == models.StatusRegistering && to == models.StatusVoting {
		for i := range b.Items {
			b.Items[i].IsRevealed = true
			if b.Items[i].Votes == nil {
				b.Items[i].Votes = []string{}
			}
		}
	}

	b.Status = to
	return nil
}
