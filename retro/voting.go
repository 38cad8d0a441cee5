// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package retro

import (
	"slices"

	"github.com/danielhkuo/retro-board/apperr"
	"github.com/danielhkuo/retro-board/models"
)

// VoteBudget is how many votes one user may spread over all items of a board.
const VoteBudget = 5

// VotesUsed counts user's votes across every item of the board.
func VotesUsed(b *models.RetroBoard, user string) int {
	n := 0
	for _, item := range b.Items {
		for _, v := range item.Votes {
			if v == user {
				n++
			}
		}
	}
	return n
}

// VotesRemaining is VoteBudget minus the votes user has cast.
func VotesRemaining(b *models.RetroBoard, user string) int {
	return VoteBudget - VotesUsed(b, user)
}

func votableItem(b *models.RetroBoard, itemID string) (int, error) {
	if b.Status != models.StatusVoting {
		return -1, apperr.Phase("Voting is not allowed in current board state")
	}
	i, err := findItem(b, itemID)
	if err != nil {
		return -1, err
	}
	if b.Items[i].Votes == nil {
		b.Items[i].Votes = []string{}
	}
	return i, nil
}

// Vote adds user's vote to an item. Voting twice for the same item changes
// nothing. Returns the item and the votes user has left.
func Vote(b *models.RetroBoard, itemID, user string) (models.RetroItem, int, error) {
	i, err := votableItem(b, itemID)
	if err != nil {
		return models.RetroItem{}, 0, err
	}

	if !slices.Contains(b.Items[i].Votes, user) {
		if VotesUsed(b, user) >= VoteBudget {
			return models.RetroItem{}, 0, apperr.New(apperr.ErrQuotaExceeded, "You have used all your votes")
		}
		b.Items[i].Votes = append(b.Items[i].Votes, user)
	}

	return b.Items[i], VotesRemaining(b, user), nil
}

// Unvote removes one occurrence of user's vote from an item, if any.
func Unvote(b *models.RetroBoard, itemID, user string) (models.RetroItem, int, error) {
	i, err := votableItem(b, itemID)
	if err != nil {
		return models.RetroItem{}, 0, err
	}

	if idx := slices.Index(b.Items[i].Votes, user); idx >= 0 {
		b.Items[i].Votes = slices.Delete(b.Items[i].Votes, idx, idx+1)
	}

	return b.Items[i], VotesRemaining(b, user), nil
}
