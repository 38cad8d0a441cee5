// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package retro

import (
	"github.com/danielhkuo/retro-board/apperr"
	"github.com/danielhkuo/retro-board/models"
)

// Actor is the user performing an operation.
type Actor struct {
	UserID   string
	Username string
}

// NewBoard returns a board in the registering phase with the creator as its
// only participant.
func NewBoard(id, name string, creator Actor, now int64) *models.RetroBoard {
	return &models.RetroBoard{
		ID:              id,
		Name:            name,
		CreatedBy:       creator.Username,
		CreatedByUserID: creator.UserID,
		CreatedAt:       now,
		Items:           []models.RetroItem{},
		Participants:    []string{creator.Username},
		Status:          models.StatusRegistering,
	}
}

// Normalize fills fields that older documents may lack.
func Normalize(b *models.RetroBoard) {
	if b.Status == "" {
		b.Status = models.StatusRegistering
	}
	if b.Items == nil {
		b.Items = []models.RetroItem{}
	}
	if b.Participants == nil {
		b.Participants = []string{}
	}
	for i := range b.Items {
		if b.Items[i].Votes == nil {
			b.Items[i].Votes = []string{}
		}
	}
}

// Join adds username to the participants. Reports whether it was added.
func Join(b *models.RetroBoard, username string) bool {
	for _, p := range b.Participants {
		if p == username {
			return false
		}
	}
	b.Participants = append(b.Participants, username)
	return true
}

// Archive marks the board archived. Any user may archive.
func Archive(b *models.RetroBoard, actor string, now int64) {
	b.IsArchived = true
	b.ArchivedAt = &now
	b.ArchivedBy = actor
}

// Unarchive clears the archive stamp.
func Unarchive(b *models.RetroBoard) {
	b.IsArchived = false
	b.ArchivedAt = nil
	b.ArchivedBy = ""
}

// Summarize derives the listing row for a board.
func Summarize(b *models.RetroBoard) models.BoardSummary {
	return models.BoardSummary{
		ID:               b.ID,
		Name:             b.Name,
		CreatedBy:        b.CreatedBy,
		CreatedByUserID:  b.CreatedByUserID,
		CreatedAt:        b.CreatedAt,
		Status:           b.Status,
		ParticipantCount: len(b.Participants),
		ItemCount:        len(b.Items),
		IsArchived:       b.IsArchived,
		ArchivedAt:       b.ArchivedAt,
		ArchivedBy:       b.ArchivedBy,
	}
}

func findItem(b *models.RetroBoard, itemID string) (int, error) {
	for i := range b.Items {
		if b.Items[i].ID == itemID {
			return i, nil
		}
	}
	return -1, apperr.NotFound("Item not found")
}
