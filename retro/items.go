// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package retro

import (
	"strings"

	"github.com/danielhkuo/retro-board/apperr"
	"github.com/danielhkuo/retro-board/models"
)

// ValidCategory reports whether c is glad, mad or sad.
func ValidCategory(c string) bool {
	switch c {
	case models.CategoryGlad, models.CategoryMad, models.CategorySad:
		return true
	}
	return false
}

// AddItem appends a new hidden item. Items can only be added while the
// board is registering.
func AddItem(b *models.RetroBoard, id, content, category string, author Actor, now int64) (models.RetroItem, error) {
	if b.Status != models.StatusRegistering {
		return models.RetroItem{}, apperr.Phase("Items can only be added while the board is registering")
	}
	if strings.TrimSpace(content) == "" {
		return models.RetroItem{}, apperr.Validation("Content is required")
	}
	if !ValidCategory(category) {
		return models.RetroItem{}, apperr.Validation("Category must be one of: glad, mad, sad")
	}

	item := models.RetroItem{
		ID:         id,
		Content:    content,
		Category:   category,
		AuthorID:   author.UserID,
		AuthorName: author.Username,
		IsRevealed: false,
		CreatedAt:  now,
		Votes:      []string{},
	}
	b.Items = append(b.Items, item)
	return item, nil
}

// authoredItem finds the item and checks that actor wrote it.
func authoredItem(b *models.RetroBoard, itemID, actor string) (int, error) {
	i, err := findItem(b, itemID)
	if err != nil {
		return -1, err
	}
	if b.Items[i].AuthorName != actor {
		return -1, apperr.Forbidden("Forbidden")
	}
	return i, nil
}

// EditItem replaces the content of an item. Author only, any phase.
func EditItem(b *models.RetroBoard, itemID, content, actor string) (models.RetroItem, error) {
	if strings.TrimSpace(content) == "" {
		return models.RetroItem{}, apperr.Validation("Content is required")
	}
	i, err := authoredItem(b, itemID, actor)
	if err != nil {
		return models.RetroItem{}, err
	}
	b.Items[i].Content = content
	return b.Items[i], nil
}

// DeleteItem removes an item. Author only.
func DeleteItem(b *models.RetroBoard, itemID, actor string) error {
	i, err := authoredItem(b, itemID, actor)
	if err != nil {
		return err
	}
	b.Items = append(b.Items[:i], b.Items[i+1:]...)
	return nil
}

// SetRevealed shows or hides an item. Author only.
func SetRevealed(b *models.RetroBoard, itemID, actor string, revealed bool) (models.RetroItem, error) {
	i, err := authoredItem(b, itemID, actor)
	if err != nil {
		return models.RetroItem{}, err
	}
	b.Items[i].IsRevealed = revealed
	return b.Items[i], nil
}

// SetActionItem records the remediation for an item. Only the board creator,
// only during action planning. Blank values clear the fields.
func SetActionItem(b *models.RetroBoard, itemID, actor, actionItem, responsible string) (models.RetroItem, error) {
	if b.Status != models.StatusActionPlanning {
		return models.RetroItem{}, apperr.Phase("Action items can only be updated in action planning state")
	}
	if actor != b.CreatedBy {
		return models.RetroItem{}, apperr.Forbidden("Only board creator can update action items")
	}
	i, err := findItem(b, itemID)
	if err != nil {
		return models.RetroItem{}, err
	}
	b.Items[i].ActionItem = strings.TrimSpace(actionItem)
	b.Items[i].ResponsiblePerson = strings.TrimSpace(responsible)
	return b.Items[i], nil
}
