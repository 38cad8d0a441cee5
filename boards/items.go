// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package boards

import (
	"context"
	"fmt"

	"github.com/danielhkuo/retro-board/apperr"
	"github.com/danielhkuo/retro-board/metrics"
	"github.com/danielhkuo/retro-board/models"
	"github.com/danielhkuo/retro-board/retro"
)

// AddItem creates a hidden item on the board.
func (s *Service) AddItem(ctx context.Context, boardID, content, category string, author retro.Actor) (models.RetroItem, error) {
	id, err := s.newItemID()
	if err != nil {
		return models.RetroItem{}, fmt.Errorf("failed to generate item ID: %w", err)
	}

	var item models.RetroItem
	_, err = s.update(ctx, boardID, func(b *models.RetroBoard) error {
		var err error
		item, err = retro.AddItem(b, id, content, category, author, s.nowMillis())
		return err
	})
	return item, err
}

// ListItems returns every item of the board in insertion order.
func (s *Service) ListItems(ctx context.Context, boardID string) ([]models.RetroItem, error) {
	board, err := s.Get(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return board.Items, nil
}

func (s *Service) EditItem(ctx context.Context, boardID, itemID, content, actor string) (models.RetroItem, error) {
	var item models.RetroItem
	_, err := s.update(ctx, boardID, func(b *models.RetroBoard) error {
		var err error
		item, err = retro.EditItem(b, itemID, content, actor)
		return err
	})
	return item, err
}

func (s *Service) DeleteItem(ctx context.Context, boardID, itemID, actor string) error {
	_, err := s.update(ctx, boardID, func(b *models.RetroBoard) error {
		return retro.DeleteItem(b, itemID, actor)
	})
	return err
}

func (s *Service) SetRevealed(ctx context.Context, boardID, itemID, actor string, revealed bool) (models.RetroItem, error) {
	var item models.RetroItem
	_, err := s.update(ctx, boardID, func(b *models.RetroBoard) error {
		var err error
		item, err = retro.SetRevealed(b, itemID, actor, revealed)
		return err
	})
	return item, err
}

func (s *Service) SetActionItem(ctx context.Context, boardID, itemID, actor, actionItem, responsible string) (models.RetroItem, error) {
	var item models.RetroItem
	_, err := s.update(ctx, boardID, func(b *models.RetroBoard) error {
		var err error
		item, err = retro.SetActionItem(b, itemID, actor, actionItem, responsible)
		return err
	})
	return item, err
}

// Vote casts or withdraws user's vote on an item. action is "vote" or "unvote".
func (s *Service) Vote(ctx context.Context, boardID, itemID, user, action string) (models.VoteResponse, error) {
	var apply func(*models.RetroBoard, string, string) (models.RetroItem, int, error)
	switch action {
	case models.ActionVote:
		apply = retro.Vote
	case models.ActionUnvote:
		apply = retro.Unvote
	default:
		return models.VoteResponse{}, apperr.Validation("Invalid action")
	}

	var resp models.VoteResponse
	_, err := s.update(ctx, boardID, func(b *models.RetroBoard) error {
		item, remaining, err := apply(b, itemID, user)
		if err != nil {
			return err
		}
		resp = models.VoteResponse{Item: item, UserVotesRemaining: remaining}
		return nil
	})
	if err != nil {
		return models.VoteResponse{}, err
	}

	metrics.Votes.WithLabelValues(action).Inc()
	return resp, nil
}
