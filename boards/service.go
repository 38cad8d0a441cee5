// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package boards

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/danielhkuo/retro-board/apperr"
	"github.com/danielhkuo/retro-board/auth"
	"github.com/danielhkuo/retro-board/kvstore"
	"github.com/danielhkuo/retro-board/metrics"
	"github.com/danielhkuo/retro-board/models"
	"github.com/danielhkuo/retro-board/retro"
)

const (
	// MaxWriteAttempts bounds the read-modify-write loop of a single mutation.
	MaxWriteAttempts = 5

	maxIDAttempts = 5
	keyPrefix     = "board:"
)

func newItemID() (string, error) {
	return auth.GenerateID(12)
}

// BoardKey is the store key of a board document.
func BoardKey(id string) string {
	return keyPrefix + id
}

// Publisher receives a board event after every successful write.
type Publisher interface {
	Publish(boardID string, ev models.BoardEvent)
}

// ListFilter narrows List results.
type ListFilter struct {
	IncludeArchived bool
	// UserID keeps only boards created by this user when set.
	UserID string
}

// Service persists boards as whole JSON documents.
type Service struct {
	store      kvstore.Store
	events     Publisher
	now        func() time.Time
	newBoardID func() (string, error)
	newItemID  func() (string, error)
}

// NewService creates a board service. events may be nil.
func NewService(store kvstore.Store, events Publisher) *Service {
	return &Service{
		store:      store,
		events:     events,
		now:        time.Now,
		newBoardID: auth.GenerateBoardID,
		newItemID:  newItemID,
	}
}

func (s *Service) nowMillis() int64 {
	return s.now().UnixMilli()
}

func (s *Service) publish(ev models.BoardEvent, boardID string) {
	if s.events != nil {
		s.events.Publish(boardID, ev)
	}
}

// load reads a board and the exact bytes it was decoded from.
func (s *Service) load(ctx context.Context, id string) (*models.RetroBoard, []byte, error) {
	raw, err := s.store.Get(ctx, BoardKey(id))
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, nil, apperr.NotFound("Board not found")
		}
		return nil, nil, fmt.Errorf("failed to load board %s: %w", id, err)
	}

	var board models.RetroBoard
	if err := json.Unmarshal(raw, &board); err != nil {
		return nil, nil, fmt.Errorf("failed to decode board %s: %w", id, err)
	}
	retro.Normalize(&board)
	return &board, raw, nil
}

// update applies fn to the current board and writes it back with
// compare-and-swap. When another writer got there first, the board is
// re-read and fn applied again, so fn must derive everything from the board
// it is given.
func (s *Service) update(ctx context.Context, id string, fn func(b *models.RetroBoard) error) (*models.RetroBoard, error) {
	for attempt := 1; attempt <= MaxWriteAttempts; attempt++ {
		board, raw, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := fn(board); err != nil {
			return nil, err
		}
		board.Revision++

		next, err := json.Marshal(board)
		if err != nil {
			return nil, fmt.Errorf("failed to encode board %s: %w", id, err)
		}
		swapped, err := s.store.CompareAndSwap(ctx, BoardKey(id), raw, next)
		if err != nil {
			return nil, fmt.Errorf("failed to save board %s: %w", id, err)
		}
		if swapped {
			s.publish(models.BoardEvent{Type: models.EventSnapshot, Board: board}, id)
			return board, nil
		}

		metrics.WriteRetries.Inc()
		slog.Debug("board changed during update, retrying", "board_id", id, "attempt", attempt)
	}

	metrics.WriteConflicts.Inc()
	slog.Warn("board update abandoned", "board_id", id, "attempts", MaxWriteAttempts)
	return nil, apperr.Conflict("Board was modified concurrently, please retry")
}

// Create stores a new board owned by creator.
func (s *Service) Create(ctx context.Context, name string, creator retro.Actor) (*models.RetroBoard, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("Board name is required")
	}

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := s.newBoardID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate board ID: %w", err)
		}

		board := retro.NewBoard(id, name, creator, s.nowMillis())
		raw, err := json.Marshal(board)
		if err != nil {
			return nil, fmt.Errorf("failed to encode board: %w", err)
		}

		created, err := s.store.SetNX(ctx, BoardKey(id), raw)
		if err != nil {
			return nil, fmt.Errorf("failed to save board: %w", err)
		}
		if created {
			metrics.BoardsCreated.Inc()
			slog.Info("board created", "board_id", id, "created_by", creator.Username)
			return board, nil
		}
		slog.Warn("board ID collision", "board_id", id)
	}

	return nil, fmt.Errorf("failed to allocate a board ID after %d attempts", maxIDAttempts)
}

// Get returns a board, filling in fields missing from older documents.
func (s *Service) Get(ctx context.Context, id string) (*models.RetroBoard, error) {
	board, _, err := s.load(ctx, id)
	return board, err
}

// Join adds username to the participants.
func (s *Service) Join(ctx context.Context, id, username string) (*models.RetroBoard, error) {
	return s.update(ctx, id, func(b *models.RetroBoard) error {
		retro.Join(b, username)
		return nil
	})
}

// List returns board summaries, newest first. Documents that are missing or
// cannot be decoded are skipped.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]models.BoardSummary, error) {
	keys, err := s.store.Keys(ctx, keyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}

	summaries := []models.BoardSummary{}
	if len(keys) == 0 {
		return summaries, nil
	}

	values, err := s.store.MGet(ctx, keys...)
	if err != nil {
		return nil, fmt.Errorf("failed to load boards: %w", err)
	}

	for i, raw := range values {
		if raw == nil {
			continue
		}
		var board models.RetroBoard
		if err := json.Unmarshal(raw, &board); err != nil {
			slog.Warn("skipping undecodable board", "key", keys[i], "error", err)
			continue
		}
		retro.Normalize(&board)

		if board.IsArchived && !filter.IncludeArchived {
			continue
		}
		if filter.UserID != "" && board.CreatedByUserID != filter.UserID {
			continue
		}
		summaries = append(summaries, retro.Summarize(&board))
	}

	slices.SortFunc(summaries, func(a, b models.BoardSummary) int {
		if a.CreatedAt != b.CreatedAt {
			if a.CreatedAt > b.CreatedAt {
				return -1
			}
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})
	return summaries, nil
}

// Archive hides the board from default listings. Any user may archive.
func (s *Service) Archive(ctx context.Context, id, actor string) (*models.RetroBoard, error) {
	board, err := s.update(ctx, id, func(b *models.RetroBoard) error {
		retro.Archive(b, actor, s.nowMillis())
		return nil
	})
	if err == nil {
		slog.Info("board archived", "board_id", id, "archived_by", actor)
	}
	return board, err
}

// Unarchive restores an archived board.
func (s *Service) Unarchive(ctx context.Context, id, actor string) (*models.RetroBoard, error) {
	board, err := s.update(ctx, id, func(b *models.RetroBoard) error {
		retro.Unarchive(b)
		return nil
	})
	if err == nil {
		slog.Info("board unarchived", "board_id", id, "unarchived_by", actor)
	}
	return board, err
}

// Delete removes the board permanently. Any user may delete.
func (s *Service) Delete(ctx context.Context, id, actor string) error {
	if _, _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.store.Del(ctx, BoardKey(id)); err != nil {
		return fmt.Errorf("failed to delete board %s: %w", id, err)
	}

	metrics.BoardsDeleted.Inc()
	slog.Info("board deleted", "board_id", id, "deleted_by", actor)
	s.publish(models.BoardEvent{Type: models.EventDeleted}, id)
	return nil
}

// SetStatus moves the board to a new lifecycle phase.
func (s *Service) SetStatus(ctx context.Context, id, status, actor string) (*models.RetroBoard, error) {
	to, err := retro.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	var from models.BoardStatus
	board, err := s.update(ctx, id, func(b *models.RetroBoard) error {
		from = b.Status
		return retro.Transition(b, to, actor)
	})
	if err != nil {
		return nil, err
	}

	if from != to {
		metrics.StatusTransitions.WithLabelValues(string(from), string(to)).Inc()
		slog.Info("board status changed", "board_id", id, "from", from, "to", to)
	}
	return board, nil
}

// StartTimer starts a countdown. minutes <= 0 uses the default duration.
func (s *Service) StartTimer(ctx context.Context, id string, minutes int) (*models.RetroBoard, error) {
	return s.update(ctx, id, func(b *models.RetroBoard) error {
		retro.StartTimer(b, minutes, s.nowMillis())
		return nil
	})
}

// StopTimer stops the countdown if one is running.
func (s *Service) StopTimer(ctx context.Context, id string) (*models.RetroBoard, error) {
	return s.update(ctx, id, func(b *models.RetroBoard) error {
		retro.StopTimer(b)
		return nil
	})
}
