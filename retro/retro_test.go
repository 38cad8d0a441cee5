// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package retro

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/retro-board/apperr"
	"github.com/danielhkuo/retro-board/models"
)

var (
	alice = Actor{UserID: "u-alice", Username: "alice"}
	bob   = Actor{UserID: "u-bob", Username: "bob"}
)

func newTestBoard(t *testing.T) *models.RetroBoard {
	t.Helper()
	return NewBoard("b1", "Sprint 1", alice, 1000)
}

func addTestItem(t *testing.T, b *models.RetroBoard, id string, author Actor) {
	t.Helper()
	_, err := AddItem(b, id, "content "+id, models.CategoryGlad, author, 2000)
	require.NoError(t, err)
}

func moveTo(t *testing.T, b *models.RetroBoard, path ...models.BoardStatus) {
	t.Helper()
	for _, s := range path {
		require.NoError(t, Transition(b, s, b.CreatedBy))
	}
}

func TestNewBoard(t *testing.T) {
	b := newTestBoard(t)
	assert.Equal(t, "b1", b.ID)
	assert.Equal(t, "alice", b.CreatedBy)
	assert.Equal(t, "u-alice", b.CreatedByUserID)
	assert.Equal(t, models.StatusRegistering, b.Status)
	assert.Equal(t, []string{"alice"}, b.Participants)
	assert.Empty(t, b.Items)
	assert.NotNil(t, b.Items)
	assert.False(t, b.IsArchived)
	assert.Nil(t, b.Timer)
}

func TestNormalize(t *testing.T) {
	b := &models.RetroBoard{
		ID:    "old",
		Items: []models.RetroItem{{ID: "i1"}},
	}
	Normalize(b)
	assert.Equal(t, models.StatusRegistering, b.Status)
	assert.NotNil(t, b.Participants)
	assert.Equal(t, []string{}, b.Items[0].Votes)

	closed := &models.RetroBoard{Status: models.StatusClosed}
	Normalize(closed)
	assert.Equal(t, models.StatusClosed, closed.Status)
}

func TestJoin(t *testing.T) {
	b := newTestBoard(t)
	assert.True(t, Join(b, "bob"))
	assert.False(t, Join(b, "bob"))
	assert.False(t, Join(b, "alice"))
	assert.Equal(t, []string{"alice", "bob"}, b.Participants)
}

func TestArchive(t *testing.T) {
	b := newTestBoard(t)
	Archive(b, "bob", 5000)
	assert.True(t, b.IsArchived)
	require.NotNil(t, b.ArchivedAt)
	assert.Equal(t, int64(5000), *b.ArchivedAt)
	assert.Equal(t, "bob", b.ArchivedBy)

	Unarchive(b)
	assert.False(t, b.IsArchived)
	assert.Nil(t, b.ArchivedAt)
	assert.Empty(t, b.ArchivedBy)
}

func TestSummarize(t *testing.T) {
	b := newTestBoard(t)
	Join(b, "bob")
	addTestItem(t, b, "i1", alice)

	s := Summarize(b)
	assert.Equal(t, "b1", s.ID)
	assert.Equal(t, "Sprint 1", s.Name)
	assert.Equal(t, 2, s.ParticipantCount)
	assert.Equal(t, 1, s.ItemCount)
	assert.Equal(t, models.StatusRegistering, s.Status)
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"registering", "voting", "action-planning", "closed"} {
		got, err := ParseStatus(s)
		require.NoError(t, err, s)
		assert.Equal(t, models.BoardStatus(s), got)
	}
	for _, s := range []string{"", "archived", "VOTING", "action_planning"} {
		_, err := ParseStatus(s)
		assert.True(t, errors.Is(err, apperr.ErrValidation), "status %q", s)
	}
}

func TestCanTransition(t *testing.T) {
	all := []models.BoardStatus{
		models.StatusRegistering, models.StatusVoting,
		models.StatusActionPlanning, models.StatusClosed,
	}
	allowed := map[string]bool{
		"registering->voting":     true,
		"voting->registering":     true,
		"voting->action-planning": true,
		"action-planning->voting": true,
		"action-planning->closed": true,
		"closed->action-planning": true,
	}
	for _, from := range all {
		for _, to := range all {
			key := fmt.Sprintf("%s->%s", from, to)
			assert.Equal(t, allowed[key], CanTransition(from, to), key)
		}
	}
}

func TestTransition(t *testing.T) {
	t.Run("creator walks the full cycle", func(t *testing.T) {
		b := newTestBoard(t)
		moveTo(t, b, models.StatusVoting, models.StatusActionPlanning, models.StatusClosed)
		assert.Equal(t, models.StatusClosed, b.Status)
		moveTo(t, b, models.StatusActionPlanning, models.StatusVoting, models.StatusRegistering)
		assert.Equal(t, models.StatusRegistering, b.Status)
	})

	t.Run("non-creator is forbidden", func(t *testing.T) {
		b := newTestBoard(t)
		err := Transition(b, models.StatusVoting, "bob")
		assert.True(t, errors.Is(err, apperr.ErrForbidden))
		assert.Equal(t, models.StatusRegistering, b.Status)
	})

	t.Run("skipping a phase is rejected", func(t *testing.T) {
		b := newTestBoard(t)
		err := Transition(b, models.StatusClosed, "alice")
		assert.True(t, errors.Is(err, apperr.ErrPhase))
		assert.Equal(t, models.StatusRegistering, b.Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		b := newTestBoard(t)
		err := Transition(b, "done", "alice")
		assert.True(t, errors.Is(err, apperr.ErrValidation))
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		b := newTestBoard(t)
		require.NoError(t, Transition(b, models.StatusRegistering, "alice"))
		assert.Equal(t, models.StatusRegistering, b.Status)
	})

	t.Run("entering voting reveals items", func(t *testing.T) {
		b := newTestBoard(t)
		addTestItem(t, b, "i1", alice)
		addTestItem(t, b, "i2", bob)
		b.Items[1].Votes = nil

		moveTo(t, b, models.StatusVoting)
		for _, item := range b.Items {
			assert.True(t, item.IsRevealed, item.ID)
			assert.NotNil(t, item.Votes, item.ID)
		}

		moveTo(t, b, models.StatusRegistering)
		for _, item := range b.Items {
			assert.True(t, item.IsRevealed, "going back must not hide %s", item.ID)
		}
	})
}

func TestAddItem(t *testing.T) {
	b := newTestBoard(t)

	item, err := AddItem(b, "i1", "Good teamwork", models.CategoryGlad, bob, 42)
	require.NoError(t, err)
	assert.Equal(t, "i1", item.ID)
	assert.Equal(t, "bob", item.AuthorName)
	assert.Equal(t, "u-bob", item.AuthorID)
	assert.False(t, item.IsRevealed)
	assert.Equal(t, []string{}, item.Votes)
	assert.Equal(t, int64(42), item.CreatedAt)
	assert.Len(t, b.Items, 1)

	_, err = AddItem(b, "i2", "   ", models.CategoryMad, bob, 42)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = AddItem(b, "i3", "x", "happy", bob, 42)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	moveTo(t, b, models.StatusVoting)
	_, err = AddItem(b, "i4", "late", models.CategorySad, bob, 42)
	assert.True(t, errors.Is(err, apperr.ErrPhase))
	assert.Len(t, b.Items, 1)
}

func TestEditItem(t *testing.T) {
	b := newTestBoard(t)
	addTestItem(t, b, "i1", bob)

	item, err := EditItem(b, "i1", "updated", "bob")
	require.NoError(t, err)
	assert.Equal(t, "updated", item.Content)

	_, err = EditItem(b, "i1", "hijack", "alice")
	assert.True(t, errors.Is(err, apperr.ErrForbidden))
	assert.Equal(t, "updated", b.Items[0].Content)

	_, err = EditItem(b, "nope", "x", "bob")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = EditItem(b, "i1", "", "bob")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestDeleteItem(t *testing.T) {
	b := newTestBoard(t)
	addTestItem(t, b, "i1", bob)
	addTestItem(t, b, "i2", alice)

	err := DeleteItem(b, "i1", "alice")
	assert.True(t, errors.Is(err, apperr.ErrForbidden))
	assert.Len(t, b.Items, 2)

	require.NoError(t, DeleteItem(b, "i1", "bob"))
	require.Len(t, b.Items, 1)
	assert.Equal(t, "i2", b.Items[0].ID)

	err = DeleteItem(b, "i1", "bob")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestSetRevealed(t *testing.T) {
	b := newTestBoard(t)
	addTestItem(t, b, "i1", bob)

	item, err := SetRevealed(b, "i1", "bob", true)
	require.NoError(t, err)
	assert.True(t, item.IsRevealed)

	item, err = SetRevealed(b, "i1", "bob", false)
	require.NoError(t, err)
	assert.False(t, item.IsRevealed)

	_, err = SetRevealed(b, "i1", "alice", true)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))
}

func TestSetActionItem(t *testing.T) {
	b := newTestBoard(t)
	addTestItem(t, b, "i1", bob)

	_, err := SetActionItem(b, "i1", "alice", "Fix CI", "bob")
	assert.True(t, errors.Is(err, apperr.ErrPhase))

	moveTo(t, b, models.StatusVoting, models.StatusActionPlanning)

	_, err = SetActionItem(b, "i1", "bob", "Fix CI", "bob")
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	_, err = SetActionItem(b, "missing", "alice", "Fix CI", "bob")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	item, err := SetActionItem(b, "i1", "alice", "  Fix CI  ", " bob ")
	require.NoError(t, err)
	assert.Equal(t, "Fix CI", item.ActionItem)
	assert.Equal(t, "bob", item.ResponsiblePerson)

	item, err = SetActionItem(b, "i1", "alice", "", "   ")
	require.NoError(t, err)
	assert.Empty(t, item.ActionItem)
	assert.Empty(t, item.ResponsiblePerson)
}

func TestVote(t *testing.T) {
	b := newTestBoard(t)
	for i := 1; i <= 6; i++ {
		addTestItem(t, b, fmt.Sprintf("i%d", i), alice)
	}

	_, _, err := Vote(b, "i1", "bob")
	assert.True(t, errors.Is(err, apperr.ErrPhase), "voting before the voting phase")

	moveTo(t, b, models.StatusVoting)

	item, remaining, err := Vote(b, "i1", "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, item.Votes)
	assert.Equal(t, 4, remaining)

	// Same item twice is a no-op.
	item, remaining, err = Vote(b, "i1", "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, item.Votes)
	assert.Equal(t, 4, remaining)

	for i := 2; i <= 5; i++ {
		_, remaining, err = Vote(b, fmt.Sprintf("i%d", i), "bob")
		require.NoError(t, err)
	}
	assert.Equal(t, 0, remaining)

	_, _, err = Vote(b, "i6", "bob")
	assert.True(t, errors.Is(err, apperr.ErrQuotaExceeded))
	assert.Empty(t, b.Items[5].Votes)

	// Budgets are per user.
	_, remaining, err = Vote(b, "i6", "alice")
	require.NoError(t, err)
	assert.Equal(t, 4, remaining)

	_, _, err = Vote(b, "nope", "alice")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestUnvote(t *testing.T) {
	b := newTestBoard(t)
	addTestItem(t, b, "i1", alice)
	moveTo(t, b, models.StatusVoting)

	_, _, err := Vote(b, "i1", "bob")
	require.NoError(t, err)
	_, _, err = Vote(b, "i1", "carol")
	require.NoError(t, err)

	item, remaining, err := Unvote(b, "i1", "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"carol"}, item.Votes)
	assert.Equal(t, VoteBudget, remaining)

	// Unvoting without a vote changes nothing.
	item, remaining, err = Unvote(b, "i1", "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"carol"}, item.Votes)
	assert.Equal(t, VoteBudget, remaining)

	moveTo(t, b, models.StatusActionPlanning)
	_, _, err = Unvote(b, "i1", "carol")
	assert.True(t, errors.Is(err, apperr.ErrPhase))
	assert.Equal(t, 1, VotesUsed(b, "carol"))
}

func TestTimer(t *testing.T) {
	b := newTestBoard(t)

	StopTimer(b)
	assert.Nil(t, b.Timer)

	StartTimer(b, 0, 1000)
	require.NotNil(t, b.Timer)
	assert.Equal(t, DefaultTimerMinutes, b.Timer.DurationMinutes)
	assert.True(t, b.Timer.IsActive)
	assert.Equal(t, int64(1000), b.Timer.StartTime)

	StartTimer(b, 3, 5000)
	assert.Equal(t, 3, b.Timer.DurationMinutes)
	assert.Equal(t, int64(5000), b.Timer.StartTime)

	StopTimer(b)
	assert.False(t, b.Timer.IsActive)
	assert.Equal(t, 3, b.Timer.DurationMinutes)
}
