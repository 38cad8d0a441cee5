// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"sync"

	"github.com/danielhkuo/retro-board/models"
)

// Subscription receives the events of one board.
type Subscription struct {
	boardID string
	ch      chan models.BoardEvent
}

// Events is closed when the subscription is removed.
func (s *Subscription) Events() <-chan models.BoardEvent {
	return s.ch
}

// Broker fans out board events to subscribers. Each subscriber holds at most
// one pending event; a newer event replaces an undelivered one.
type Broker struct {
	mu   sync.Mutex
	subs map[string]map[*Subscription]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[*Subscription]struct{})}
}

// Subscribe registers interest in boardID.
func (b *Broker) Subscribe(boardID string) *Subscription {
	sub := &Subscription{boardID: boardID, ch: make(chan models.BoardEvent, 1)}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[boardID] == nil {
		b.subs[boardID] = make(map[*Subscription]struct{})
	}
	b.subs[boardID][sub] = struct{}{}
	return sub
}

// Unsubscribe removes sub and closes its channel. Safe to call twice.
func (b *Broker) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.subs[sub.boardID]
	if !ok {
		return
	}
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(b.subs, sub.boardID)
	}
	close(sub.ch)
}

// Publish delivers ev to every subscriber of boardID without blocking.
func (b *Broker) Publish(boardID string, ev models.BoardEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.subs[boardID] {
		select {
		case sub.ch <- ev:
			continue
		default:
		}
		// Full: drop the stale event and retry once. The reader may have
		// taken it in between, in which case the drain is a no-op.
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- ev:
		default:
		}
	}
}

// Subscribers returns how many subscriptions boardID has.
func (b *Broker) Subscribers(boardID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[boardID])
}
