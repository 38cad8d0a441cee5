// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package events distributes board changes to live subscribers.

The boards service publishes a snapshot after every successful write and a
deleted marker when a board is removed:

	sub := broker.Subscribe(boardID)
	defer broker.Unsubscribe(sub)
	for ev := range sub.Events() {
		...
	}

Subscribers that fall behind only ever see the newest snapshot.
*/
package events
