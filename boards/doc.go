// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package boards persists retrospective boards in a kvstore.Store.

Each board is one JSON document under board:<id>. Mutations load the
document, apply a rule from package retro, and write it back with
CompareAndSwap. A writer that loses the race re-reads and re-applies its
change, up to MaxWriteAttempts times, before giving up with a conflict
error. Rules are evaluated against the freshest document on every attempt,
so limits such as the vote budget hold under concurrent requests.

Every successful write bumps the board revision and is published to the
Publisher passed to NewService.
*/
package boards
