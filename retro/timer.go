// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package retro

import "github.com/danielhkuo/retro-board/models"

// DefaultTimerMinutes is used when a timer is started without a duration.
const DefaultTimerMinutes = 10

// StartTimer replaces any timer with a fresh running one.
func StartTimer(b *models.RetroBoard, minutes int, now int64) {
	if minutes <= 0 {
		minutes = DefaultTimerMinutes
	}
	b.Timer = &models.Timer{
		StartTime:       now,
		DurationMinutes: minutes,
		IsActive:        true,
	}
}

// StopTimer deactivates the timer if there is one.
func StopTimer(b *models.RetroBoard) {
	if b.Timer != nil {
		b.Timer.IsActive = false
	}
}
