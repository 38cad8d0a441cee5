// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/retro-board/boards"
	"github.com/danielhkuo/retro-board/events"
	"github.com/danielhkuo/retro-board/metrics"
	"github.com/danielhkuo/retro-board/middleware"
	"github.com/danielhkuo/retro-board/models"
)

const (
	eventWriteWait  = 10 * time.Second
	eventPongWait   = 60 * time.Second
	eventPingPeriod = (eventPongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Any origin; access is controlled by the session token.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type EventsHandler struct {
	boards *boards.Service
	broker *events.Broker
}

func NewEventsHandler(boards *boards.Service, broker *events.Broker) *EventsHandler {
	return &EventsHandler{boards: boards, broker: broker}
}

// Stream handles GET /boards/{id}/events
//
// The connection receives the current board at once and a new snapshot after
// every change. A deleted event ends the stream.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	boardID := r.PathValue("id")

	// Subscribe before reading so no update between the read and the
	// subscription is lost.
	sub := h.broker.Subscribe(boardID)
	defer h.broker.Unsubscribe(sub)

	board, err := h.boards.Get(r.Context(), boardID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		slog.Warn("event stream upgrade failed", "board_id", boardID, "error", err)
		return
	}
	defer conn.Close()

	metrics.EventSubscribers.Inc()
	defer metrics.EventSubscribers.Dec()
	slog.Info("event stream opened", "board_id", boardID)

	// Drain client frames so pongs and close messages are processed.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().Add(eventPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(eventPongWait))
		})
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	send := func(ev models.BoardEvent) bool {
		conn.SetWriteDeadline(time.Now().Add(eventWriteWait))
		if err := conn.WriteJSON(ev); err != nil {
			slog.Warn("failed to write board event", "board_id", boardID, "error", err)
			return false
		}
		return true
	}

	lastRevision := board.Revision
	if !send(models.BoardEvent{Type: models.EventSnapshot, Board: board}) {
		return
	}

	ticker := time.NewTicker(eventPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			if ev.Type == models.EventSnapshot && ev.Board != nil && ev.Board.Revision <= lastRevision {
				continue
			}
			if !send(ev) {
				return
			}
			if ev.Type == models.EventDeleted {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "board deleted"),
					time.Now().Add(eventWriteWait))
				return
			}
			if ev.Board != nil {
				lastRevision = ev.Board.Revision
			}

		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(eventWriteWait)); err != nil {
				return
			}

		case <-closed:
			slog.Info("event stream closed", "board_id", boardID)
			return
		}
	}
}
