/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"net/http"

	"portal/internal/hub"
	"portal/internal/logging"

	"github.com/gorilla/websocket"
)

// CollabHandler upgrades authenticated HTTP requests to websocket
// connections and hands them to the hub dispatcher
type CollabHandler struct {
	dispatcher *hub.Dispatcher
	upgrader   websocket.Upgrader
	logger     logging.Logger
}

func NewCollabHandler(dispatcher *hub.Dispatcher, logger logging.Logger) *CollabHandler {
	return &CollabHandler{
		dispatcher: dispatcher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The session middleware already gates this endpoint
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Upgrades the request and serves the connection until it closes.
// The dispatcher blocks for the lifetime of the socket, so the
// handler goroutine is the read loop
func (h *CollabHandler) Connect(w http.ResponseWriter, r *http.Request) {
	_, ok := requestUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sock, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Logf("Websocket upgrade failed: %v", err)
		return
	}

	h.dispatcher.ServeConn(sock)
}
