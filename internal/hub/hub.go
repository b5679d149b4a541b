/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package hub is the real-time collaboration core of the portal.
// It multiplexes document co-editing, chat and cursor presence over
// persistent websocket connections, one room per document. All the state is
// in-process; durability goes through the CollabStore.
package hub

import (
	"errors"
	"time"

	"portal/internal/entity"
)

var (
	// ErrAlreadyIdentified is returned when a connection sends a second identity frame
	ErrAlreadyIdentified = errors.New("connection already identified")

	// ErrUnknownConnection is returned when an operation references a connection id that is not registered
	ErrUnknownConnection = errors.New("connection not registered")

	// ErrNotFound is returned by the store when a referenced document no longer exists.
	// Rooms and documents are ephemeral, so callers treat this as a benign race
	ErrNotFound = errors.New("not found")
)

// CollabStore is the persistence the hub needs: durable chat messages and
// full-replacement document content. A frame is only broadcast after its
// store call acknowledged, so peers never see something that isn't durable.
type CollabStore interface {
	// AppendChatMessage durably stores a chat message and returns it with its
	// server-assigned id. Insertion order is the authoritative retrieval order,
	// clientTime is kept for display only.
	AppendChatMessage(documentID, userID, displayName, content string, clientTime time.Time) (*entity.ChatMessage, error)

	// RecentMessages returns the most recent limit messages of the document, oldest first
	RecentMessages(documentID string, limit int) ([]*entity.ChatMessage, error)

	// ReplaceDocumentContent overwrites the stored content unconditionally.
	// No staleness check is performed: last writer wins.
	// Returns ErrNotFound when the document row is gone
	ReplaceDocumentContent(documentID, content string) error
}

// Options are the hub tunables, all with working defaults
type Options struct {
	HistoryLimit  int // Messages replayed on join
	SendQueueSize int // Bounded outbound queue per connection
	MaxViolations int // Bad frames tolerated before the connection is closed
}

func (o Options) withDefaults() Options {
	if o.HistoryLimit <= 0 {
		o.HistoryLimit = 50
	}
	if o.SendQueueSize <= 0 {
		o.SendQueueSize = 64
	}
	if o.MaxViolations <= 0 {
		o.MaxViolations = 8
	}
	return o
}
