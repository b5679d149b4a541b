/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package hub

import (
	"encoding/json"
	"fmt"
	"time"

	"portal/internal/entity"
)

// The closed set of frame kinds. Clients send identify, join, chat, edit and
// cursor; presence, history and error only ever travel server to client
const (
	KindIdentify = "identify"
	KindJoin     = "join"
	KindChat     = "chat"
	KindEdit     = "edit"
	KindCursor   = "cursor"
	KindPresence = "presence"
	KindHistory  = "history"
	KindError    = "error"
)

// Position of a cursor inside a document
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// InboundFrame is the envelope every client frame is decoded into before the
// dispatcher validates the fields its kind requires
type InboundFrame struct {
	Kind        string    `json:"kind"`
	UserID      string    `json:"userId,omitempty"`
	DisplayName string    `json:"displayName,omitempty"`
	DocumentID  string    `json:"documentId,omitempty"`
	Content     string    `json:"content,omitempty"`
	Timestamp   int64     `json:"timestamp,omitempty"` // client clock in unix millis, display only
	Position    *Position `json:"position,omitempty"`
}

// decodeFrame parses a raw text message into an InboundFrame
// A missing kind is malformed: the dispatcher cannot route it
func decodeFrame(data []byte) (*InboundFrame, error) {
	var f InboundFrame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.Kind == "" {
		return nil, fmt.Errorf("Frame is missing its kind")
	}
	return &f, nil
}

// ChatEvent is a chat message as broadcast to a room, and also the element
// of a history replay
type ChatEvent struct {
	Kind        string `json:"kind"`
	ID          uint64 `json:"id"`
	DocumentID  string `json:"documentId"`
	Content     string `json:"content"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Timestamp   int64  `json:"timestamp"` // unix millis, display only
}

// EditEvent carries the full replacement text of a document, sender excluded
type EditEvent struct {
	Kind    string `json:"kind"`
	Content string `json:"content"`
}

// CursorEvent carries a peer's cursor position, sender excluded
type CursorEvent struct {
	Kind        string   `json:"kind"`
	UserID      string   `json:"userId"`
	DisplayName string   `json:"displayName"`
	Position    Position `json:"position"`
}

// PresenceEvent is the roster of a room, republished on every membership change
type PresenceEvent struct {
	Kind       string   `json:"kind"`
	DocumentID string   `json:"documentId"`
	Members    []string `json:"members"`
}

// HistoryEvent replays recent chat to a freshly joined connection
type HistoryEvent struct {
	Kind     string      `json:"kind"`
	Messages []ChatEvent `json:"messages"`
}

// ErrorEvent tells the originating client, and only it, that its frame failed
type ErrorEvent struct {
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

func encodeEvent(event any) ([]byte, error) {
	return json.Marshal(event)
}

// chatEventOf converts a persisted message into its wire shape. The display
// timestamp prefers the client clock and falls back to the server one
func chatEventOf(m *entity.ChatMessage) ChatEvent {
	ts := m.ClientTime
	if ts.IsZero() {
		ts = m.CreatedAt
	}
	return ChatEvent{
		Kind:        KindChat,
		ID:          m.ID,
		DocumentID:  m.DocumentUUID,
		Content:     m.Content,
		UserID:      m.SenderUUID,
		DisplayName: m.SenderName,
		Timestamp:   ts.UnixMilli(),
	}
}

// historyEventOf wraps a chronological message slice for replay
func historyEventOf(messages []*entity.ChatMessage) HistoryEvent {
	events := make([]ChatEvent, 0, len(messages))
	for _, m := range messages {
		events = append(events, chatEventOf(m))
	}
	return HistoryEvent{Kind: KindHistory, Messages: events}
}

// clientTimeOf interprets the client timestamp field, zero when absent
func clientTimeOf(millis int64) time.Time {
	if millis == 0 {
		return time.Time{}
	}
	return time.UnixMilli(millis)
}
