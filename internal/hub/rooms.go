/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package hub

import (
	"sync"

	"portal/internal/entity"
	"portal/internal/logging"
)

// RoomManager groups connections by document id. It is the single writer of
// membership: every mutation goes through Join and Leave, under its own lock,
// and a room with zero members is removed from the index immediately.
// A connection belongs to at most one room; joining a second room performs an
// implicit leave of the first
type RoomManager struct {
	mu    sync.Mutex
	rooms map[string]map[string]*Connection // document id -> member connections
	index map[string]string                 // connection id -> document id

	store        CollabStore
	router       *Router
	historyLimit int
	logger       logging.Logger
}

func NewRoomManager(store CollabStore, router *Router, historyLimit int, logger logging.Logger) *RoomManager {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	return &RoomManager{
		rooms:        make(map[string]map[string]*Connection),
		index:        make(map[string]string),
		store:        store,
		router:       router,
		historyLimit: historyLimit,
		logger:       logger,
	}
}

// Join adds the connection to the document's room, creating it on demand,
// then synchronously fetches the recent history for the caller to replay and
// republishes the presence roster. The history snapshot is taken after the
// membership change, so it never contains messages the joiner will also
// receive as a live broadcast of its own room
func (m *RoomManager) Join(documentID string, c *Connection) ([]*entity.ChatMessage, error) {
	m.mu.Lock()
	oldRoom := ""
	if old, ok := m.index[c.id]; ok && old != documentID {
		oldRoom = old
		m.removeLocked(old, c.id)
	}

	room, ok := m.rooms[documentID]
	if !ok {
		room = make(map[string]*Connection)
		m.rooms[documentID] = room
	}
	room[c.id] = c
	m.index[c.id] = documentID
	m.mu.Unlock()

	if oldRoom != "" {
		m.logger.Logf("Connection {%s} implicitly left room {%s} joining {%s}", c.id, oldRoom, documentID)
		m.publishPresence(oldRoom)
	}

	history, err := m.store.RecentMessages(documentID, m.historyLimit)
	if err != nil {
		// The join itself stands, the newcomer just starts with an empty scrollback
		m.logger.Logf("History fetch failed for room {%s}: {%v}", documentID, err)
		history = nil
	}

	m.publishPresence(documentID)
	m.logger.Logf("Connection {%s} joined room {%s}", c.id, documentID)
	return history, nil
}

// Leave removes the connection from whichever room it belongs to. No-op when
// it is not in a room. The room is deleted when it empties, otherwise the
// remaining members get a fresh presence roster
func (m *RoomManager) Leave(c *Connection) {
	m.mu.Lock()
	documentID, ok := m.index[c.id]
	if !ok {
		m.mu.Unlock()
		return
	}
	delete(m.index, c.id)
	m.removeLocked(documentID, c.id)
	_, survived := m.rooms[documentID]
	m.mu.Unlock()

	m.logger.Logf("Connection {%s} left room {%s}", c.id, documentID)
	if survived {
		m.publishPresence(documentID)
	}
}

// removeLocked drops the connection from the room's member set and deletes
// the room when it becomes empty. Caller holds the lock
func (m *RoomManager) removeLocked(documentID, connID string) {
	room, ok := m.rooms[documentID]
	if !ok {
		return
	}
	delete(room, connID)
	if len(room) == 0 {
		delete(m.rooms, documentID)
	}
}

// Members returns a snapshot of the room's member connections
func (m *RoomManager) Members(documentID string) []*Connection {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[documentID]
	if !ok {
		return nil
	}
	members := make([]*Connection, 0, len(room))
	for _, c := range room {
		members = append(members, c)
	}
	return members
}

// Roster returns the display names of the room's members. Duplicates are
// intentional when one user holds several connections: each connection is
// independent
func (m *RoomManager) Roster(documentID string) []string {
	members := m.Members(documentID)
	names := make([]string, 0, len(members))
	for _, c := range members {
		_, name, _ := c.Identity()
		names = append(names, name)
	}
	return names
}

// RoomOf returns the document id of the room the connection is in, if any
func (m *RoomManager) RoomOf(connID string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	documentID, ok := m.index[connID]
	return documentID, ok
}

// publishPresence recomputes the roster and fans it out to the room.
// The roster is derived state: it is never persisted anywhere
func (m *RoomManager) publishPresence(documentID string) {
	roster := m.Roster(documentID)
	if len(roster) == 0 {
		return
	}
	payload, err := encodeEvent(PresenceEvent{Kind: KindPresence, DocumentID: documentID, Members: roster})
	if err != nil {
		m.logger.Logf("Could not encode the presence roster: {%v}", err)
		return
	}
	m.router.Broadcast(documentID, payload, "")
}
