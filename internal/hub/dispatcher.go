/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package hub

import (
	"errors"

	"portal/internal/logging"

	"github.com/google/uuid"
)

// Dispatcher owns the per-connection protocol: it reads frames sequentially,
// validates them against the connection's state (connected, identified,
// in a room) and routes each kind to the registry, the room manager, the
// store and the router. One bad frame is dropped with a warning, the
// connection is only closed after MaxViolations of them
type Dispatcher struct {
	registry *Registry
	rooms    *RoomManager
	router   *Router
	store    CollabStore
	opts     Options
	logger   logging.Logger
}

func NewDispatcher(registry *Registry, rooms *RoomManager, router *Router, store CollabStore, opts Options, logger logging.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		rooms:    rooms,
		router:   router,
		store:    store,
		opts:     opts.withDefaults(),
		logger:   logger,
	}
}

// ServeConn runs the sequential read loop for one accepted socket and returns
// when it closes. Handler code is straight-line: no callbacks, the socket
// closing is the only cancellation signal. Cleanup always runs in the same
// order, room first, then registry
func (d *Dispatcher) ServeConn(sock Socket) {
	id := uuid.New().String()
	c := d.registry.Register(id, sock, d.opts.SendQueueSize)
	go c.writePump()

	defer func() {
		d.rooms.Leave(c)
		d.registry.Unregister(id)
	}()

	violations := 0
	for {
		_, data, err := sock.ReadMessage()
		if err != nil {
			return
		}
		if d.dispatch(c, data) {
			continue
		}
		violations++
		if violations >= d.opts.MaxViolations {
			d.logger.Logf("Connection {%s} exceeded %d protocol violations, closing", id, d.opts.MaxViolations)
			return
		}
	}
}

// dispatch routes one frame, reporting false on a protocol violation.
// The switch is exhaustive over the closed set of kinds: the server-only
// kinds land in the violation arm together with anything unknown
func (d *Dispatcher) dispatch(c *Connection, data []byte) bool {
	f, err := decodeFrame(data)
	if err != nil {
		d.logger.Logf("Connection {%s} sent a malformed frame: {%v}", c.id, err)
		return false
	}

	switch f.Kind {
	case KindIdentify:
		return d.handleIdentify(c, f)
	case KindJoin:
		return d.handleJoin(c, f)
	case KindChat:
		return d.handleChat(c, f)
	case KindEdit:
		return d.handleEdit(c, f)
	case KindCursor:
		return d.handleCursor(c, f)
	case KindPresence, KindHistory, KindError:
		d.logger.Logf("Connection {%s} sent the server-only kind {%s}", c.id, f.Kind)
		return false
	default:
		d.logger.Logf("Connection {%s} sent the unknown kind {%s}", c.id, f.Kind)
		return false
	}
}

// handleIdentify moves the connection from connected to identified. The
// observed protocol combines identity and first join in one frame, so a
// document id here immediately puts the connection in that room
func (d *Dispatcher) handleIdentify(c *Connection, f *InboundFrame) bool {
	if f.UserID == "" || f.DisplayName == "" {
		d.logger.Logf("Connection {%s} sent an identify frame with missing fields", c.id)
		return false
	}
	if err := d.registry.SetIdentity(c.id, f.UserID, f.DisplayName); err != nil {
		// A second identity frame never changes the identity
		d.logger.Logf("Connection {%s} identify rejected: {%v}", c.id, err)
		return false
	}
	if f.DocumentID != "" {
		d.joinAndReplay(c, f.DocumentID)
	}
	return true
}

// handleJoin puts an identified connection in a room, leaving the previous
// one implicitly when there is one
func (d *Dispatcher) handleJoin(c *Connection, f *InboundFrame) bool {
	if _, _, identified := c.Identity(); !identified {
		d.logger.Logf("Connection {%s} tried to join a room before identifying", c.id)
		return false
	}
	if f.DocumentID == "" {
		d.logger.Logf("Connection {%s} sent a join frame without a document", c.id)
		return false
	}
	d.joinAndReplay(c, f.DocumentID)
	return true
}

// joinAndReplay performs the room join and sends the history snapshot back to
// the joining connection only
func (d *Dispatcher) joinAndReplay(c *Connection, documentID string) {
	history, err := d.rooms.Join(documentID, c)
	if err != nil {
		d.logger.Logf("Connection {%s} failed to join room {%s}: {%v}", c.id, documentID, err)
		return
	}
	payload, err := encodeEvent(historyEventOf(history))
	if err != nil {
		d.logger.Logf("Could not encode history for room {%s}: {%v}", documentID, err)
		return
	}
	d.router.SendTo(c, payload)
}

// handleChat persists the message first and broadcasts it, sender included,
// only after the write acknowledged. A persistence failure is reported to the
// originating connection alone and peers never see the message
func (d *Dispatcher) handleChat(c *Connection, f *InboundFrame) bool {
	documentID, ok := d.rooms.RoomOf(c.id)
	if !ok {
		d.logger.Logf("Connection {%s} sent chat while not in a room", c.id)
		return false
	}
	if f.Content == "" {
		d.logger.Logf("Connection {%s} sent an empty chat frame", c.id)
		return false
	}

	userID, displayName, _ := c.Identity()
	message, err := d.store.AppendChatMessage(documentID, userID, displayName, f.Content, clientTimeOf(f.Timestamp))
	if err != nil {
		d.reportFailure(c, "chat message was not saved, retry", err)
		return true
	}

	payload, err := encodeEvent(chatEventOf(message))
	if err != nil {
		d.logger.Logf("Could not encode chat event: {%v}", err)
		return true
	}
	d.router.Broadcast(documentID, payload, "")
	return true
}

// handleEdit replaces the stored document content, last writer wins, and
// broadcasts the new text to everyone except the editor. No broadcast ever
// happens for content that did not reach the store
func (d *Dispatcher) handleEdit(c *Connection, f *InboundFrame) bool {
	documentID, ok := d.rooms.RoomOf(c.id)
	if !ok {
		d.logger.Logf("Connection {%s} sent edit while not in a room", c.id)
		return false
	}

	if err := d.store.ReplaceDocumentContent(documentID, f.Content); err != nil {
		if errors.Is(err, ErrNotFound) {
			// The document vanished under an open room, a benign race
			d.logger.Logf("Edit dropped, document {%s} no longer exists", documentID)
			return true
		}
		d.reportFailure(c, "edit was not saved, retry", err)
		return true
	}

	payload, err := encodeEvent(EditEvent{Kind: KindEdit, Content: f.Content})
	if err != nil {
		d.logger.Logf("Could not encode edit event: {%v}", err)
		return true
	}
	d.router.Broadcast(documentID, payload, c.id)
	return true
}

// handleCursor relays the position to the rest of the room, nothing persists
func (d *Dispatcher) handleCursor(c *Connection, f *InboundFrame) bool {
	documentID, ok := d.rooms.RoomOf(c.id)
	if !ok {
		d.logger.Logf("Connection {%s} sent cursor while not in a room", c.id)
		return false
	}
	if f.Position == nil {
		d.logger.Logf("Connection {%s} sent a cursor frame without a position", c.id)
		return false
	}

	userID, displayName, _ := c.Identity()
	payload, err := encodeEvent(CursorEvent{Kind: KindCursor, UserID: userID, DisplayName: displayName, Position: *f.Position})
	if err != nil {
		d.logger.Logf("Could not encode cursor event: {%v}", err)
		return true
	}
	d.router.Broadcast(documentID, payload, c.id)
	return true
}

// reportFailure sends an error frame to the originating connection only.
// No failure of one connection is ever visible to another
func (d *Dispatcher) reportFailure(c *Connection, reason string, cause error) {
	d.logger.Logf("Connection {%s}: %s {%v}", c.id, reason, cause)
	payload, err := encodeEvent(ErrorEvent{Kind: KindError, Reason: reason})
	if err != nil {
		return
	}
	d.router.SendTo(c, payload)
}
