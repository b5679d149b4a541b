/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package hub

import (
	"portal/internal/logging"
)

// memberSource is where the Router asks for the current members of a room.
// Implemented by the RoomManager, injected after construction to break the
// cycle between the two
type memberSource interface {
	Members(documentID string) []*Connection
}

// Router fans a pre-serialized payload out to the members of a room.
// Delivery is fire-and-forget per connection: a full queue or a dead socket
// on one peer never blocks or fails delivery to the others, and never
// surfaces to the caller. The offending peer alone is closed
type Router struct {
	members memberSource
	logger  logging.Logger
}

func NewRouter(logger logging.Logger) *Router {
	return &Router{logger: logger}
}

// SetMemberSource wires the membership lookup, done once at startup
func (r *Router) SetMemberSource(ms memberSource) {
	r.members = ms
}

// Broadcast delivers payload to every member of the room except the excluded
// connection (when excludeID is non-empty). Per-source ordering is preserved:
// payloads enqueued here from one goroutine drain FIFO per connection
func (r *Router) Broadcast(documentID string, payload []byte, excludeID string) {
	for _, c := range r.members.Members(documentID) {
		if c.id == excludeID {
			continue
		}
		r.deliver(c, payload)
	}
}

// SendTo delivers payload to a single connection, used for history replay and
// error frames. Same failure isolation as Broadcast
func (r *Router) SendTo(c *Connection, payload []byte) {
	r.deliver(c, payload)
}

func (r *Router) deliver(c *Connection, payload []byte) {
	if c.enqueue(payload) {
		return
	}
	// Slow consumer or already gone: treated like a client-initiated
	// disconnect. The read loop notices the closed socket and cleans up
	r.logger.Logf("Connection {%s} cannot keep up, closing it", c.id)
	c.close()
}
