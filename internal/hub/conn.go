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

	"github.com/gorilla/websocket"
)

// Socket is the subset of *websocket.Conn the hub uses.
// Tests inject in-memory implementations
type Socket interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Connection is one live duplex socket with the identity attached to it.
// Identity is set once by the first identify frame and immutable afterwards.
// Room membership is NOT stored here: the RoomManager is its single writer
type Connection struct {
	id   string
	sock Socket

	mu          sync.Mutex // guards the identity fields
	userID      string
	displayName string
	identified  bool

	send      chan []byte   // bounded outbound queue, drained by writePump
	done      chan struct{} // closed exactly once, on disconnect
	closeOnce sync.Once
}

func newConnection(id string, sock Socket, queueSize int) *Connection {
	return &Connection{
		id:   id,
		sock: sock,
		send: make(chan []byte, queueSize),
		done: make(chan struct{}),
	}
}

func (c *Connection) ID() string { return c.id }

// Identity returns the user id and display name, with ok false while the
// connection has not been identified yet
func (c *Connection) Identity() (userID, displayName string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userID, c.displayName, c.identified
}

func (c *Connection) setIdentity(userID, displayName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.identified {
		return ErrAlreadyIdentified
	}
	c.userID = userID
	c.displayName = displayName
	c.identified = true
	return nil
}

// enqueue appends the payload to the outbound queue without ever blocking.
// It reports false when the queue is full or the connection is closed,
// which callers treat as a slow consumer
func (c *Connection) enqueue(payload []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// close tears the connection down. Idempotent; closing the socket also
// unblocks the read loop, which performs the registry and room cleanup
func (c *Connection) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.sock.Close()
	})
}

// writePump drains the outbound queue onto the socket, one goroutine per
// connection. A write failure closes the connection; the peer is on its own
func (c *Connection) writePump() {
	for {
		select {
		case <-c.done:
			return
		case payload := <-c.send:
			if err := c.sock.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.close()
				return
			}
		}
	}
}
