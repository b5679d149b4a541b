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

	"portal/internal/logging"
)

// Registry tracks every live connection and the identity attached to it.
// It is the single writer of identity; room membership belongs to the RoomManager
type Registry struct {
	mu     sync.RWMutex
	conns  map[string]*Connection
	logger logging.Logger
}

func NewRegistry(logger logging.Logger) *Registry {
	return &Registry{
		conns:  make(map[string]*Connection),
		logger: logger,
	}
}

// Register creates an unauthenticated entry for an accepted socket.
// Called once per socket, the id is generated at accept time and never reused
func (r *Registry) Register(id string, sock Socket, queueSize int) *Connection {
	c := newConnection(id, sock, queueSize)

	r.mu.Lock()
	r.conns[id] = c
	r.mu.Unlock()

	r.logger.Logf("Connection {%s} registered", id)
	return c
}

// SetIdentity attaches the user to the connection. Accepted only once:
// a second identity frame fails with ErrAlreadyIdentified and changes nothing
func (r *Registry) SetIdentity(id, userID, displayName string) error {
	r.mu.RLock()
	c, ok := r.conns[id]
	r.mu.RUnlock()

	if !ok {
		return ErrUnknownConnection
	}
	if err := c.setIdentity(userID, displayName); err != nil {
		return err
	}

	r.logger.Logf("Connection {%s} identified as user {%s} ({%s})", id, userID, displayName)
	return nil
}

// Lookup retrieves the connection with the given id
func (r *Registry) Lookup(id string) (*Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conns[id]
	return c, ok
}

// Unregister forgets the connection. Idempotent: closing an already-closed
// connection is a no-op. Callers run room cleanup before dropping the entry
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	c, ok := r.conns[id]
	delete(r.conns, id)
	r.mu.Unlock()

	if ok {
		c.close()
		r.logger.Logf("Connection {%s} unregistered", id)
	}
}

// Count returns the number of live connections
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
