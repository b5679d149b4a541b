/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package entity

import "time"

// Represents a chat message sent in a document room.
// The id is assigned by the database and insertion order is the authoritative
// retrieval order; the client clock is carried only for display.
type ChatMessage struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"` // Server-assigned identifier, monotonic per insertion
	DocumentUUID string    `gorm:"not null;index" json:"document-id"`  // Document whose room the message was sent in
	SenderUUID   string    `gorm:"index" json:"sender"`                // UUID of the user that sent the message
	SenderName   string    `json:"sender-name"`                        // Display name at send time, denormalized for history replay
	Content      string    `gorm:"not null" json:"content"`            // Actual content of the message
	ClientTime   time.Time `json:"client-time"`                        // Clock of the sending client, display only, never used for ordering
	CreatedAt    time.Time `gorm:"not null" json:"created-at"`         // Time of insertion, relative to the server
}
