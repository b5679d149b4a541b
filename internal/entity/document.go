/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package entity

import (
	"time"

	"gorm.io/gorm"
)

// A document of the portal. Content is the authoritative current text: every edit
// coming through the collaboration hub fully replaces it, last writer wins.
type Document struct {
	UUID      string         `gorm:"primaryKey" json:"uuid"`           // Unique identifier
	OwnerUUID string         `gorm:"not null;index" json:"owner"`      // UUID of the user that created the document
	Title     string         `gorm:"not null;index" json:"title"`      // Title shown in the portal listing
	Content   string         `json:"content"`                          // Full text, replaced wholesale on each edit
	CreatedAt time.Time      `gorm:"not null;index" json:"created-at"` // Time of creation
	UpdatedAt time.Time      `json:"updated-at"`                       // Time of last content or title change
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted-at"`          // Time of soft deletion
}
