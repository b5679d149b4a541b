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

// A registered account of the portal
type User struct {
	UUID        string         `gorm:"primaryKey" json:"uuid"`               // Unique identifier
	Username    string         `gorm:"uniqueIndex;not null" json:"username"` // Login name, unique across the portal
	DisplayName string         `gorm:"not null" json:"display-name"`         // Name shown to other users (chat, presence, tasks)
	IsAdmin     bool           `gorm:"default:false" json:"is-admin"`        // Grants access to the admin panel
	CreatedAt   time.Time      `gorm:"not null;index" json:"created-at"`     // Time of registration
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted-at"`              // Time of soft deletion

	Secret UserSecret `gorm:"foreignKey:UserUUID;references:UUID" json:"-"` // Password hash, kept in its own table
}
