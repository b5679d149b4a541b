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

// Metadata of a file uploaded to the portal. The bytes themselves live on disk
// under the configured upload directory, named after the UUID.
type StoredFile struct {
	UUID      string         `gorm:"primaryKey" json:"uuid"`           // Unique identifier, also the on-disk name
	OwnerUUID string         `gorm:"not null;index" json:"owner"`      // UUID of the user that uploaded the file
	Name      string         `gorm:"not null" json:"name"`             // Original filename, kept for download
	Size      int64          `json:"size"`                             // Size in bytes at upload time
	CreatedAt time.Time      `gorm:"not null;index" json:"created-at"` // Time of upload
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted-at"`          // Time of soft deletion
}
