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

// Allowed task statuses
const (
	TaskStatusOpen  = "open"
	TaskStatusDoing = "doing"
	TaskStatusDone  = "done"
)

// A task tracked in the portal
type Task struct {
	UUID        string         `gorm:"primaryKey" json:"uuid"`              // Unique identifier
	OwnerUUID   string         `gorm:"not null;index" json:"owner"`         // UUID of the user the task belongs to
	Title       string         `gorm:"not null" json:"title"`               // Short summary
	Description string         `json:"description"`                         // Free-form details
	Status      string         `gorm:"not null;default:open" json:"status"` // One of open, doing, done
	DueAt       *time.Time     `json:"due-at"`                              // Optional deadline
	CreatedAt   time.Time      `gorm:"not null;index" json:"created-at"`    // Time of creation
	UpdatedAt   time.Time      `json:"updated-at"`                          // Time of last change
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted-at"`             // Time of soft deletion
}
