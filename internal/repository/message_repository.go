/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package repository

import (
	"portal/internal/entity"

	"gorm.io/gorm"
)

// This repository is used to manipulate the chat messages of the collaboration hub.
// Messages are immutable once created: there is no update or delete path.
type MessageRepository interface {
	Create(message *entity.ChatMessage) error // Inserts a message; the database assigns the id

	Recent(documentUUID string, limit int) ([]*entity.ChatMessage, error) // Retrieves the most recent limit messages of the document, oldest first
	GetAll() ([]*entity.ChatMessage, error)                               // Retrieves all the messages
}

// Implementation of the repository using a SQLite DB
type SQLiteMessageRepository struct {
	db *gorm.DB
}

func NewSQLiteMessageRepository(db *gorm.DB) MessageRepository {
	return &SQLiteMessageRepository{db}
}

func (repo *SQLiteMessageRepository) Create(message *entity.ChatMessage) error {
	return repo.db.Create(message).Error
}

func (repo *SQLiteMessageRepository) Recent(documentUUID string, limit int) ([]*entity.ChatMessage, error) {
	var messages []*entity.ChatMessage
	err := repo.db.Where("document_uuid = ?", documentUUID).Order("id DESC").Limit(limit).Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Query is newest first to apply the limit, callers want chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (repo *SQLiteMessageRepository) GetAll() ([]*entity.ChatMessage, error) {
	var messages []*entity.ChatMessage
	err := repo.db.Find(&messages).Error
	return messages, err
}
