/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"errors"
	"time"

	"portal/internal/entity"
	"portal/internal/hub"
	"portal/internal/logging"
	"portal/internal/repository"

	"gorm.io/gorm"
)

// collabStore is the persistence adapter of the collaboration hub. It maps
// the hub's store contract onto the message and document repositories and
// translates the database's not-found into the hub's benign variant
type collabStore struct {
	messageRepository  repository.MessageRepository
	documentRepository repository.DocumentRepository
	logger             logging.Logger
}

func NewCollabStore(messageRepo repository.MessageRepository, documentRepo repository.DocumentRepository, logger logging.Logger) hub.CollabStore {
	return &collabStore{
		messageRepository:  messageRepo,
		documentRepository: documentRepo,
		logger:             logger,
	}
}

func (s *collabStore) AppendChatMessage(documentID, userID, displayName, content string, clientTime time.Time) (*entity.ChatMessage, error) {
	m := &entity.ChatMessage{
		DocumentUUID: documentID,
		SenderUUID:   userID,
		SenderName:   displayName,
		Content:      content,
		ClientTime:   clientTime,
		CreatedAt:    time.Now(),
	}
	if err := s.messageRepository.Create(m); err != nil {
		s.logger.Logf("Chat message insert failed for document {%s}: {%v}", documentID, err)
		return nil, err
	}
	return m, nil
}

func (s *collabStore) RecentMessages(documentID string, limit int) ([]*entity.ChatMessage, error) {
	return s.messageRepository.Recent(documentID, limit)
}

func (s *collabStore) ReplaceDocumentContent(documentID, content string) error {
	err := s.documentRepository.ReplaceContent(documentID, content)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return hub.ErrNotFound
	}
	return err
}
