/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"fmt"
	"time"

	"portal/internal/entity"
	"portal/internal/logging"
	"portal/internal/repository"

	"github.com/google/uuid"
)

// Service used to handle the documents of the portal. The collaboration hub
// mutates document content through its own store; this service covers the
// plain request/response CRUD surface
type DocumentService interface {
	CreateDocument(owner *entity.User, title string) (*entity.Document, error) // Creates an empty document owned by the given user
	GetDocument(uuid string) (*entity.Document, error)                         // Returns the document with the given uuid
	GetOwnDocuments(owner *entity.User) ([]*entity.Document, error)            // Returns the documents of the given user
	RenameDocument(uuid, title string) error                                   // Changes the title of the document
	DeleteDocument(uuid string) error                                          // Deletes the document with the given uuid
}

type localDocumentService struct {
	documentRepository repository.DocumentRepository
	logger             logging.Logger
}

func NewDocumentService(documentRepo repository.DocumentRepository, logger logging.Logger) DocumentService {
	return &localDocumentService{
		documentRepository: documentRepo,
		logger:             logger,
	}
}

func (s *localDocumentService) Logf(format string, v ...any) {
	s.logger.Logf(format, v...)
}

func (s *localDocumentService) CreateDocument(owner *entity.User, title string) (*entity.Document, error) {
	if title == "" {
		return nil, fmt.Errorf("A document needs a title")
	}

	d := &entity.Document{
		UUID:      uuid.New().String(),
		OwnerUUID: owner.UUID,
		Title:     title,
		CreatedAt: time.Now(),
	}
	if err := s.documentRepository.Create(d); err != nil {
		return nil, err
	}

	s.Logf("Document {%s} created by {%s}", d.UUID, owner.Username)
	return d, nil
}

func (s *localDocumentService) GetDocument(uuid string) (*entity.Document, error) {
	return s.documentRepository.GetByUUID(uuid)
}

func (s *localDocumentService) GetOwnDocuments(owner *entity.User) ([]*entity.Document, error) {
	return s.documentRepository.GetByOwner(owner.UUID)
}

func (s *localDocumentService) RenameDocument(uuid, title string) error {
	if title == "" {
		return fmt.Errorf("A document needs a title")
	}
	return s.documentRepository.Rename(uuid, title)
}

func (s *localDocumentService) DeleteDocument(uuid string) error {
	s.Logf("Document {%s} deleted", uuid)
	return s.documentRepository.SoftDelete(uuid)
}
