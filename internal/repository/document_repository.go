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

// This repository is used to manipulate the documents of the portal.
// ReplaceContent is the write path of the collaboration hub: it overwrites the
// stored text unconditionally, so the last write observed by the database wins.
type DocumentRepository interface {
	Create(document *entity.Document) error // Inserts a document in the repository

	SoftDelete(uuid string) error // Soft deletes the document

	GetByUUID(uuid string) (*entity.Document, error)     // Retrieves the document with the given uuid
	GetByOwner(owner string) ([]*entity.Document, error) // Retrieves the documents created by the given user

	Rename(uuid, title string) error           // Changes the title of the document
	ReplaceContent(uuid, content string) error // Overwrites the full content. Returns gorm.ErrRecordNotFound if the document is gone
}

// Implementation of the repository using a SQLite DB
type SQLiteDocumentRepository struct {
	db *gorm.DB
}

func NewSQLiteDocumentRepository(db *gorm.DB) DocumentRepository {
	return &SQLiteDocumentRepository{db}
}

func (repo *SQLiteDocumentRepository) Create(document *entity.Document) error {
	return repo.db.Create(document).Error
}

func (repo *SQLiteDocumentRepository) SoftDelete(uuid string) error {
	return repo.db.Where("UUID = ?", uuid).Delete(&entity.Document{}).Error
}

func (repo *SQLiteDocumentRepository) GetByUUID(uuid string) (*entity.Document, error) {
	var document entity.Document
	err := repo.db.Where("UUID = ?", uuid).First(&document).Error
	return &document, err
}

func (repo *SQLiteDocumentRepository) GetByOwner(owner string) ([]*entity.Document, error) {
	var documents []*entity.Document
	err := repo.db.Where("owner_uuid = ?", owner).Order("updated_at DESC").Find(&documents).Error
	return documents, err
}

func (repo *SQLiteDocumentRepository) Rename(uuid, title string) error {
	res := repo.db.Model(&entity.Document{}).Where("UUID = ?", uuid).Update("title", title)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (repo *SQLiteDocumentRepository) ReplaceContent(uuid, content string) error {
	res := repo.db.Model(&entity.Document{}).Where("UUID = ?", uuid).Update("content", content)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
