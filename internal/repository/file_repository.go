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

// This repository holds the metadata of the uploaded files. The bytes live on disk
type FileRepository interface {
	Create(file *entity.StoredFile) error // Inserts a file record

	SoftDelete(uuid string) error // Soft deletes the record (the bytes on disk are left to a cleanup job)

	GetByUUID(uuid string) (*entity.StoredFile, error)     // Retrieves the record with the given uuid
	GetByOwner(owner string) ([]*entity.StoredFile, error) // Retrieves the records of the given user, newest first
}

// Implementation of the repository using a SQLite DB
type SQLiteFileRepository struct {
	db *gorm.DB
}

func NewSQLiteFileRepository(db *gorm.DB) FileRepository {
	return &SQLiteFileRepository{db}
}

func (repo *SQLiteFileRepository) Create(file *entity.StoredFile) error {
	return repo.db.Create(file).Error
}

func (repo *SQLiteFileRepository) SoftDelete(uuid string) error {
	return repo.db.Where("UUID = ?", uuid).Delete(&entity.StoredFile{}).Error
}

func (repo *SQLiteFileRepository) GetByUUID(uuid string) (*entity.StoredFile, error) {
	var file entity.StoredFile
	err := repo.db.Where("UUID = ?", uuid).First(&file).Error
	return &file, err
}

func (repo *SQLiteFileRepository) GetByOwner(owner string) ([]*entity.StoredFile, error) {
	var files []*entity.StoredFile
	err := repo.db.Where("owner_uuid = ?", owner).Order("created_at DESC").Find(&files).Error
	return files, err
}
