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

// This repository is used to manipulate the tasks of the portal
type TaskRepository interface {
	Create(task *entity.Task) error // Inserts a task in the repository

	SoftDelete(uuid string) error // Soft deletes the task

	GetByUUID(uuid string) (*entity.Task, error)     // Retrieves the task with the given uuid
	GetByOwner(owner string) ([]*entity.Task, error) // Retrieves the tasks of the given user, newest first

	Update(task *entity.Task) error // Saves the changed fields of the task
}

// Implementation of the repository using a SQLite DB
type SQLiteTaskRepository struct {
	db *gorm.DB
}

func NewSQLiteTaskRepository(db *gorm.DB) TaskRepository {
	return &SQLiteTaskRepository{db}
}

func (repo *SQLiteTaskRepository) Create(task *entity.Task) error {
	return repo.db.Create(task).Error
}

func (repo *SQLiteTaskRepository) SoftDelete(uuid string) error {
	return repo.db.Where("UUID = ?", uuid).Delete(&entity.Task{}).Error
}

func (repo *SQLiteTaskRepository) GetByUUID(uuid string) (*entity.Task, error) {
	var task entity.Task
	err := repo.db.Where("UUID = ?", uuid).First(&task).Error
	return &task, err
}

func (repo *SQLiteTaskRepository) GetByOwner(owner string) ([]*entity.Task, error) {
	var tasks []*entity.Task
	err := repo.db.Where("owner_uuid = ?", owner).Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (repo *SQLiteTaskRepository) Update(task *entity.Task) error {
	return repo.db.Save(task).Error
}
