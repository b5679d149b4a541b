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

// This repository is used to manipulate the users in the system. It allows CR_D (Create, Read and Delete operations) on the users
type UserRepository interface {
	Create(user *entity.User) error // Inserts a user in the repository, together with its secret

	SoftDelete(uuid string) error // Soft deletes the user (the record remains, it's just marked deleted)

	GetForLogin(username string) (*entity.User, error) // Retrieves the user with given username, WITH its hashed password, hence, used for login.

	GetByUUID(uuid string) (*entity.User, error)         // Retrieves the user with the given uuid.
	GetByUsername(username string) (*entity.User, error) // Retrieves the user with the given username.
	GetAll() ([]*entity.User, error)                     // Retrieves all the users, without their secret
}

// Implementation of the repository using a SQLite DB
type SQLiteUserRepository struct {
	db *gorm.DB
}

func NewSQLiteUserRepository(db *gorm.DB) UserRepository {
	return &SQLiteUserRepository{db}
}

func (repo *SQLiteUserRepository) Create(user *entity.User) error {
	return repo.db.Create(user).Error
}

func (repo *SQLiteUserRepository) SoftDelete(uuid string) error {
	return repo.db.Where("UUID = ?", uuid).Delete(&entity.User{}).Error
}

func (repo *SQLiteUserRepository) GetForLogin(username string) (*entity.User, error) {
	var user entity.User
	if err := repo.db.Preload("Secret").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (repo *SQLiteUserRepository) GetByUUID(uuid string) (*entity.User, error) {
	var user entity.User
	err := repo.db.Where("UUID = ?", uuid).First(&user).Error
	return &user, err
}

func (repo *SQLiteUserRepository) GetByUsername(username string) (*entity.User, error) {
	var user entity.User
	err := repo.db.Where("username = ?", username).First(&user).Error
	return &user, err
}

func (repo *SQLiteUserRepository) GetAll() ([]*entity.User, error) {
	var users []*entity.User
	err := repo.db.Find(&users).Error
	return users, err
}
