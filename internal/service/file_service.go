/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"portal/internal/entity"
	"portal/internal/logging"
	"portal/internal/repository"

	"github.com/google/uuid"
)

// Service used to handle file uploads. Metadata goes through the repository,
// the bytes are written under the upload directory, named after the UUID
type FileService interface {
	SaveFile(owner *entity.User, name string, src io.Reader) (*entity.StoredFile, error) // Stores an uploaded file
	GetOwnFiles(owner *entity.User) ([]*entity.StoredFile, error)                        // Returns the files of the given user
	OpenFile(uuid string) (*entity.StoredFile, *os.File, error)                          // Opens the stored bytes for download, the caller closes the handle
	DeleteFile(uuid string) error                                                        // Deletes the record and the bytes
}

type localFileService struct {
	fileRepository repository.FileRepository
	directory      string
	logger         logging.Logger
}

func NewFileService(fileRepo repository.FileRepository, directory string, logger logging.Logger) (FileService, error) {
	if err := os.MkdirAll(directory, 0755); err != nil {
		return nil, err
	}
	return &localFileService{
		fileRepository: fileRepo,
		directory:      directory,
		logger:         logger,
	}, nil
}

func (s *localFileService) Logf(format string, v ...any) {
	s.logger.Logf(format, v...)
}

func (s *localFileService) SaveFile(owner *entity.User, name string, src io.Reader) (*entity.StoredFile, error) {
	id := uuid.New().String()

	dst, err := os.Create(filepath.Join(s.directory, id))
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(dst.Name())
		return nil, err
	}

	f := &entity.StoredFile{
		UUID:      id,
		OwnerUUID: owner.UUID,
		Name:      filepath.Base(name),
		Size:      size,
		CreatedAt: time.Now(),
	}
	if err := s.fileRepository.Create(f); err != nil {
		os.Remove(dst.Name())
		return nil, err
	}

	s.Logf("File {%s} ({%d} bytes) uploaded by {%s}", f.Name, size, owner.Username)
	return f, nil
}

func (s *localFileService) GetOwnFiles(owner *entity.User) ([]*entity.StoredFile, error) {
	return s.fileRepository.GetByOwner(owner.UUID)
}

func (s *localFileService) OpenFile(uuid string) (*entity.StoredFile, *os.File, error) {
	f, err := s.fileRepository.GetByUUID(uuid)
	if err != nil {
		return nil, nil, err
	}
	handle, err := os.Open(filepath.Join(s.directory, f.UUID))
	if err != nil {
		return nil, nil, err
	}
	return f, handle, nil
}

func (s *localFileService) DeleteFile(uuid string) error {
	if err := s.fileRepository.SoftDelete(uuid); err != nil {
		return err
	}
	os.Remove(filepath.Join(s.directory, uuid))
	s.Logf("File {%s} deleted", uuid)
	return nil
}
