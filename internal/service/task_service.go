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

// Service used to handle the task tracking of the portal
type TaskService interface {
	CreateTask(owner *entity.User, title, description string, dueAt *time.Time) (*entity.Task, error) // Creates a task for the given user
	GetOwnTasks(owner *entity.User) ([]*entity.Task, error)                                           // Returns the tasks of the given user
	GetTask(uuid string) (*entity.Task, error)                                                        // Returns the task with the given uuid
	MoveTask(uuid, status string) (*entity.Task, error)                                               // Changes the status of the task (open, doing, done)
	DeleteTask(uuid string) error                                                                     // Deletes the task with the given uuid
}

type localTaskService struct {
	taskRepository repository.TaskRepository
	logger         logging.Logger
}

func NewTaskService(taskRepo repository.TaskRepository, logger logging.Logger) TaskService {
	return &localTaskService{
		taskRepository: taskRepo,
		logger:         logger,
	}
}

func (s *localTaskService) Logf(format string, v ...any) {
	s.logger.Logf(format, v...)
}

func validStatus(status string) bool {
	switch status {
	case entity.TaskStatusOpen, entity.TaskStatusDoing, entity.TaskStatusDone:
		return true
	}
	return false
}

func (s *localTaskService) CreateTask(owner *entity.User, title, description string, dueAt *time.Time) (*entity.Task, error) {
	if title == "" {
		return nil, fmt.Errorf("A task needs a title")
	}

	t := &entity.Task{
		UUID:        uuid.New().String(),
		OwnerUUID:   owner.UUID,
		Title:       title,
		Description: description,
		Status:      entity.TaskStatusOpen,
		DueAt:       dueAt,
		CreatedAt:   time.Now(),
	}
	if err := s.taskRepository.Create(t); err != nil {
		return nil, err
	}

	s.Logf("Task {%s} created by {%s}", t.UUID, owner.Username)
	return t, nil
}

func (s *localTaskService) GetOwnTasks(owner *entity.User) ([]*entity.Task, error) {
	return s.taskRepository.GetByOwner(owner.UUID)
}

func (s *localTaskService) GetTask(uuid string) (*entity.Task, error) {
	return s.taskRepository.GetByUUID(uuid)
}

func (s *localTaskService) MoveTask(uuid, status string) (*entity.Task, error) {
	if !validStatus(status) {
		return nil, fmt.Errorf("The status {%s} is not one of open, doing, done", status)
	}

	t, err := s.taskRepository.GetByUUID(uuid)
	if err != nil {
		return nil, err
	}

	t.Status = status
	if err := s.taskRepository.Update(t); err != nil {
		return nil, err
	}

	s.Logf("Task {%s} moved to {%s}", uuid, status)
	return t, nil
}

func (s *localTaskService) DeleteTask(uuid string) error {
	s.Logf("Task {%s} deleted", uuid)
	return s.taskRepository.SoftDelete(uuid)
}
