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
	"testing"

	"portal/internal/entity"
)

type MockTaskRepo struct {
	byUUID  map[string]*entity.Task
	updated *entity.Task
}

func (m *MockTaskRepo) Create(task *entity.Task) error { return nil }
func (m *MockTaskRepo) SoftDelete(uuid string) error   { return nil }
func (m *MockTaskRepo) GetByUUID(uuid string) (*entity.Task, error) {
	if t, ok := m.byUUID[uuid]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("record not found")
}
func (m *MockTaskRepo) GetByOwner(owner string) ([]*entity.Task, error) { return nil, nil }
func (m *MockTaskRepo) Update(task *entity.Task) error {
	m.updated = task
	return nil
}

func TestCreateTaskStartsOpen(t *testing.T) {
	s := NewTaskService(&MockTaskRepo{}, &MockLogger{})
	owner := &entity.User{UUID: "u1", Username: "alice"}

	task, err := s.CreateTask(owner, "Write the report", "", nil)
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.Status != entity.TaskStatusOpen {
		t.Errorf("A new task must start open, got %s", task.Status)
	}
	if task.OwnerUUID != "u1" {
		t.Errorf("Expected the owner attached, got %s", task.OwnerUUID)
	}
}

func TestCreateTaskNeedsATitle(t *testing.T) {
	s := NewTaskService(&MockTaskRepo{}, &MockLogger{})

	if _, err := s.CreateTask(&entity.User{UUID: "u1"}, "", "", nil); err == nil {
		t.Errorf("Expected an error for a missing title")
	}
}

func TestMoveTaskChangesTheStatus(t *testing.T) {
	repo := &MockTaskRepo{byUUID: map[string]*entity.Task{
		"t1": {UUID: "t1", Status: entity.TaskStatusOpen},
	}}
	s := NewTaskService(repo, &MockLogger{})

	task, err := s.MoveTask("t1", entity.TaskStatusDoing)
	if err != nil {
		t.Fatalf("MoveTask failed: %v", err)
	}
	if task.Status != entity.TaskStatusDoing {
		t.Errorf("Expected doing, got %s", task.Status)
	}
	if repo.updated == nil {
		t.Errorf("The change never reached the repository")
	}
}

func TestMoveTaskRejectsUnknownStatus(t *testing.T) {
	s := NewTaskService(&MockTaskRepo{}, &MockLogger{})

	_, err := s.MoveTask("t1", "paused")
	if err == nil {
		t.Fatalf("Expected an error for an unknown status")
	}
	if err.Error() != "The status {paused} is not one of open, doing, done" {
		t.Errorf("Unexpected error message: %q", err.Error())
	}
}
