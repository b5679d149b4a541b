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
	"testing"
	"time"

	"portal/internal/entity"
	"portal/internal/hub"

	"gorm.io/gorm"
)

type MockMessageRepo struct {
	created *entity.ChatMessage
	recent  []*entity.ChatMessage
}

func (m *MockMessageRepo) Create(message *entity.ChatMessage) error {
	message.ID = 42
	m.created = message
	return nil
}
func (m *MockMessageRepo) Recent(documentUUID string, limit int) ([]*entity.ChatMessage, error) {
	return m.recent, nil
}
func (m *MockMessageRepo) GetAll() ([]*entity.ChatMessage, error) { return nil, nil }

type MockDocumentRepo struct {
	replaceErr error
	content    string
}

func (m *MockDocumentRepo) Create(document *entity.Document) error           { return nil }
func (m *MockDocumentRepo) SoftDelete(uuid string) error                     { return nil }
func (m *MockDocumentRepo) GetByUUID(uuid string) (*entity.Document, error)  { return nil, nil }
func (m *MockDocumentRepo) GetByOwner(owner string) ([]*entity.Document, error) {
	return nil, nil
}
func (m *MockDocumentRepo) Rename(uuid, title string) error { return nil }
func (m *MockDocumentRepo) ReplaceContent(uuid, content string) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.content = content
	return nil
}

func TestAppendChatMessageCarriesTheAssignedID(t *testing.T) {
	repo := &MockMessageRepo{}
	store := NewCollabStore(repo, &MockDocumentRepo{}, &MockLogger{})

	m, err := store.AppendChatMessage("doc", "u1", "Alice", "hello", time.Time{})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if m.ID != 42 {
		t.Errorf("Expected the id assigned by the database, got %d", m.ID)
	}
	if repo.created.DocumentUUID != "doc" || repo.created.Content != "hello" {
		t.Errorf("The message fields did not reach the repository")
	}
	if repo.created.CreatedAt.IsZero() {
		t.Errorf("Expected a server timestamp on the message")
	}
}

func TestReplaceContentTranslatesNotFound(t *testing.T) {
	docs := &MockDocumentRepo{replaceErr: gorm.ErrRecordNotFound}
	store := NewCollabStore(&MockMessageRepo{}, docs, &MockLogger{})

	err := store.ReplaceDocumentContent("doc", "text")
	if !errors.Is(err, hub.ErrNotFound) {
		t.Errorf("Expected hub.ErrNotFound, got %v", err)
	}
}

func TestReplaceContentPassesOtherErrorsThrough(t *testing.T) {
	docs := &MockDocumentRepo{replaceErr: errors.New("disk full")}
	store := NewCollabStore(&MockMessageRepo{}, docs, &MockLogger{})

	err := store.ReplaceDocumentContent("doc", "text")
	if errors.Is(err, hub.ErrNotFound) || err == nil {
		t.Errorf("Expected the raw error, got %v", err)
	}
}

func TestReplaceContentWrites(t *testing.T) {
	docs := &MockDocumentRepo{}
	store := NewCollabStore(&MockMessageRepo{}, docs, &MockLogger{})

	if err := store.ReplaceDocumentContent("doc", "new text"); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if docs.content != "new text" {
		t.Errorf("Expected the content written, got %q", docs.content)
	}
}
