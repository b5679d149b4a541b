/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package hub

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"portal/internal/entity"
)

type MockLogger struct{}

func (m *MockLogger) Logf(format string, v ...any) {
	fmt.Printf(format+"\n", v)
}

// fakeSocket is an in-memory Socket. Frames pushed on inbound come out of
// ReadMessage, frames the hub writes land on outbound
type fakeSocket struct {
	inbound  chan []byte
	outbound chan []byte

	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeSocket() *fakeSocket {
	return &fakeSocket{
		inbound:  make(chan []byte, 16),
		outbound: make(chan []byte, 64),
		closed:   make(chan struct{}),
	}
}

func (s *fakeSocket) ReadMessage() (int, []byte, error) {
	select {
	case data := <-s.inbound:
		return 1, data, nil
	case <-s.closed:
		return 0, nil, errors.New("socket closed")
	}
}

func (s *fakeSocket) WriteMessage(messageType int, data []byte) error {
	select {
	case <-s.closed:
		return errors.New("socket closed")
	case s.outbound <- data:
		return nil
	}
}

func (s *fakeSocket) Close() error {
	s.closeOnce.Do(func() { close(s.closed) })
	return nil
}

func (s *fakeSocket) push(t *testing.T, frame any) {
	t.Helper()
	data, err := json.Marshal(frame)
	if err != nil {
		t.Fatalf("Could not marshal the test frame: %v", err)
	}
	s.inbound <- data
}

// waitFrame blocks until the hub writes a frame to the socket
func waitFrame(t *testing.T, s *fakeSocket) map[string]any {
	t.Helper()
	select {
	case data := <-s.outbound:
		var m map[string]any
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatalf("The hub wrote a frame that is not JSON: %v", err)
		}
		return m
	case <-time.After(2 * time.Second):
		t.Fatalf("Timed out waiting for a frame")
	}
	return nil
}

// waitFrameOfKind discards frames until one of the wanted kind arrives
func waitFrameOfKind(t *testing.T, s *fakeSocket, kind string) map[string]any {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case data := <-s.outbound:
			var m map[string]any
			if err := json.Unmarshal(data, &m); err != nil {
				t.Fatalf("The hub wrote a frame that is not JSON: %v", err)
			}
			if m["kind"] == kind {
				return m
			}
		case <-deadline:
			t.Fatalf("Timed out waiting for a %q frame", kind)
		}
	}
}

// expectNoFrame asserts that nothing reaches the socket for a short while
func expectNoFrame(t *testing.T, s *fakeSocket) {
	t.Helper()
	select {
	case data := <-s.outbound:
		t.Errorf("Expected no frame, got %s", string(data))
	case <-time.After(100 * time.Millisecond):
	}
}

// MemoryStore is an in-memory CollabStore with switchable failures
type MemoryStore struct {
	mu        sync.Mutex
	nextID    uint64
	messages  map[string][]*entity.ChatMessage
	documents map[string]string

	failAppend  bool
	failRecent  bool
	failReplace bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		messages:  make(map[string][]*entity.ChatMessage),
		documents: make(map[string]string),
	}
}

func (s *MemoryStore) AppendChatMessage(documentID, userID, displayName, content string, clientTime time.Time) (*entity.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAppend {
		return nil, errors.New("store unavailable")
	}
	s.nextID++
	m := &entity.ChatMessage{
		ID:           s.nextID,
		DocumentUUID: documentID,
		SenderUUID:   userID,
		SenderName:   displayName,
		Content:      content,
		ClientTime:   clientTime,
		CreatedAt:    time.Now(),
	}
	s.messages[documentID] = append(s.messages[documentID], m)
	return m, nil
}

func (s *MemoryStore) RecentMessages(documentID string, limit int) ([]*entity.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failRecent {
		return nil, errors.New("store unavailable")
	}
	all := s.messages[documentID]
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	out := make([]*entity.ChatMessage, len(all))
	copy(out, all)
	return out, nil
}

func (s *MemoryStore) ReplaceDocumentContent(documentID, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failReplace {
		return errors.New("store unavailable")
	}
	if _, ok := s.documents[documentID]; !ok {
		return ErrNotFound
	}
	s.documents[documentID] = content
	return nil
}

func (s *MemoryStore) FailAppend(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAppend = fail
}

func (s *MemoryStore) FailRecent(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failRecent = fail
}

func (s *MemoryStore) FailReplace(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failReplace = fail
}

func (s *MemoryStore) SeedDocument(documentID, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[documentID] = content
}

func (s *MemoryStore) DocumentContent(documentID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.documents[documentID]
}

func (s *MemoryStore) MessageCount(documentID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages[documentID])
}

// newTestHub wires a full hub around the given store
func newTestHub(store CollabStore, opts Options) (*Dispatcher, *Registry, *RoomManager, *Router) {
	logger := &MockLogger{}
	router := NewRouter(logger)
	rooms := NewRoomManager(store, router, opts.HistoryLimit, logger)
	router.SetMemberSource(rooms)
	registry := NewRegistry(logger)
	dispatcher := NewDispatcher(registry, rooms, router, store, opts, logger)
	return dispatcher, registry, rooms, router
}
