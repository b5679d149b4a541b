/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package hub

import (
	"testing"
	"time"
)

// client drives one end-to-end connection through the dispatcher
type client struct {
	sock *fakeSocket
	done chan struct{}
}

func startClient(d *Dispatcher) *client {
	sock := newFakeSocket()
	done := make(chan struct{})
	go func() {
		d.ServeConn(sock)
		close(done)
	}()
	return &client{sock: sock, done: done}
}

// join identifies the client into a document room and waits for the history
// replay, the sync point after which the membership is visible
func (c *client) join(t *testing.T, userID, name, documentID string) map[string]any {
	t.Helper()
	c.sock.push(t, map[string]any{
		"kind":        KindIdentify,
		"userId":      userID,
		"displayName": name,
		"documentId":  documentID,
	})
	return waitFrameOfKind(t, c.sock, KindHistory)
}

func (c *client) waitClosed(t *testing.T) {
	t.Helper()
	select {
	case <-c.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Expected the connection to be closed")
	}
}

func TestIdentifyWithDocumentReplaysHistory(t *testing.T) {
	store := NewMemoryStore()
	store.AppendChatMessage("doc", "u1", "Alice", "first", time.Time{})
	store.AppendChatMessage("doc", "u1", "Alice", "second", time.Time{})

	d, _, _, _ := newTestHub(store, Options{})
	a := startClient(d)

	history := a.join(t, "u2", "Bob", "doc")
	messages := history["messages"].([]any)
	if len(messages) != 2 {
		t.Fatalf("Expected 2 replayed messages, got %d", len(messages))
	}

	first := messages[0].(map[string]any)
	second := messages[1].(map[string]any)
	if first["content"] != "first" || second["content"] != "second" {
		t.Errorf("History must be oldest first, got {%v %v}", first["content"], second["content"])
	}
	if first["id"].(float64) >= second["id"].(float64) {
		t.Errorf("Ids must ascend through the replay")
	}
}

func TestJoinBeforeIdentifyClosesAfterThreshold(t *testing.T) {
	d, _, _, _ := newTestHub(NewMemoryStore(), Options{MaxViolations: 1})
	a := startClient(d)

	a.sock.push(t, map[string]any{"kind": KindJoin, "documentId": "doc"})
	a.waitClosed(t)
}

func TestSecondIdentifyKeepsTheFirst(t *testing.T) {
	d, _, _, _ := newTestHub(NewMemoryStore(), Options{})
	a := startClient(d)
	b := startClient(d)

	a.join(t, "u1", "Alice", "doc")
	a.sock.push(t, map[string]any{
		"kind":        KindIdentify,
		"userId":      "u9",
		"displayName": "Mallory",
	})

	// The roster another joiner sees still carries the original name
	b.join(t, "u2", "Bob", "doc")
	frame := waitFrameOfKind(t, b.sock, KindPresence)
	for _, name := range frame["members"].([]any) {
		if name == "Mallory" {
			t.Errorf("The second identify frame must not rename the user")
		}
	}
}

func TestChatIsPersistedThenBroadcastToTheWholeRoom(t *testing.T) {
	store := NewMemoryStore()
	d, _, _, _ := newTestHub(store, Options{})
	a := startClient(d)
	b := startClient(d)

	a.join(t, "u1", "Alice", "doc")
	b.join(t, "u2", "Bob", "doc")

	a.sock.push(t, map[string]any{"kind": KindChat, "content": "hello"})

	// Sender included
	got := waitFrameOfKind(t, a.sock, KindChat)
	if got["content"] != "hello" || got["displayName"] != "Alice" {
		t.Errorf("Unexpected chat frame %v", got)
	}
	waitFrameOfKind(t, b.sock, KindChat)

	if store.MessageCount("doc") != 1 {
		t.Errorf("Expected 1 persisted message, got %d", store.MessageCount("doc"))
	}
}

func TestChatFailureStaysPrivate(t *testing.T) {
	store := NewMemoryStore()
	d, _, _, _ := newTestHub(store, Options{})
	a := startClient(d)
	b := startClient(d)

	a.join(t, "u1", "Alice", "doc")
	b.join(t, "u2", "Bob", "doc")
	waitFrameOfKind(t, b.sock, KindPresence)

	store.FailAppend(true)
	a.sock.push(t, map[string]any{"kind": KindChat, "content": "hello"})

	// Only the sender learns about the failure
	frame := waitFrameOfKind(t, a.sock, KindError)
	if frame["reason"] == "" {
		t.Errorf("Expected a reason on the error frame")
	}
	expectNoFrame(t, b.sock)

	if store.MessageCount("doc") != 0 {
		t.Errorf("A failed message must not be stored")
	}
}

func TestClientTimestampIsEchoedForDisplay(t *testing.T) {
	store := NewMemoryStore()
	d, _, _, _ := newTestHub(store, Options{})
	a := startClient(d)

	a.join(t, "u1", "Alice", "doc")
	a.sock.push(t, map[string]any{"kind": KindChat, "content": "hi", "timestamp": 123456})

	frame := waitFrameOfKind(t, a.sock, KindChat)
	if int64(frame["timestamp"].(float64)) != 123456 {
		t.Errorf("Expected the client clock echoed back, got %v", frame["timestamp"])
	}
}

func TestEditSkipsTheEditor(t *testing.T) {
	store := NewMemoryStore()
	store.SeedDocument("doc", "old")
	d, _, _, _ := newTestHub(store, Options{})
	a := startClient(d)
	b := startClient(d)

	a.join(t, "u1", "Alice", "doc")
	b.join(t, "u2", "Bob", "doc")
	waitFrameOfKind(t, a.sock, KindPresence)

	a.sock.push(t, map[string]any{"kind": KindEdit, "content": "new text"})

	frame := waitFrameOfKind(t, b.sock, KindEdit)
	if frame["content"] != "new text" {
		t.Errorf("Expected the replacement text, got %v", frame["content"])
	}
	expectNoFrame(t, a.sock)

	if store.DocumentContent("doc") != "new text" {
		t.Errorf("Expected the content replaced, got %q", store.DocumentContent("doc"))
	}
}

func TestLastEditWinsInTheStore(t *testing.T) {
	store := NewMemoryStore()
	store.SeedDocument("doc", "old")
	d, _, _, _ := newTestHub(store, Options{})
	a := startClient(d)
	b := startClient(d)

	a.join(t, "u1", "Alice", "doc")
	b.join(t, "u2", "Bob", "doc")
	waitFrameOfKind(t, a.sock, KindPresence)

	a.sock.push(t, map[string]any{"kind": KindEdit, "content": "Alice's draft"})
	frame := waitFrameOfKind(t, b.sock, KindEdit)
	if frame["content"] != "Alice's draft" {
		t.Errorf("Expected Alice's draft relayed, got %v", frame["content"])
	}

	b.sock.push(t, map[string]any{"kind": KindEdit, "content": "Bob's rewrite"})
	frame = waitFrameOfKind(t, a.sock, KindEdit)
	if frame["content"] != "Bob's rewrite" {
		t.Errorf("Expected Bob's rewrite relayed, got %v", frame["content"])
	}

	// Whole-content replacement: the later write is the document
	if got := store.DocumentContent("doc"); got != "Bob's rewrite" {
		t.Errorf("Expected the last edit to win, got %q", got)
	}
}

func TestEditOnVanishedDocumentIsDropped(t *testing.T) {
	store := NewMemoryStore()
	d, _, _, _ := newTestHub(store, Options{})
	a := startClient(d)
	b := startClient(d)

	a.join(t, "u1", "Alice", "doc")
	b.join(t, "u2", "Bob", "doc")
	waitFrameOfKind(t, a.sock, KindPresence)

	// The document row does not exist: a benign race, nobody is told
	a.sock.push(t, map[string]any{"kind": KindEdit, "content": "new text"})
	expectNoFrame(t, a.sock)
	expectNoFrame(t, b.sock)
}

func TestEditFailureIsReportedToTheEditor(t *testing.T) {
	store := NewMemoryStore()
	store.SeedDocument("doc", "old")
	store.FailReplace(true)
	d, _, _, _ := newTestHub(store, Options{})
	a := startClient(d)
	b := startClient(d)

	a.join(t, "u1", "Alice", "doc")
	b.join(t, "u2", "Bob", "doc")
	waitFrameOfKind(t, b.sock, KindPresence)

	a.sock.push(t, map[string]any{"kind": KindEdit, "content": "new text"})

	waitFrameOfKind(t, a.sock, KindError)
	expectNoFrame(t, b.sock)
}

func TestCursorIsRelayedAndNeverStored(t *testing.T) {
	store := NewMemoryStore()
	d, _, _, _ := newTestHub(store, Options{})
	a := startClient(d)
	b := startClient(d)

	a.join(t, "u1", "Alice", "doc")
	b.join(t, "u2", "Bob", "doc")
	waitFrameOfKind(t, a.sock, KindPresence)

	a.sock.push(t, map[string]any{
		"kind":     KindCursor,
		"position": map[string]int{"line": 4, "column": 12},
	})

	frame := waitFrameOfKind(t, b.sock, KindCursor)
	pos := frame["position"].(map[string]any)
	if pos["line"].(float64) != 4 || pos["column"].(float64) != 12 {
		t.Errorf("Unexpected position %v", pos)
	}
	if frame["displayName"] != "Alice" {
		t.Errorf("Expected the sender's name on the cursor frame, got %v", frame["displayName"])
	}
	expectNoFrame(t, a.sock)

	if store.MessageCount("doc") != 0 {
		t.Errorf("Cursor traffic must not be persisted")
	}
}

func TestDisconnectUpdatesThePresenceRoster(t *testing.T) {
	store := NewMemoryStore()
	d, _, rooms, _ := newTestHub(store, Options{})
	a := startClient(d)
	b := startClient(d)

	a.join(t, "u1", "Alice", "doc")
	b.join(t, "u2", "Bob", "doc")
	waitFrameOfKind(t, b.sock, KindPresence)

	a.sock.Close()
	a.waitClosed(t)

	frame := waitFrameOfKind(t, b.sock, KindPresence)
	members := frame["members"].([]any)
	if len(members) != 1 || members[0] != "Bob" {
		t.Errorf("Expected the roster to shrink to [Bob], got %v", members)
	}
	if got := len(rooms.Members("doc")); got != 1 {
		t.Errorf("Expected 1 member after the disconnect, got %d", got)
	}
}

func TestMalformedFramesCloseAfterThreshold(t *testing.T) {
	d, registry, _, _ := newTestHub(NewMemoryStore(), Options{MaxViolations: 2})
	a := startClient(d)

	a.sock.inbound <- []byte("this is not json")
	a.sock.inbound <- []byte(`{"content":"no kind"}`)
	a.waitClosed(t)

	if registry.Count() != 0 {
		t.Errorf("Expected the registry emptied, got %d connections", registry.Count())
	}
}

func TestOneMalformedFrameIsForgiven(t *testing.T) {
	store := NewMemoryStore()
	d, _, _, _ := newTestHub(store, Options{MaxViolations: 2})
	a := startClient(d)

	a.join(t, "u1", "Alice", "doc")
	a.sock.inbound <- []byte("this is not json")

	// Below the threshold the connection survives and keeps working
	a.sock.push(t, map[string]any{"kind": KindChat, "content": "still here"})
	frame := waitFrameOfKind(t, a.sock, KindChat)
	if frame["content"] != "still here" {
		t.Errorf("Expected the chat frame after the bad one, got %v", frame["content"])
	}
	if store.MessageCount("doc") != 1 {
		t.Errorf("Expected 1 persisted message, got %d", store.MessageCount("doc"))
	}
}

func TestServerOnlyKindsAreViolations(t *testing.T) {
	d, _, _, _ := newTestHub(NewMemoryStore(), Options{MaxViolations: 1})
	a := startClient(d)

	a.sock.push(t, map[string]any{"kind": KindPresence, "members": []string{"ghost"}})
	a.waitClosed(t)
}

func TestChatArrivesInSendOrder(t *testing.T) {
	store := NewMemoryStore()
	d, _, _, _ := newTestHub(store, Options{})
	a := startClient(d)
	b := startClient(d)

	a.join(t, "u1", "Alice", "doc")
	b.join(t, "u2", "Bob", "doc")

	for _, content := range []string{"one", "two", "three"} {
		a.sock.push(t, map[string]any{"kind": KindChat, "content": content})
	}

	lastID := float64(0)
	for _, want := range []string{"one", "two", "three"} {
		frame := waitFrameOfKind(t, b.sock, KindChat)
		if frame["content"] != want {
			t.Errorf("Expected %q, got %v", want, frame["content"])
		}
		if id := frame["id"].(float64); id <= lastID {
			t.Errorf("Ids must ascend, got %v after %v", id, lastID)
		} else {
			lastID = id
		}
	}
}

func TestLateJoinerReplaysWhatHappenedBefore(t *testing.T) {
	store := NewMemoryStore()
	d, _, _, _ := newTestHub(store, Options{})
	a := startClient(d)

	a.join(t, "u1", "Alice", "doc")
	a.sock.push(t, map[string]any{"kind": KindChat, "content": "hello"})
	waitFrameOfKind(t, a.sock, KindChat)

	// B joins after the fact and still sees the message
	b := startClient(d)
	history := b.join(t, "u2", "Bob", "doc")
	messages := history["messages"].([]any)
	if len(messages) != 1 {
		t.Fatalf("Expected 1 replayed message, got %d", len(messages))
	}
	if messages[0].(map[string]any)["content"] != "hello" {
		t.Errorf("Expected the earlier message in the replay")
	}

	// And the reply reaches A live
	b.sock.push(t, map[string]any{"kind": KindChat, "content": "hi Alice"})
	frame := waitFrameOfKind(t, a.sock, KindChat)
	if frame["content"] != "hi Alice" {
		t.Errorf("Expected the reply broadcast, got %v", frame["content"])
	}
}
