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

// staticMembers is a fixed membership for router tests
type staticMembers struct {
	byRoom map[string][]*Connection
}

func (s *staticMembers) Members(documentID string) []*Connection {
	return s.byRoom[documentID]
}

func TestBroadcastExcludesOneConnection(t *testing.T) {
	a, sockA := member("a", "u1", "Alice")
	b, sockB := member("b", "u2", "Bob")

	router := NewRouter(&MockLogger{})
	router.SetMemberSource(&staticMembers{byRoom: map[string][]*Connection{
		"doc": {a, b},
	}})

	router.Broadcast("doc", []byte(`{"kind":"edit"}`), "a")

	waitFrameOfKind(t, sockB, KindEdit)
	expectNoFrame(t, sockA)
}

func TestBroadcastReachesEveryoneWhenNoExclusion(t *testing.T) {
	a, sockA := member("a", "u1", "Alice")
	b, sockB := member("b", "u2", "Bob")

	router := NewRouter(&MockLogger{})
	router.SetMemberSource(&staticMembers{byRoom: map[string][]*Connection{
		"doc": {a, b},
	}})

	router.Broadcast("doc", []byte(`{"kind":"chat"}`), "")

	waitFrameOfKind(t, sockA, KindChat)
	waitFrameOfKind(t, sockB, KindChat)
}

func TestBroadcastDoesNotCrossRooms(t *testing.T) {
	a, _ := member("a", "u1", "Alice")
	b, sockB := member("b", "u2", "Bob")

	router := NewRouter(&MockLogger{})
	router.SetMemberSource(&staticMembers{byRoom: map[string][]*Connection{
		"doc1": {a},
		"doc2": {b},
	}})

	router.Broadcast("doc1", []byte(`{"kind":"chat"}`), "")
	expectNoFrame(t, sockB)
}

func TestSlowConsumerIsClosedAlone(t *testing.T) {
	// b has a queue of one and no write pump draining it
	a, sockA := member("a", "u1", "Alice")
	b := newConnection("b", newFakeSocket(), 1)
	b.setIdentity("u2", "Bob")

	router := NewRouter(&MockLogger{})
	router.SetMemberSource(&staticMembers{byRoom: map[string][]*Connection{
		"doc": {a, b},
	}})

	router.Broadcast("doc", []byte(`{"kind":"chat"}`), "")
	router.Broadcast("doc", []byte(`{"kind":"chat"}`), "")

	// The laggard is torn down
	select {
	case <-b.done:
	case <-time.After(time.Second):
		t.Fatalf("Expected the slow consumer to be closed")
	}

	// The healthy peer got both payloads
	waitFrameOfKind(t, sockA, KindChat)
	waitFrameOfKind(t, sockA, KindChat)
}

func TestDeliveryOrderIsPreservedPerConnection(t *testing.T) {
	a, sockA := member("a", "u1", "Alice")

	router := NewRouter(&MockLogger{})
	router.SetMemberSource(&staticMembers{byRoom: map[string][]*Connection{
		"doc": {a},
	}})

	router.Broadcast("doc", []byte(`{"kind":"chat","id":1}`), "")
	router.Broadcast("doc", []byte(`{"kind":"chat","id":2}`), "")
	router.Broadcast("doc", []byte(`{"kind":"chat","id":3}`), "")

	for want := 1; want <= 3; want++ {
		frame := waitFrame(t, sockA)
		if got := int(frame["id"].(float64)); got != want {
			t.Errorf("Expected frame %d, got %d", want, got)
		}
	}
}
