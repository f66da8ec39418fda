package realtime

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func testSession(buffer int) *Session {
	return &Session{
		ID:   "test-session",
		send: make(chan []byte, buffer),
	}
}

func TestRegistryJoinLeave(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	groupID := primitive.NewObjectID()

	a := testSession(4)
	b := testSession(4)

	reg.Join(groupID, a)
	reg.Join(groupID, b)
	if got := reg.RoomSize(groupID); got != 2 {
		t.Fatalf("room size: got %d, want 2", got)
	}

	reg.Leave(groupID, a)
	if got := reg.RoomSize(groupID); got != 1 {
		t.Errorf("room size after leave: got %d, want 1", got)
	}

	reg.Leave(groupID, b)
	if got := reg.RoomSize(groupID); got != 0 {
		t.Errorf("room size after emptying: got %d, want 0", got)
	}
}

func TestRegistryDropRemovesFromRoom(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	groupID := primitive.NewObjectID()

	s := testSession(4)
	reg.Join(groupID, s)

	reg.Drop(s)

	if got := reg.RoomSize(groupID); got != 0 {
		t.Errorf("room size after drop: got %d, want 0", got)
	}
}

// A session holds one room at a time; joining another room replaces it.
func TestSessionJoinRoomReplaces(t *testing.T) {
	g1 := primitive.NewObjectID()
	g2 := primitive.NewObjectID()

	s := testSession(4)

	if prev, replaced := s.joinRoom(g1); replaced {
		t.Errorf("first join reported a replaced room %s", prev.Hex())
	}
	if prev, replaced := s.joinRoom(g1); replaced {
		t.Errorf("re-join of the same room reported a replaced room %s", prev.Hex())
	}

	prev, replaced := s.joinRoom(g2)
	if !replaced || prev != g1 {
		t.Fatalf("joining a second room: replaced=%v prev=%s, want replaced with %s", replaced, prev.Hex(), g1.Hex())
	}
	if s.inRoom(g1) {
		t.Error("session still in the replaced room")
	}
	if !s.inRoom(g2) {
		t.Error("session not in the new room")
	}
}

func TestBroadcastReachesRoomOnly(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	inRoom := primitive.NewObjectID()
	otherRoom := primitive.NewObjectID()

	a := testSession(4)
	b := testSession(4)
	c := testSession(4)
	reg.Join(inRoom, a)
	reg.Join(inRoom, b)
	reg.Join(otherRoom, c)

	reg.Broadcast(inRoom, []byte("hello"))

	for name, s := range map[string]*Session{"a": a, "b": b} {
		select {
		case got := <-s.send:
			if string(got) != "hello" {
				t.Errorf("%s payload: got %q", name, got)
			}
		default:
			t.Errorf("%s received nothing", name)
		}
	}
	select {
	case got := <-c.send:
		t.Errorf("c in another room received %q", got)
	default:
	}
}

// A session whose outbound queue is full gets evicted rather than stalling
// the rest of the room.
func TestBroadcastEvictsSlowSession(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	groupID := primitive.NewObjectID()

	healthy := testSession(4)
	slow := testSession(1)
	slow.send <- []byte("backlog") // queue is now full

	reg.Join(groupID, healthy)
	reg.Join(groupID, slow)

	reg.Broadcast(groupID, []byte("update"))

	if got := reg.RoomSize(groupID); got != 1 {
		t.Errorf("room size after eviction: got %d, want 1", got)
	}

	select {
	case got := <-healthy.send:
		if string(got) != "update" {
			t.Errorf("healthy payload: got %q", got)
		}
	default:
		t.Errorf("healthy session received nothing")
	}

	// eviction closed the slow session's queue
	<-slow.send // drain the backlog
	if _, ok := <-slow.send; ok {
		t.Errorf("slow session queue still open after eviction")
	}
}

// Broadcast snapshots the room outside the lock, so it can race a session
// teardown. Sending to a session that closed after the snapshot must be a
// silent miss, never a send on a closed channel.
func TestBroadcastAfterSessionClose(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	groupID := primitive.NewObjectID()

	s := testSession(4)
	reg.Join(groupID, s)

	s.Close()
	reg.Broadcast(groupID, []byte("late"))

	if s.trySend([]byte("later")) {
		t.Error("trySend succeeded on a closed session")
	}
}

func TestSessionCloseIdempotent(t *testing.T) {
	s := testSession(1)
	s.Close()
	s.Close()

	if _, ok := <-s.send; ok {
		t.Error("send queue still open after close")
	}
}
