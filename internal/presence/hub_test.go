package presence

import (
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	hub := NewHub()
	ch, unsub := hub.Subscribe("room-1", 4)
	defer unsub()

	sent := Message{UserID: "u1", Name: "Ada", Editing: true, Context: "prototype-editor"}
	hub.Publish("room-1", sent)

	select {
	case got := <-ch:
		if got != sent {
			t.Errorf("received %+v, want %+v", got, sent)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the message")
	}
}

func TestPublish_ChannelIsolation(t *testing.T) {
	hub := NewHub()
	ch, unsub := hub.Subscribe("room-1", 4)
	defer unsub()

	hub.Publish("room-2", Message{UserID: "u1", Name: "Ada"})

	select {
	case msg := <-ch:
		t.Errorf("subscriber of room-1 received message for room-2: %+v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPublish_DropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	ch, unsub := hub.Subscribe("room-1", 1)
	defer unsub()

	// Second publish finds a full buffer and must not block.
	done := make(chan struct{})
	go func() {
		hub.Publish("room-1", Message{UserID: "u1"})
		hub.Publish("room-1", Message{UserID: "u2"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}

	// Only the first message made it through.
	got := <-ch
	if got.UserID != "u1" {
		t.Errorf("received %q, want the first message", got.UserID)
	}
	select {
	case msg := <-ch:
		t.Errorf("unexpected second message %+v, should have been dropped", msg)
	default:
	}
}

func TestUnsubscribe(t *testing.T) {
	hub := NewHub()
	ch, unsub := hub.Subscribe("room-1", 4)

	if got := hub.SubscriberCount("room-1"); got != 1 {
		t.Fatalf("SubscriberCount() = %d, want 1", got)
	}

	unsub()
	if got := hub.SubscriberCount("room-1"); got != 0 {
		t.Errorf("SubscriberCount() after unsubscribe = %d, want 0", got)
	}

	// The channel is closed so consumers can stop ranging.
	if _, ok := <-ch; ok {
		t.Error("channel still open after unsubscribe")
	}

	// Unsubscribing twice must not panic or double-close.
	unsub()
}

func TestChannelForPrototype(t *testing.T) {
	if got := ChannelForPrototype("abc-123"); got != "prototype-presence-abc-123" {
		t.Errorf("ChannelForPrototype() = %q", got)
	}
}
