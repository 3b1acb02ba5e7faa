package presence

import (
	"testing"
	"time"
)

// waitForRoster polls until the tracker's roster has n entries.
func waitForRoster(t *testing.T, tracker *Tracker, n int) []Entry {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		roster := tracker.Roster()
		if len(roster) == n {
			return roster
		}
		time.Sleep(5 * time.Millisecond)
	}
	roster := tracker.Roster()
	t.Fatalf("roster has %d entries, wanted %d: %+v", len(roster), n, roster)
	return nil
}

func TestTrackerSeesOtherEditors(t *testing.T) {
	hub := NewHub()

	ada := NewTracker(hub, "proto-1", "u-ada", "Ada")
	defer ada.Close()

	// Ada joined an empty room; her own announcement must not appear in
	// her badge.
	time.Sleep(20 * time.Millisecond)
	if roster := ada.Roster(); len(roster) != 0 {
		t.Fatalf("own announcement leaked into the roster: %+v", roster)
	}

	grace := NewTracker(hub, "proto-1", "u-grace", "Grace")
	defer grace.Close()

	roster := waitForRoster(t, ada, 1)
	if roster[0].ID != "u-grace" || roster[0].Name != "Grace" || !roster[0].IsEditing {
		t.Errorf("unexpected roster entry: %+v", roster[0])
	}

	// Grace joined after Ada's announcement, so she only learns about
	// Ada once Ada re-announces (e.g. on the next heartbeat); a fresh
	// announcement is enough.
	hub.Publish(ChannelForPrototype("proto-1"), Message{UserID: "u-ada", Name: "Ada", Editing: true})
	waitForRoster(t, grace, 1)
}

func TestTrackerRemovesLeavers(t *testing.T) {
	hub := NewHub()

	ada := NewTracker(hub, "proto-1", "u-ada", "Ada")
	defer ada.Close()
	grace := NewTracker(hub, "proto-1", "u-grace", "Grace")

	waitForRoster(t, ada, 1)

	// Close announces {editing:false}; Ada's badge empties out.
	grace.Close()
	waitForRoster(t, ada, 0)
}

func TestTrackerRosterSortedByName(t *testing.T) {
	hub := NewHub()
	ada := NewTracker(hub, "proto-1", "u-ada", "Ada")
	defer ada.Close()

	ch := ChannelForPrototype("proto-1")
	hub.Publish(ch, Message{UserID: "u-zoe", Name: "Zoe", Editing: true})
	hub.Publish(ch, Message{UserID: "u-bob", Name: "Bob", Editing: true})

	roster := waitForRoster(t, ada, 2)
	if roster[0].Name != "Bob" || roster[1].Name != "Zoe" {
		t.Errorf("roster not sorted by name: %+v", roster)
	}
}

func TestTrackersOnDifferentPrototypesAreIsolated(t *testing.T) {
	hub := NewHub()

	ada := NewTracker(hub, "proto-1", "u-ada", "Ada")
	defer ada.Close()
	grace := NewTracker(hub, "proto-2", "u-grace", "Grace")
	defer grace.Close()

	time.Sleep(30 * time.Millisecond)
	if roster := ada.Roster(); len(roster) != 0 {
		t.Errorf("tracker on proto-1 saw editors of proto-2: %+v", roster)
	}
}
