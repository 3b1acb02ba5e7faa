package presence

import (
	"sort"
	"sync"
)

// editorContext tags announcements coming from the prototype editor.
const editorContext = "prototype-editor"

// Entry is one collaborator in the roster, used purely to render the
// "N people editing" badge.
type Entry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsEditing bool   `json:"isEditing"`
}

// Tracker announces one user's editing status on a document's channel
// and maintains a roster from other subscribers' announcements.
type Tracker struct {
	hub     *Hub
	channel string
	userID  string
	name    string

	mu     sync.Mutex
	roster map[string]Entry

	msgs  <-chan Message
	unsub func()
	done  chan struct{}
}

// NewTracker subscribes to the document's presence channel and
// announces {editing:true}. Call Close when leaving the editor; it
// announces {editing:false} and unsubscribes.
func NewTracker(hub *Hub, prototypeID, userID, name string) *Tracker {
	t := &Tracker{
		hub:     hub,
		channel: ChannelForPrototype(prototypeID),
		userID:  userID,
		name:    name,
		roster:  make(map[string]Entry),
		done:    make(chan struct{}),
	}
	t.msgs, t.unsub = hub.Subscribe(t.channel, 0)
	go t.consume()
	hub.Publish(t.channel, Message{UserID: userID, Name: name, Editing: true, Context: editorContext})
	return t
}

func (t *Tracker) consume() {
	for {
		select {
		case msg, ok := <-t.msgs:
			if !ok {
				return
			}
			if msg.UserID == t.userID {
				continue // own announcements don't go in the badge
			}
			t.mu.Lock()
			if msg.Editing {
				t.roster[msg.UserID] = Entry{ID: msg.UserID, Name: msg.Name, IsEditing: true}
			} else {
				delete(t.roster, msg.UserID)
			}
			t.mu.Unlock()
		case <-t.done:
			return
		}
	}
}

// Roster returns the other collaborators currently editing, in a
// stable name order.
func (t *Tracker) Roster() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, 0, len(t.roster))
	for _, e := range t.roster {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Close announces {editing:false} and tears the tracker down.
func (t *Tracker) Close() {
	t.hub.Publish(t.channel, Message{UserID: t.userID, Name: t.name, Editing: false, Context: editorContext})
	close(t.done)
	t.unsub()
}
