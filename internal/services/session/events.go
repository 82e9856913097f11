package session

import (
	"sync"
	"time"
)

type EventKind string

const (
	EventSignedIn       EventKind = "signed_in"
	EventSignedOut      EventKind = "signed_out"
	EventTokenRefreshed EventKind = "token_refreshed"
)

type Event struct {
	Kind   EventKind `json:"kind"`
	UserID string    `json:"user_id,omitempty"`
	At     time.Time `json:"at"`
}

// eventBroker fans auth-change events out to subscribers. Delivery is
// best-effort: a subscriber that stops draining loses events, it never blocks
// the auth path.
type eventBroker struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
}

func newEventBroker() *eventBroker {
	return &eventBroker{subs: make(map[int]chan Event)}
}

func (b *eventBroker) subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Event, 8)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (b *eventBroker) publish(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		select {
		case sub <- event:
		default:
		}
	}
}
