package services

import (
	"sync"

	"github.com/google/uuid"
)

// Notifier fans out artifact-replacement events to watch subscribers so
// the editor UI can reload its preview pane. Events carry no payload;
// subscribers re-fetch the artifact themselves.
type Notifier struct {
	mu   sync.Mutex
	subs map[uuid.UUID]map[chan struct{}]struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[uuid.UUID]map[chan struct{}]struct{})}
}

// Subscribe registers for one client's events. The returned cancel
// function must be called when the watcher disconnects.
func (n *Notifier) Subscribe(clientID uuid.UUID) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	n.mu.Lock()
	if n.subs[clientID] == nil {
		n.subs[clientID] = make(map[chan struct{}]struct{})
	}
	n.subs[clientID][ch] = struct{}{}
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		if set, ok := n.subs[clientID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(n.subs, clientID)
			}
		}
		n.mu.Unlock()
	}
	return ch, cancel
}

// Publish signals every watcher of the client. A slow watcher that
// already has a pending event is skipped, not blocked on.
func (n *Notifier) Publish(clientID uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs[clientID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
