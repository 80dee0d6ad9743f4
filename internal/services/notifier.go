package services

import "sync"

const (
	EventCreated  = "feedback.created"
	EventArchived = "feedback.archived"
	EventDeleted  = "feedback.deleted"
)

// Event is the in-process broadcast fired after a successful mutation so
// live dashboard views re-read the store instead of polling.
type Event struct {
	Kind     string `json:"kind"`
	RecordID string `json:"recordId"`
}

const subscriberBuffer = 8

type Notifier struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan Event)}
}

// Subscribe returns a receive channel and a cancel func. Cancel closes
// the channel; callers must stop receiving after cancelling.
func (n *Notifier) Subscribe() (<-chan Event, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	ch := make(chan Event, subscriberBuffer)
	n.subs[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if sub, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish fans out without blocking: a subscriber with a full buffer
// misses the event and catches up on its next full re-read.
func (n *Notifier) Publish(e Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
