package state

import "sync"

type ChangeKind string

const (
	ChangeReplaced ChangeKind = "replaced"
	ChangeAdded    ChangeKind = "added"
	ChangeUpdated  ChangeKind = "updated"
	ChangeRemoved  ChangeKind = "removed"
	ChangeLoading  ChangeKind = "loading"
	ChangeDetails  ChangeKind = "details"
	ChangeSearched ChangeKind = "searched"
	ChangeSettled  ChangeKind = "settled"
)

// Change describes one applied update. Subscribers that fall behind only see
// the most recent pending change, so a Change is a signal to re-read state,
// not a log entry.
type Change struct {
	Kind ChangeKind
	ID   string
}

// Broadcaster fans changes out to subscribers without ever blocking the
// publisher.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[int]chan Change
	next   int
	closed bool
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]chan Change)}
}

// Subscribe returns a channel of changes and a function that cancels the
// subscription. The channel is closed on cancel or when the broadcaster
// closes.
func (b *Broadcaster) Subscribe() (<-chan Change, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Change, 1)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	id := b.next
	b.next++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}
}

func (b *Broadcaster) Publish(c Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- c:
		default:
			// Drop the stale pending change and keep the newest one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- c:
			default:
			}
		}
	}
}

func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
