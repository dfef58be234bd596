package state

import (
	"slices"
	"sync"

	"bookdesk/internal/entity"
)

// Token identifies one issued fetch.
type Token uint64

type Collection[T any] struct {
	mu      sync.RWMutex
	items   []T
	idOf    func(T) entity.ID
	issued  Token
	loading bool
	closed  bool
	events  *Broadcaster
}

func NewCollection[T any](idOf func(T) entity.ID, events *Broadcaster) *Collection[T] {
	if events == nil {
		events = NewBroadcaster()
	}
	return &Collection[T]{idOf: idOf, events: events}
}

// Begin issues a token for a new fetch and raises the loading flag.
func (c *Collection[T]) Begin() Token {
	c.mu.Lock()
	c.issued++
	tok := c.issued
	c.loading = true
	closed := c.closed
	c.mu.Unlock()

	if !closed {
		c.events.Publish(Change{Kind: ChangeLoading})
	}
	return tok
}

// End lowers the loading flag if tok is the most recently issued fetch.
func (c *Collection[T]) End(tok Token) {
	c.mu.Lock()
	if c.closed || tok != c.issued {
		c.mu.Unlock()
		return
	}
	c.loading = false
	c.mu.Unlock()
	c.events.Publish(Change{Kind: ChangeLoading})
}

// Current reports whether tok is still the most recently issued fetch.
func (c *Collection[T]) Current(tok Token) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.closed && tok == c.issued
}

// ReplaceAll swaps in a whole fetched collection. It returns false when the
// response is stale or the collection is closed.
func (c *Collection[T]) ReplaceAll(tok Token, items []T) bool {
	c.mu.Lock()
	if c.closed || tok != c.issued {
		c.mu.Unlock()
		return false
	}
	c.items = slices.Clone(items)
	c.mu.Unlock()
	c.events.Publish(Change{Kind: ChangeReplaced})
	return true
}

func (c *Collection[T]) Append(item T) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	c.items = append(c.items, item)
	c.mu.Unlock()
	c.events.Publish(Change{Kind: ChangeAdded, ID: c.idOf(item).String()})
	return true
}

// ReplaceByID swaps the element whose id equals id, keeping its position.
// It returns false when no such element exists.
func (c *Collection[T]) ReplaceByID(id entity.ID, item T) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	i := c.indexLocked(id)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	c.items[i] = item
	c.mu.Unlock()
	c.events.Publish(Change{Kind: ChangeUpdated, ID: id.String()})
	return true
}

func (c *Collection[T]) Remove(id entity.ID) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	i := c.indexLocked(id)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	c.mu.Unlock()
	c.events.Publish(Change{Kind: ChangeRemoved, ID: id.String()})
	return true
}

func (c *Collection[T]) Find(id entity.ID) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexLocked(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Snapshot returns a copy of the collection in server order.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *Collection[T]) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

func (c *Collection[T]) Subscribe() (<-chan Change, func()) {
	return c.events.Subscribe()
}

// Close stops the collection from accepting further updates.
func (c *Collection[T]) Close() {
	c.mu.Lock()
	c.closed = true
	c.loading = false
	c.mu.Unlock()
	c.events.Close()
}

func (c *Collection[T]) indexLocked(id entity.ID) int {
	return slices.IndexFunc(c.items, func(item T) bool { return c.idOf(item) == id })
}
