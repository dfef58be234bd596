package state

import "sync"

// Slot holds a single fetched record, such as the detail view of one book.
// It follows the same last-issued-wins rule as Collection.
type Slot[T any] struct {
	mu      sync.RWMutex
	value   *T
	issued  Token
	loading bool
	closed  bool
	events  *Broadcaster
}

func NewSlot[T any](events *Broadcaster) *Slot[T] {
	if events == nil {
		events = NewBroadcaster()
	}
	return &Slot[T]{events: events}
}

func (s *Slot[T]) Begin() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	s.loading = true
	return s.issued
}

// End lowers the loading flag if tok is the most recently issued fetch.
func (s *Slot[T]) End(tok Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok == s.issued {
		s.loading = false
	}
}

func (s *Slot[T]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Slot[T]) Set(tok Token, v T) bool {
	s.mu.Lock()
	if s.closed || tok != s.issued {
		s.mu.Unlock()
		return false
	}
	s.value = &v
	s.mu.Unlock()
	s.events.Publish(Change{Kind: ChangeDetails})
	return true
}

// Get returns the held value and whether one is present.
func (s *Slot[T]) Get() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.value == nil {
		var zero T
		return zero, false
	}
	return *s.value, true
}

// ReplaceIf swaps in v when the held value satisfies match. Mutations use it
// to keep an open detail view in step with the collection.
func (s *Slot[T]) ReplaceIf(match func(T) bool, v T) bool {
	s.mu.Lock()
	if s.closed || s.value == nil || !match(*s.value) {
		s.mu.Unlock()
		return false
	}
	s.value = &v
	s.mu.Unlock()
	s.events.Publish(Change{Kind: ChangeDetails})
	return true
}

// ClearIf drops the held value when it satisfies match.
func (s *Slot[T]) ClearIf(match func(T) bool) bool {
	s.mu.Lock()
	if s.closed || s.value == nil || !match(*s.value) {
		s.mu.Unlock()
		return false
	}
	s.value = nil
	s.mu.Unlock()
	s.events.Publish(Change{Kind: ChangeDetails})
	return true
}

func (s *Slot[T]) Clear() {
	s.mu.Lock()
	s.value = nil
	s.mu.Unlock()
}

func (s *Slot[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.loading = false
}
