// Package view composes a record store, a search controller and a pager into
// the list a front end displays.
package view

import (
	"sync"

	"bookdesk/internal/paging"
	"bookdesk/internal/search"
	"bookdesk/internal/state"
)

// Source is a collection that announces its changes.
type Source[T any] interface {
	Items() []T
	Subscribe() (<-chan state.Change, func())
}

type List[T any] struct {
	source Source[T]
	search *search.Controller[T]
	pager  *paging.Pager
	events *state.Broadcaster

	stop      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewList starts following source. Call Close to release it.
func NewList[T any](source Source[T], match search.MatchFunc[T], opts search.Options, pageSize int) *List[T] {
	l := &List[T]{
		source: source,
		search: search.NewController(source.Items, match, opts),
		pager:  paging.New(pageSize),
		events: state.NewBroadcaster(),
		stop:   make(chan struct{}),
	}

	storeCh, cancelStore := source.Subscribe()
	searchCh, cancelSearch := l.search.Subscribe()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer cancelStore()
		defer cancelSearch()
		for {
			select {
			case <-l.stop:
				return
			case c, ok := <-storeCh:
				if !ok {
					storeCh = nil
					continue
				}
				l.events.Publish(c)
			case c, ok := <-searchCh:
				if !ok {
					searchCh = nil
					continue
				}
				l.events.Publish(c)
			}
		}
	}()
	return l
}

// Displayed is the revealed page window of the search results.
func (l *List[T]) Displayed() []T {
	return paging.Window(l.pager, l.search.Results())
}

// Total is the number of search results before paging.
func (l *List[T]) Total() int { return len(l.search.Results()) }

func (l *List[T]) HasMore() bool { return l.pager.HasMore(l.Total()) }

// LoadMore reveals one more page and notifies subscribers.
func (l *List[T]) LoadMore() {
	l.pager.LoadMore()
	l.events.Publish(state.Change{Kind: state.ChangeReplaced})
}

func (l *List[T]) Search() *search.Controller[T] { return l.search }

func (l *List[T]) Pager() *paging.Pager { return l.pager }

// Subscribe signals whenever Displayed may have changed.
func (l *List[T]) Subscribe() (<-chan state.Change, func()) { return l.events.Subscribe() }

// Close stops following the source. It does not close the source.
func (l *List[T]) Close() {
	l.closeOnce.Do(func() {
		close(l.stop)
		l.wg.Wait()
		l.search.Close()
		l.events.Close()
	})
}
