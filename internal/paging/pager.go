// Package paging reveals a growing prefix of a list, one page at a time.
package paging

import "sync"

const DefaultPageSize = 10

// Pager tracks how many pages have been revealed. The zero value is not
// usable; construct with New.
type Pager struct {
	mu       sync.Mutex
	pageSize int
	pages    int
}

func New(pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager{pageSize: pageSize, pages: 1}
}

func (p *Pager) PageSize() int { return p.pageSize }

func (p *Pager) Pages() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pages
}

// LoadMore reveals one more page and returns the new page count.
func (p *Pager) LoadMore() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pages++
	return p.pages
}

// Reset goes back to the first page.
func (p *Pager) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pages = 1
}

// Visible returns how many of n items are revealed.
func (p *Pager) Visible(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return min(n, p.pages*p.pageSize)
}

// HasMore reports whether a list of n items has unrevealed items.
func (p *Pager) HasMore(n int) bool {
	return p.Visible(n) < n
}

// Window returns the revealed prefix of items.
func Window[T any](p *Pager, items []T) []T {
	return items[:p.Visible(len(items))]
}
