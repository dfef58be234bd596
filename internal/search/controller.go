package search

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"bookdesk/internal/state"
)

// Mode decides when a query is applied.
type Mode int

const (
	// ModeExplicit applies the query only when Trigger is called.
	ModeExplicit Mode = iota
	// ModeDebounced applies the query once input has been quiet for the
	// debounce delay.
	ModeDebounced
)

const (
	DefaultDebounce     = 300 * time.Millisecond
	DefaultMinIndicator = 500 * time.Millisecond
)

func (m Mode) String() string {
	switch m {
	case ModeDebounced:
		return "debounced"
	default:
		return "explicit"
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "explicit":
		return ModeExplicit, nil
	case "debounced", "debounce":
		return ModeDebounced, nil
	}
	return ModeExplicit, fmt.Errorf("unknown search mode %q", s)
}

type Options struct {
	Mode     Mode
	Debounce time.Duration
	// MinIndicator is the shortest time Searching reports true after a
	// search runs.
	MinIndicator time.Duration
}

func (o Options) withDefaults() Options {
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if o.MinIndicator < 0 {
		o.MinIndicator = 0
	}
	return o
}

// Controller holds the query being edited and the query last applied.
// Results are recomputed from the source on every call, so they always reflect
// the current collection.
type Controller[T any] struct {
	mu        sync.Mutex
	opts      Options
	source    func() []T
	match     MatchFunc[T]
	events    *state.Broadcaster
	query     string
	field     Field
	applied   string
	appliedOn Field
	searching bool
	debounce  *time.Timer
	indicator *time.Timer
	closed    bool
}

func NewController[T any](source func() []T, match MatchFunc[T], opts Options) *Controller[T] {
	return &Controller[T]{
		opts:      opts.withDefaults(),
		source:    source,
		match:     match,
		events:    state.NewBroadcaster(),
		field:     FieldAll,
		appliedOn: FieldAll,
	}
}

// SetQuery records the query text. In debounced mode it (re)starts the
// debounce delay.
func (c *Controller[T]) SetQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.query = q
	c.schedule()
}

// SetField records the selected field. In debounced mode it (re)starts the
// debounce delay.
func (c *Controller[T]) SetField(f Field) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if f == "" {
		f = FieldAll
	}
	c.field = f
	c.schedule()
}

// Trigger applies the current query immediately, in either mode.
func (c *Controller[T]) Trigger() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
	c.apply()
}

func (c *Controller[T]) schedule() {
	if c.opts.Mode != ModeDebounced {
		return
	}
	if c.debounce != nil {
		c.debounce.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(c.opts.Debounce, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed || c.debounce != t {
			return
		}
		c.debounce = nil
		c.apply()
	})
	c.debounce = t
}

// apply must be called with c.mu held.
func (c *Controller[T]) apply() {
	c.applied = c.query
	c.appliedOn = c.field
	c.searching = true
	c.events.Publish(state.Change{Kind: state.ChangeSearched})

	if c.indicator != nil {
		c.indicator.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(c.opts.MinIndicator, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed || c.indicator != t {
			return
		}
		c.indicator = nil
		c.searching = false
		c.events.Publish(state.Change{Kind: state.ChangeSettled})
	})
	c.indicator = t
}

// Results filters the current source by the last applied query.
func (c *Controller[T]) Results() []T {
	c.mu.Lock()
	q, f := c.applied, c.appliedOn
	c.mu.Unlock()
	return Filter(c.source(), q, f, c.match)
}

func (c *Controller[T]) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

func (c *Controller[T]) Field() Field {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.field
}

// Applied returns the query and field the current results are filtered by.
func (c *Controller[T]) Applied() (string, Field) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applied, c.appliedOn
}

func (c *Controller[T]) Searching() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searching
}

func (c *Controller[T]) Subscribe() (<-chan state.Change, func()) {
	return c.events.Subscribe()
}

// Close stops pending timers. Later calls are ignored.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.debounce != nil {
		c.debounce.Stop()
	}
	if c.indicator != nil {
		c.indicator.Stop()
	}
	c.searching = false
	c.events.Close()
}
