// Package record implements the create/read/update/delete discipline shared
// by the book and loan stores: every change goes to the server first and the
// local collection is updated only from the server's confirmed response.
package record

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"bookdesk/internal/entity"
	"bookdesk/internal/notify"
	"bookdesk/internal/state"
)

// ErrMissingID is reported when a create response carries no server id.
var ErrMissingID = errors.New("server response has no id")

// Spec describes one REST resource.
type Spec[T any] struct {
	// Resource is the collection path, e.g. "books".
	Resource string
	// Noun names one record in logs and notifications.
	Noun string
	// HintKey is where the last created id is remembered. Empty disables it.
	HintKey string

	IDOf  func(T) entity.ID
	SetID func(*T, entity.ID)
	// Prepare normalizes and validates a record before it is sent.
	Prepare func(*T) error
}

type Store[T any] struct {
	spec     Spec[T]
	api      Gateway
	events   *state.Broadcaster
	items    *state.Collection[T]
	details  *state.Slot[T]
	notifier notify.Notifier
	hints    IDRecorder
	logger   *slog.Logger
}

type Option func(*options)

type options struct {
	notifier notify.Notifier
	hints    IDRecorder
	logger   *slog.Logger
}

func WithNotifier(n notify.Notifier) Option { return func(o *options) { o.notifier = n } }

func WithHints(h IDRecorder) Option { return func(o *options) { o.hints = h } }

func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

func NewStore[T any](api Gateway, spec Spec[T], opts ...Option) *Store[T] {
	o := options{notifier: notify.Nop{}, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.notifier == nil {
		o.notifier = notify.Nop{}
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	events := state.NewBroadcaster()
	return &Store[T]{
		spec:     spec,
		api:      api,
		events:   events,
		items:    state.NewCollection(spec.IDOf, events),
		details:  state.NewSlot[T](events),
		notifier: o.notifier,
		hints:    o.hints,
		logger:   o.logger.With("store", spec.Noun, "resource", spec.Resource),
	}
}

// FetchAll replaces the collection with the server's. On failure the
// previous collection is kept.
func (s *Store[T]) FetchAll(ctx context.Context) state.Result[[]T] {
	op := "fetch " + s.spec.Resource
	tok := s.items.Begin()
	defer s.items.End(tok)

	var fetched []T
	if err := s.api.Get(ctx, s.spec.Resource, &fetched); err != nil {
		s.logger.Error("error fetching "+s.spec.Resource, "error", err)
		return state.Fail[[]T](state.NewFailure(op, "could not load "+s.spec.Resource, err))
	}
	if fetched == nil {
		fetched = []T{}
	}
	if !s.items.ReplaceAll(tok, fetched) {
		return state.Fail[[]T](s.dropped(op))
	}
	return state.Success(fetched)
}

// FetchByID loads one record into the details slot.
func (s *Store[T]) FetchByID(ctx context.Context, id entity.ID) state.Result[T] {
	op := "fetch " + s.spec.Noun
	tok := s.details.Begin()
	defer s.details.End(tok)

	var rec T
	if err := s.api.Get(ctx, s.path(id), &rec); err != nil {
		s.logger.Error("error fetching "+s.spec.Noun+" data", "id", id, "error", err)
		return state.Fail[T](state.NewFailure(op, fmt.Sprintf("could not load %s %s", s.spec.Noun, id), err))
	}
	if !s.details.Set(tok, rec) {
		if s.items.Closed() {
			return state.Fail[T](state.NewFailure(op, "response not applied", state.ErrClosed))
		}
		return state.Fail[T](state.NewFailure(op, "response not applied", state.ErrSuperseded))
	}
	return state.Success(rec)
}

// Create sends rec to the server and appends the server's copy. Any id on rec
// is discarded; only the server assigns ids.
func (s *Store[T]) Create(ctx context.Context, rec T) state.Result[T] {
	op := "create " + s.spec.Noun
	s.spec.SetID(&rec, "")
	if err := s.prepare(&rec); err != nil {
		return s.fail(ctx, op, fmt.Sprintf("Failed to add %s", s.spec.Noun), err)
	}

	var created T
	if err := s.api.Post(ctx, s.spec.Resource, rec, &created); err != nil {
		return s.fail(ctx, op, fmt.Sprintf("Failed to add %s", s.spec.Noun), err)
	}
	id := s.spec.IDOf(created)
	if id.IsZero() {
		return s.fail(ctx, op, fmt.Sprintf("Failed to add %s", s.spec.Noun), ErrMissingID)
	}
	if !s.items.Append(created) {
		return s.fail(ctx, op, fmt.Sprintf("Failed to add %s", s.spec.Noun), state.ErrClosed)
	}
	s.remember(ctx, id)

	s.succeed(ctx, fmt.Sprintf("The %s has been added successfully.", s.spec.Noun))
	return state.Success(created)
}

// Update replaces the record with the given id by rec, in full.
func (s *Store[T]) Update(ctx context.Context, id entity.ID, rec T) state.Result[T] {
	op := "update " + s.spec.Noun
	s.spec.SetID(&rec, id)
	if err := s.prepare(&rec); err != nil {
		return s.fail(ctx, op, fmt.Sprintf("Error updating %s", s.spec.Noun), err)
	}

	// A 204 or blank 200 leaves decoded nil; the server accepted rec as sent.
	var decoded *T
	if err := s.api.Put(ctx, s.path(id), rec, &decoded); err != nil {
		return s.fail(ctx, op, fmt.Sprintf("Error updating %s", s.spec.Noun), err)
	}
	updated := rec
	if decoded != nil {
		updated = *decoded
	}
	if s.spec.IDOf(updated).IsZero() {
		s.spec.SetID(&updated, id)
	}
	if s.items.Closed() {
		return s.fail(ctx, op, fmt.Sprintf("Error updating %s", s.spec.Noun), state.ErrClosed)
	}
	s.items.ReplaceByID(id, updated)
	s.details.ReplaceIf(s.hasID(id), updated)

	s.succeed(ctx, fmt.Sprintf("The %s has been successfully updated.", s.spec.Noun))
	return state.Success(updated)
}

// Delete removes the record with the given id.
func (s *Store[T]) Delete(ctx context.Context, id entity.ID) state.Result[entity.ID] {
	op := "delete " + s.spec.Noun
	if err := s.api.Delete(ctx, s.path(id)); err != nil {
		r := s.fail(ctx, op, fmt.Sprintf("Error deleting %s", s.spec.Noun), err)
		return state.Fail[entity.ID](r.Failure)
	}
	if s.items.Closed() {
		r := s.fail(ctx, op, fmt.Sprintf("Error deleting %s", s.spec.Noun), state.ErrClosed)
		return state.Fail[entity.ID](r.Failure)
	}
	s.items.Remove(id)
	s.details.ClearIf(s.hasID(id))

	s.succeed(ctx, fmt.Sprintf("The %s has been successfully deleted.", s.spec.Noun))
	return state.Success(id)
}

// Items returns a copy of the authoritative collection.
func (s *Store[T]) Items() []T { return s.items.Snapshot() }

func (s *Store[T]) Find(id entity.ID) (T, bool) { return s.items.Find(id) }

// Details returns the last record loaded by FetchByID.
func (s *Store[T]) Details() (T, bool) { return s.details.Get() }

func (s *Store[T]) Loading() bool { return s.items.Loading() || s.details.Loading() }

// Subscribe delivers a Change after every applied update.
func (s *Store[T]) Subscribe() (<-chan state.Change, func()) { return s.events.Subscribe() }

// Close detaches the store; requests still in flight complete without
// touching its state.
func (s *Store[T]) Close() {
	s.details.Close()
	s.items.Close()
}

func (s *Store[T]) path(id entity.ID) string {
	return s.spec.Resource + "/" + url.PathEscape(id.String())
}

func (s *Store[T]) hasID(id entity.ID) func(T) bool {
	return func(rec T) bool { return s.spec.IDOf(rec) == id }
}

func (s *Store[T]) prepare(rec *T) error {
	if s.spec.Prepare == nil {
		return nil
	}
	return s.spec.Prepare(rec)
}

func (s *Store[T]) dropped(op string) *state.Failure {
	if s.items.Closed() {
		return state.NewFailure(op, "response not applied", state.ErrClosed)
	}
	return state.NewFailure(op, "response not applied", state.ErrSuperseded)
}

func (s *Store[T]) remember(ctx context.Context, id entity.ID) {
	if s.hints == nil || s.spec.HintKey == "" {
		return
	}
	if err := s.hints.Remember(ctx, s.spec.HintKey, id); err != nil {
		s.logger.Warn("could not remember last id", "key", s.spec.HintKey, "id", id, "error", err)
	}
}

func (s *Store[T]) fail(ctx context.Context, op, message string, err error) state.Result[T] {
	f := state.NewFailure(op, message, err)
	s.logger.Error(message, "op", op, "kind", f.Kind, "error", err)
	s.notifier.Notify(ctx, notify.Notification{
		Level:   notify.LevelError,
		Title:   "Failed!",
		Message: fmt.Sprintf("%s: %v", message, err),
	})
	return state.Fail[T](f)
}

func (s *Store[T]) succeed(ctx context.Context, message string) {
	s.notifier.Notify(ctx, notify.Notification{
		Level:   notify.LevelSuccess,
		Title:   "Success!",
		Message: message,
	})
}
