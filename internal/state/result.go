package state

import (
	"context"
	"errors"
	"fmt"

	"bookdesk/internal/platform/restapi"
)

// ErrClosed is reported when an operation completes after its store closed.
var ErrClosed = errors.New("store closed")

// ErrInvalid marks a record that failed validation before any request was sent.
var ErrInvalid = errors.New("invalid record")

// ErrSuperseded is reported by a fetch whose response arrived after a newer
// fetch of the same data was issued. Its data was not applied.
var ErrSuperseded = errors.New("superseded by a newer request")

type FailureKind string

const (
	FailureNetwork    FailureKind = "network"
	FailureStatus     FailureKind = "http_status"
	FailureDecode     FailureKind = "decode"
	FailureEncode     FailureKind = "encode"
	FailureValidation FailureKind = "validation"
	FailureCanceled   FailureKind = "canceled"
	FailureClosed     FailureKind = "closed"
	FailureSuperseded FailureKind = "superseded"
	FailureUnknown    FailureKind = "unknown"
)

// Failure is the uniform error value every store operation reports.
type Failure struct {
	Kind    FailureKind
	Op      string
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("%s: %s", f.Op, f.Message)
	}
	return fmt.Sprintf("%s: %s: %v", f.Op, f.Message, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// NewFailure classifies err for operation op.
func NewFailure(op, message string, err error) *Failure {
	return &Failure{Kind: classify(err), Op: op, Message: message, Err: err}
}

func classify(err error) FailureKind {
	switch {
	case err == nil:
		return FailureUnknown
	case errors.Is(err, ErrClosed):
		return FailureClosed
	case errors.Is(err, ErrSuperseded):
		return FailureSuperseded
	case errors.Is(err, ErrInvalid):
		return FailureValidation
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return FailureCanceled
	}
	switch restapi.KindOf(err) {
	case restapi.KindNetwork:
		return FailureNetwork
	case restapi.KindStatus:
		return FailureStatus
	case restapi.KindDecode:
		return FailureDecode
	case restapi.KindEncode:
		return FailureEncode
	}
	return FailureUnknown
}

// Result carries either the confirmed value of an operation or its Failure.
type Result[T any] struct {
	Value   T
	Failure *Failure
}

func Success[T any](v T) Result[T] { return Result[T]{Value: v} }

func Fail[T any](f *Failure) Result[T] { return Result[T]{Failure: f} }

func (r Result[T]) Ok() bool { return r.Failure == nil }

// Err returns the failure as an error, or nil on success.
func (r Result[T]) Err() error {
	if r.Failure == nil {
		return nil
	}
	return r.Failure
}
