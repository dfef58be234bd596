package state

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"bookdesk/internal/platform/restapi"

	"github.com/stretchr/testify/assert"
)

func TestNewFailure_Classifies(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureKind
	}{
		{"network", &restapi.Error{Kind: restapi.KindNetwork}, FailureNetwork},
		{"status", &restapi.Error{Kind: restapi.KindStatus, StatusCode: 500}, FailureStatus},
		{"decode", fmt.Errorf("wrapped: %w", &restapi.Error{Kind: restapi.KindDecode}), FailureDecode},
		{"encode", &restapi.Error{Kind: restapi.KindEncode}, FailureEncode},
		{"validation", fmt.Errorf("book: %w", ErrInvalid), FailureValidation},
		{"closed", ErrClosed, FailureClosed},
		{"superseded", ErrSuperseded, FailureSuperseded},
		{"canceled", context.Canceled, FailureCanceled},
		{"other", errors.New("boom"), FailureUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFailure("op", "msg", tt.err)
			assert.Equal(t, tt.want, f.Kind)
			assert.ErrorIs(t, f, tt.err)
		})
	}
}

func TestResult(t *testing.T) {
	ok := Success(3)
	assert.True(t, ok.Ok())
	assert.NoError(t, ok.Err())

	bad := Fail[int](NewFailure("update", "could not update", ErrClosed))
	assert.False(t, bad.Ok())
	assert.EqualError(t, bad.Err(), "update: could not update: store closed")
}
