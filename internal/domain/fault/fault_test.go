package fault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryKind(t *testing.T) {
	tests := []struct {
		err  *Error
		kind Kind
	}{
		{Validation("bad input %d", 7), KindValidation},
		{State("wrong state"), KindState},
		{Authorization("not allowed"), KindAuthorization},
		{Concurrency("version conflict"), KindConcurrency},
		{Configuration("no route"), KindConfiguration},
		{NotFound("missing"), KindNotFound},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.Equal(t, tt.kind, KindOf(tt.err))
		})
	}
}

func TestExternalWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := External("email gateway unreachable", cause)

	assert.Equal(t, KindExternal, KindOf(err))
	assert.Equal(t, "email gateway unreachable: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestKindOfUnclassified(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.False(t, IsKind(errors.New("plain"), KindValidation))
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := Concurrency("workflow was modified")
	wrapped := fmt.Errorf("apply action: %w", inner)

	require.True(t, IsKind(wrapped, KindConcurrency))
	var fe *Error
	require.ErrorAs(t, wrapped, &fe)
	assert.True(t, fe.Retryable())
}

func TestRetryable(t *testing.T) {
	assert.True(t, Concurrency("conflict").Retryable())
	assert.False(t, Validation("bad").Retryable())
}
