package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesKindSentinel(t *testing.T) {
	cause := errors.New("reference not found")
	err := NotFoundError("resolve ref", cause)

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrInvalidInput))
}

func TestError_Message(t *testing.T) {
	err := &Error{
		Branch: "feature",
		Err:    errors.New("boom"),
		Kind:   KindNotFound,
		Op:     "publish",
		Repo:   "/repos/a",
	}

	assert.Equal(t, "publish repo=/repos/a branch=feature: boom", err.Error())
	assert.Equal(t, "boom", err.Detail())
}

func TestError_MessageWithoutCause(t *testing.T) {
	err := &Error{Kind: KindTimeout}

	assert.Equal(t, "timeout", err.Error())
}

func TestWrapError_KeepsKind(t *testing.T) {
	inner := NewError(KindUnparsableAuthorship, "parse sign-off", errors.New("missing"))

	wrapped := WrapError(inner, "publish", "/repos/a", "feature")

	assert.Equal(t, KindUnparsableAuthorship, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, ErrUnparsableAuthorship))
	assert.Contains(t, wrapped.Error(), "publish repo=/repos/a branch=feature")
}

func TestWrapError_Nil(t *testing.T) {
	assert.NoError(t, WrapError(nil, "op", "", ""))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, ""},
		{"untyped", errors.New("x"), KindInternal},
		{"deadline", context.DeadlineExceeded, KindTimeout},
		{"wrapped deadline", WrapError(fmt.Errorf("read: %w", context.DeadlineExceeded), "publish", "", ""), KindTimeout},
		{"sentinel", fmt.Errorf("wrapped: %w", ErrNotFound), KindNotFound},
		{"typed", InvalidInputError("op", errors.New("bad")), KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}
