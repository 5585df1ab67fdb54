package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIs(t *testing.T) {
	cause := errors.New("pool balance too low")
	err := fmt.Errorf("wrapped: %w", E(KindFunds, "withdraw", cause))

	assert.True(t, errors.Is(err, ErrFunds))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrState))
	assert.True(t, errors.Is(err, &Error{Kind: KindFunds, Op: "withdraw"}))
	assert.False(t, errors.Is(err, &Error{Kind: KindFunds, Op: "deposit"}))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "structured", err: E(KindCapacity, "create_senior", nil), want: KindCapacity},
		{name: "wrapped", err: fmt.Errorf("x: %w", E(KindNotFound, "", nil)), want: KindNotFound},
		{name: "plain", err: errors.New("boom"), want: KindInternal},
		{name: "nil", err: nil, want: KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "publish_news: state: not approved", E(KindState, "publish_news", errors.New("not approved")).Error())
	assert.Equal(t, "funds: empty", E(KindFunds, "", errors.New("empty")).Error())
	assert.Equal(t, "deposit: invalid_amount", E(KindInvalidAmount, "deposit", nil).Error())
	assert.Equal(t, "conflict", ErrConflict.Error())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "not approved", Message(E(KindState, "publish_news", errors.New("not approved"))))
	assert.Equal(t, "boom", Message(errors.New("boom")))
	assert.Equal(t, "", Message(nil))
}
