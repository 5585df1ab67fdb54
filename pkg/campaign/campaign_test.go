package campaign

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := New(7, "acme", t0)
	assert.Equal(t, StateCreated, c.State)
	assert.False(t, c.Settled())

	require.NoError(t, c.Edit(8, t0.Add(time.Minute)))
	assert.Equal(t, uint64(8), c.ID)
	assert.Equal(t, StateEdited, c.State)
	assert.Equal(t, t0.Add(time.Minute), c.UpdatedAt)

	require.NoError(t, c.Deny())
	assert.Equal(t, StateDenied, c.State)
	assert.True(t, c.Settled())
}

func TestSettledOnce(t *testing.T) {
	for _, from := range []State{StateApproved, StateDenied} {
		t.Run(from.String(), func(t *testing.T) {
			c := &Campaign{ID: 7, Advertiser: "acme", State: from}
			assert.ErrorIs(t, c.Approve(), ErrSettled)
			assert.ErrorIs(t, c.Deny(), ErrSettled)
			assert.ErrorIs(t, c.Edit(9, time.Now()), ErrSettled)
			assert.Equal(t, from, c.State)
			assert.Equal(t, uint64(7), c.ID)
		})
	}
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, []string{"created", "edited", "approved", "denied"}, StateStrings())
	s, err := StateString("Approved")
	require.NoError(t, err)
	assert.Equal(t, StateApproved, s)
	assert.Equal(t, "State(9)", State(9).String())
}
