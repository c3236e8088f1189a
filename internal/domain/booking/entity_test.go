//go:build unit

package booking_test

import (
	"testing"

	"shareit/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingDecide(t *testing.T) {
	t.Run("new booking starts waiting", func(t *testing.T) {
		b := booking.NewBooking(1, mustInterval(t, at(0), at(1)), 10, 20)
		assert.Equal(t, booking.StatusWaiting, b.Status())
	})

	t.Run("approve", func(t *testing.T) {
		b := booking.NewBooking(1, mustInterval(t, at(0), at(1)), 10, 20)
		require.NoError(t, b.Decide(true))
		assert.Equal(t, booking.StatusApproved, b.Status())
	})

	t.Run("reject", func(t *testing.T) {
		b := booking.NewBooking(1, mustInterval(t, at(0), at(1)), 10, 20)
		require.NoError(t, b.Decide(false))
		assert.Equal(t, booking.StatusRejected, b.Status())
	})

	t.Run("decision is single-shot", func(t *testing.T) {
		b := booking.NewBooking(1, mustInterval(t, at(0), at(1)), 10, 20)
		require.NoError(t, b.Decide(true))

		err := b.Decide(false)
		require.ErrorIs(t, err, booking.ErrAlreadyDecided)
		// failed transition must not change the status
		assert.Equal(t, booking.StatusApproved, b.Status())
	})
}

func TestBookingBlocks(t *testing.T) {
	iv := mustInterval(t, at(0), at(1))

	assert.True(t, booking.Reconstruct(1, iv, booking.StatusWaiting, 10, 20).Blocks())
	assert.True(t, booking.Reconstruct(1, iv, booking.StatusApproved, 10, 20).Blocks())
	assert.False(t, booking.Reconstruct(1, iv, booking.StatusRejected, 10, 20).Blocks())
}

func TestBookingMatches(t *testing.T) {
	now := at(12)
	past := booking.Reconstruct(1, mustInterval(t, at(0), at(2)), booking.StatusApproved, 10, 20)
	current := booking.Reconstruct(2, mustInterval(t, at(10), at(14)), booking.StatusApproved, 10, 20)
	future := booking.Reconstruct(3, mustInterval(t, at(20), at(22)), booking.StatusWaiting, 10, 20)
	rejected := booking.Reconstruct(4, mustInterval(t, at(20), at(22)), booking.StatusRejected, 10, 20)

	all := []*booking.Booking{past, current, future, rejected}

	t.Run("ALL matches everything", func(t *testing.T) {
		for _, b := range all {
			assert.True(t, b.Matches(booking.StateAll, now))
		}
	})

	t.Run("time windows partition", func(t *testing.T) {
		assert.True(t, past.Matches(booking.StatePast, now))
		assert.False(t, past.Matches(booking.StateCurrent, now))
		assert.False(t, past.Matches(booking.StateFuture, now))

		assert.True(t, current.Matches(booking.StateCurrent, now))
		assert.False(t, current.Matches(booking.StatePast, now))
		assert.False(t, current.Matches(booking.StateFuture, now))

		assert.True(t, future.Matches(booking.StateFuture, now))
		assert.False(t, future.Matches(booking.StatePast, now))
		assert.False(t, future.Matches(booking.StateCurrent, now))
	})

	t.Run("status filters", func(t *testing.T) {
		assert.True(t, future.Matches(booking.StateWaiting, now))
		assert.False(t, current.Matches(booking.StateWaiting, now))
		assert.True(t, rejected.Matches(booking.StateRejected, now))
		assert.False(t, future.Matches(booking.StateRejected, now))
	})
}

func TestParseState(t *testing.T) {
	for _, token := range []string{"ALL", "CURRENT", "PAST", "FUTURE", "WAITING", "REJECTED"} {
		st, err := booking.ParseState(token)
		require.NoError(t, err)
		assert.Equal(t, token, string(st))
	}

	for _, token := range []string{"", "all", "UNKNOWN", "CANCELED"} {
		_, err := booking.ParseState(token)
		require.ErrorIs(t, err, booking.ErrUnknownState)
	}
}

func TestConflicts(t *testing.T) {
	existing := []*booking.Booking{
		booking.Reconstruct(1, mustInterval(t, at(0), at(2)), booking.StatusApproved, 10, 20),
		booking.Reconstruct(2, mustInterval(t, at(4), at(6)), booking.StatusRejected, 10, 21),
	}

	t.Run("overlap with blocking booking conflicts", func(t *testing.T) {
		assert.True(t, booking.Conflicts(existing, mustInterval(t, at(1), at(3))))
	})

	t.Run("overlap with rejected booking does not conflict", func(t *testing.T) {
		assert.False(t, booking.Conflicts(existing, mustInterval(t, at(4), at(6))))
	})

	t.Run("adjacent interval does not conflict", func(t *testing.T) {
		assert.False(t, booking.Conflicts(existing, mustInterval(t, at(2), at(4))))
	})
}
