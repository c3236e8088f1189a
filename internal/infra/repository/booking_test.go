//go:build unit

package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/infra/memstore"
	"shareit/internal/infra/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

func at(h int) time.Time {
	return base.Add(time.Duration(h) * time.Hour)
}

func mustInterval(t *testing.T, start, end time.Time) booking.Interval {
	t.Helper()
	i, err := booking.NewInterval(start, end)
	require.NoError(t, err)
	return i
}

func newBookingRepo() *repository.BookingRepository {
	return repository.NewBookingRepository(memstore.New[*booking.Booking]())
}

func TestBookingRepositoryCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and starts waiting", func(t *testing.T) {
		repo := newBookingRepo()

		b, err := repo.Create(ctx, mustInterval(t, at(0), at(1)), 10, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(1), b.ID())
		assert.Equal(t, booking.StatusWaiting, b.Status())
	})

	t.Run("overlapping interval on same item conflicts", func(t *testing.T) {
		repo := newBookingRepo()

		_, err := repo.Create(ctx, mustInterval(t, at(0), at(2)), 10, 20)
		require.NoError(t, err)

		_, err = repo.Create(ctx, mustInterval(t, at(1), at(3)), 10, 21)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindConflict))
	})

	t.Run("same interval on another item is fine", func(t *testing.T) {
		repo := newBookingRepo()

		_, err := repo.Create(ctx, mustInterval(t, at(0), at(2)), 10, 20)
		require.NoError(t, err)

		_, err = repo.Create(ctx, mustInterval(t, at(0), at(2)), 11, 21)
		require.NoError(t, err)
	})

	t.Run("rejected booking frees the slot", func(t *testing.T) {
		repo := newBookingRepo()

		b, err := repo.Create(ctx, mustInterval(t, at(0), at(2)), 10, 20)
		require.NoError(t, err)
		_, err = repo.Decide(ctx, b.ID(), false)
		require.NoError(t, err)

		_, err = repo.Create(ctx, mustInterval(t, at(0), at(2)), 10, 21)
		require.NoError(t, err)
	})

	t.Run("racing overlapping creates commit exactly one", func(t *testing.T) {
		repo := newBookingRepo()
		interval := mustInterval(t, at(0), at(2))

		const workers = 16
		var wg sync.WaitGroup
		results := make(chan error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(booker int64) {
				defer wg.Done()
				_, err := repo.Create(ctx, interval, 10, booker)
				results <- err
			}(int64(100 + i))
		}
		wg.Wait()
		close(results)

		succeeded := 0
		for err := range results {
			if err == nil {
				succeeded++
			} else {
				assert.True(t, infra.IsKind(err, infra.KindConflict))
			}
		}
		assert.Equal(t, 1, succeeded)
	})
}

func TestBookingRepositoryDecide(t *testing.T) {
	ctx := context.Background()

	t.Run("missing booking", func(t *testing.T) {
		repo := newBookingRepo()
		_, err := repo.Decide(ctx, 99, true)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	// Reads must stay safe while a decision replaces the stored booking.
	// The race detector flags this if Decide ever mutates a pointer that
	// readers hold.
	t.Run("concurrent reads during decision", func(t *testing.T) {
		repo := newBookingRepo()
		b, err := repo.Create(ctx, mustInterval(t, at(0), at(1)), 10, 20)
		require.NoError(t, err)

		before, err := repo.FindByID(ctx, b.ID())
		require.NoError(t, err)

		done := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				got, err := repo.FindByID(ctx, b.ID())
				assert.NoError(t, err)
				status := got.Status()
				assert.True(t, status == booking.StatusWaiting || status == booking.StatusApproved)
			}
		}()

		decided, err := repo.Decide(ctx, b.ID(), true)
		close(done)
		wg.Wait()

		require.NoError(t, err)
		assert.Equal(t, booking.StatusApproved, decided.Status())
		// The copy fetched before the decision is untouched.
		assert.Equal(t, booking.StatusWaiting, before.Status())
	})

	t.Run("second decision fails and keeps the first", func(t *testing.T) {
		repo := newBookingRepo()
		b, err := repo.Create(ctx, mustInterval(t, at(0), at(1)), 10, 20)
		require.NoError(t, err)

		decided, err := repo.Decide(ctx, b.ID(), true)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusApproved, decided.Status())

		_, err = repo.Decide(ctx, b.ID(), false)
		require.ErrorIs(t, err, booking.ErrAlreadyDecided)

		stored, err := repo.FindByID(ctx, b.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusApproved, stored.Status())
	})
}

func TestBookingRepositoryListings(t *testing.T) {
	ctx := context.Background()
	repo := newBookingRepo()

	early, err := repo.Create(ctx, mustInterval(t, at(0), at(1)), 10, 20)
	require.NoError(t, err)
	late, err := repo.Create(ctx, mustInterval(t, at(4), at(5)), 11, 20)
	require.NoError(t, err)
	_, err = repo.Create(ctx, mustInterval(t, at(2), at(3)), 10, 21)
	require.NoError(t, err)

	t.Run("by booker sorted start desc", func(t *testing.T) {
		bs, err := repo.FindByBooker(ctx, 20)
		require.NoError(t, err)
		require.Len(t, bs, 2)
		assert.Equal(t, late.ID(), bs[0].ID())
		assert.Equal(t, early.ID(), bs[1].ID())
	})

	t.Run("by item ids", func(t *testing.T) {
		bs, err := repo.FindByItemIDs(ctx, []int64{10})
		require.NoError(t, err)
		assert.Len(t, bs, 2)
	})

	t.Run("returned copies do not leak the stored entity", func(t *testing.T) {
		b, err := repo.FindByID(ctx, early.ID())
		require.NoError(t, err)
		require.NoError(t, b.Decide(true))

		stored, err := repo.FindByID(ctx, early.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusWaiting, stored.Status())
	})
}

func TestBookingRepositoryItemTimeline(t *testing.T) {
	ctx := context.Background()
	repo := newBookingRepo()
	now := at(10)

	mk := func(s, e int, approve bool) *booking.Booking {
		t.Helper()
		b, err := repo.Create(ctx, mustInterval(t, at(s), at(e)), 10, 20)
		require.NoError(t, err)
		if approve {
			_, err = repo.Decide(ctx, b.ID(), true)
			require.NoError(t, err)
		}
		return b
	}

	mk(0, 1, true)
	lastWant := mk(2, 3, true)
	nextWant := mk(12, 13, true)
	mk(14, 15, true)
	mk(16, 17, false) // rejected, never last/next

	t.Run("last approved before now", func(t *testing.T) {
		last, err := repo.FindLastByItem(ctx, 10, now)
		require.NoError(t, err)
		require.NotNil(t, last)
		assert.Equal(t, lastWant.ID(), last.ID())
	})

	t.Run("next approved after now", func(t *testing.T) {
		next, err := repo.FindNextByItem(ctx, 10, now)
		require.NoError(t, err)
		require.NotNil(t, next)
		assert.Equal(t, nextWant.ID(), next.ID())
	})

	t.Run("nil when nothing qualifies", func(t *testing.T) {
		last, err := repo.FindLastByItem(ctx, 99, now)
		require.NoError(t, err)
		assert.Nil(t, last)
	})

	t.Run("finished booking check", func(t *testing.T) {
		ok, err := repo.HasFinishedBooking(ctx, 20, 10, now)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.HasFinishedBooking(ctx, 21, 10, now)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
