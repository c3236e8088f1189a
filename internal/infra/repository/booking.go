package repository

import (
	"context"
	"sort"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/infra/memstore"
)

type BookingRepository struct {
	store *memstore.Store[*booking.Booking]
}

func NewBookingRepository(store *memstore.Store[*booking.Booking]) *BookingRepository {
	return &BookingRepository{store: store}
}

// Create runs the overlap guard and the insert under the store's write
// lock, so two racing creates for overlapping intervals on the same item
// cannot both commit. Collaborator lookups must already be done.
func (r *BookingRepository) Create(_ context.Context, interval booking.Interval, itemID, bookerID int64) (*booking.Booking, error) {
	created, err := r.store.InsertWith(
		func(existing []*booking.Booking) error {
			var sameItem []*booking.Booking
			for _, b := range existing {
				if b.ItemID() == itemID {
					sameItem = append(sameItem, b)
				}
			}
			if booking.Conflicts(sameItem, interval) {
				return infra.NewRepoErr(infra.KindConflict, "interval overlaps an existing booking")
			}
			return nil
		},
		func(id int64) *booking.Booking {
			return booking.NewBooking(id, interval, itemID, bookerID)
		},
	)
	if err != nil {
		return nil, err
	}
	return clone(created), nil
}

func (r *BookingRepository) FindByID(_ context.Context, id int64) (*booking.Booking, error) {
	b, ok := r.store.Get(id)
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "booking not found")
	}
	return clone(b), nil
}

// Decide runs the status transition under the write lock, so concurrent
// decisions cannot both pass the WAITING guard. The transition is
// applied to a fresh copy that replaces the stored one; pointers held by
// concurrent readers are never written to.
func (r *BookingRepository) Decide(_ context.Context, id int64, approved bool) (*booking.Booking, error) {
	b, err := r.store.Update(id, func(cur *booking.Booking) (*booking.Booking, error) {
		next := clone(cur)
		if err := next.Decide(approved); err != nil {
			return nil, err
		}
		return next, nil
	})
	if err == memstore.ErrNotFound {
		return nil, infra.NewRepoErr(infra.KindNotFound, "booking not found")
	}
	if err != nil {
		return nil, err
	}
	return clone(b), nil
}

// FindByBooker returns the booker's bookings sorted by start descending.
func (r *BookingRepository) FindByBooker(_ context.Context, bookerID int64) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, b := range r.store.All() {
		if b.BookerID() == bookerID {
			out = append(out, clone(b))
		}
	}
	sortByStartDesc(out)
	return out, nil
}

// FindByItemIDs returns bookings of any of the given items sorted by
// start descending. Used for owner listings.
func (r *BookingRepository) FindByItemIDs(_ context.Context, itemIDs []int64) ([]*booking.Booking, error) {
	ids := make(map[int64]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		ids[id] = struct{}{}
	}
	var out []*booking.Booking
	for _, b := range r.store.All() {
		if _, ok := ids[b.ItemID()]; ok {
			out = append(out, clone(b))
		}
	}
	sortByStartDesc(out)
	return out, nil
}

// FindLastByItem returns the latest approved booking of the item that
// ended before now, or nil.
func (r *BookingRepository) FindLastByItem(_ context.Context, itemID int64, now time.Time) (*booking.Booking, error) {
	var last *booking.Booking
	for _, b := range r.store.All() {
		if b.ItemID() != itemID || b.Status() != booking.StatusApproved {
			continue
		}
		if !b.Interval().End().Before(now) {
			continue
		}
		if last == nil || b.Interval().End().After(last.Interval().End()) {
			last = b
		}
	}
	if last == nil {
		return nil, nil
	}
	return clone(last), nil
}

// FindNextByItem returns the earliest approved booking of the item that
// starts after now, or nil.
func (r *BookingRepository) FindNextByItem(_ context.Context, itemID int64, now time.Time) (*booking.Booking, error) {
	var next *booking.Booking
	for _, b := range r.store.All() {
		if b.ItemID() != itemID || b.Status() != booking.StatusApproved {
			continue
		}
		if !b.Interval().Start().After(now) {
			continue
		}
		if next == nil || b.Interval().Start().Before(next.Interval().Start()) {
			next = b
		}
	}
	if next == nil {
		return nil, nil
	}
	return clone(next), nil
}

// HasFinishedBooking reports whether the booker has an approved booking
// of the item that ended before now. Comment rules depend on it.
func (r *BookingRepository) HasFinishedBooking(_ context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	for _, b := range r.store.All() {
		if b.BookerID() == bookerID && b.ItemID() == itemID &&
			b.Status() == booking.StatusApproved && b.Interval().End().Before(now) {
			return true, nil
		}
	}
	return false, nil
}

func sortByStartDesc(bs []*booking.Booking) {
	sort.Slice(bs, func(i, j int) bool {
		return bs[i].Interval().Start().After(bs[j].Interval().Start())
	})
}

func clone(b *booking.Booking) *booking.Booking {
	return booking.Reconstruct(b.ID(), b.Interval(), b.Status(), b.ItemID(), b.BookerID())
}
