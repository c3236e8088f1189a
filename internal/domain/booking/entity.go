package booking

import (
	"errors"
	"time"
)

var (
	// ErrAlreadyDecided means the booking left WAITING; APPROVED and
	// REJECTED are terminal.
	ErrAlreadyDecided = errors.New("booking is already decided")
)

// Booking is a reservation of an item for a time interval. The id, item
// and booker references are immutable after creation; only the status
// changes, and only through Decide.
type Booking struct {
	id       int64
	interval Interval
	status   Status
	itemID   int64
	bookerID int64
}

func NewBooking(id int64, interval Interval, itemID, bookerID int64) *Booking {
	return &Booking{
		id:       id,
		interval: interval,
		status:   StatusWaiting,
		itemID:   itemID,
		bookerID: bookerID,
	}
}

func Reconstruct(id int64, interval Interval, status Status, itemID, bookerID int64) *Booking {
	return &Booking{
		id:       id,
		interval: interval,
		status:   status,
		itemID:   itemID,
		bookerID: bookerID,
	}
}

// Decide performs the single WAITING -> APPROVED/REJECTED transition.
func (b *Booking) Decide(approved bool) error {
	if b.status != StatusWaiting {
		return ErrAlreadyDecided
	}
	if approved {
		b.status = StatusApproved
	} else {
		b.status = StatusRejected
	}
	return nil
}

// Blocks reports whether the booking occupies its interval for conflict
// purposes. A rejected booking frees the slot; waiting and approved
// bookings hold it so two overlapping creates can never both commit.
func (b *Booking) Blocks() bool {
	return b.status != StatusRejected
}

// Matches classifies the booking against a listing state relative to a
// single now captured by the caller.
func (b *Booking) Matches(state State, now time.Time) bool {
	switch state {
	case StateAll:
		return true
	case StateCurrent:
		return b.interval.Start().Before(now) && b.interval.End().After(now)
	case StatePast:
		return b.interval.End().Before(now)
	case StateFuture:
		return b.interval.Start().After(now)
	case StateWaiting:
		return b.status == StatusWaiting
	case StateRejected:
		return b.status == StatusRejected
	default:
		return false
	}
}

func (b *Booking) ID() int64          { return b.id }
func (b *Booking) Interval() Interval { return b.interval }
func (b *Booking) Status() Status     { return b.status }
func (b *Booking) ItemID() int64      { return b.itemID }
func (b *Booking) BookerID() int64    { return b.bookerID }

// Conflicts reports whether the candidate interval overlaps a blocking
// booking in bs. Linear scan; approved-booking counts per item stay small.
func Conflicts(bs []*Booking, candidate Interval) bool {
	for _, b := range bs {
		if b.Blocks() && b.interval.Overlaps(candidate) {
			return true
		}
	}
	return false
}
