package usecase

import (
	"context"
	"errors"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/item"
	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
)

type BookingRepository interface {
	Create(ctx context.Context, interval booking.Interval, itemID, bookerID int64) (*booking.Booking, error)
	FindByID(ctx context.Context, id int64) (*booking.Booking, error)
	Decide(ctx context.Context, id int64, approved bool) (*booking.Booking, error)
	FindByBooker(ctx context.Context, bookerID int64) ([]*booking.Booking, error)
	FindByItemIDs(ctx context.Context, itemIDs []int64) ([]*booking.Booking, error)
	FindLastByItem(ctx context.Context, itemID int64, now time.Time) (*booking.Booking, error)
	FindNextByItem(ctx context.Context, itemID int64, now time.Time) (*booking.Booking, error)
	HasFinishedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) (*user.User, error)
	Save(ctx context.Context, u *user.User) (*user.User, error)
	FindByID(ctx context.Context, id int64) (*user.User, error)
	FindAll(ctx context.Context) ([]*user.User, error)
	Delete(ctx context.Context, id int64) error
}

type ItemRepository interface {
	Create(ctx context.Context, it *item.Item) (*item.Item, error)
	Save(ctx context.Context, it *item.Item) (*item.Item, error)
	FindByID(ctx context.Context, id int64) (*item.Item, error)
	FindByOwner(ctx context.Context, ownerID int64) ([]*item.Item, error)
	Search(ctx context.Context, text string) ([]*item.Item, error)
	FindByRequestIDs(ctx context.Context, requestIDs []int64) ([]*item.Item, error)
	Delete(ctx context.Context, id int64) error
}

type CreateBookingParams struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

type BookingUseCase interface {
	Create(ctx context.Context, bookerID int64, params CreateBookingParams) (*BookingView, error)
	Decide(ctx context.Context, bookingID, actorID int64, approved bool) (*BookingView, error)
	GetByID(ctx context.Context, bookingID, viewerID int64) (*BookingView, error)
	ListByBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]*BookingView, error)
	ListByOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]*BookingView, error)
}

type bookingUseCaseImpl struct {
	bookingRepo BookingRepository
	userRepo    UserRepository
	itemRepo    ItemRepository
	clock       clock.Clock
}

func NewBookingUseCase(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	itemRepo ItemRepository,
	clock clock.Clock,
) BookingUseCase {
	return &bookingUseCaseImpl{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		itemRepo:    itemRepo,
		clock:       clock,
	}
}

// Create resolves collaborators first and leaves the overlap guard plus
// insert to the repository, which runs them atomically. Precondition
// failures are checked in a fixed order and each maps to a distinct
// error.
func (u *bookingUseCaseImpl) Create(ctx context.Context, bookerID int64, params CreateBookingParams) (*BookingView, error) {
	interval, err := booking.NewInterval(params.Start, params.End)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidInterval)
	}
	if interval.StartsBefore(u.clock.Now()) {
		return nil, errs.Mark(errs.New("start is in the past"), ErrInvalidInterval)
	}

	it, err := u.itemRepo.FindByID(ctx, params.ItemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if !it.Available() {
		return nil, ErrItemUnavailable
	}
	if it.IsOwnedBy(bookerID) {
		return nil, ErrSelfBooking
	}

	booker, err := u.userRepo.FindByID(ctx, bookerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	created, err := u.bookingRepo.Create(ctx, interval, it.ID(), booker.ID())
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(err, ErrBookingConflict)
		}
		return nil, err
	}

	return newBookingView(created, booker, it), nil
}

// Decide performs the owner's single WAITING -> APPROVED/REJECTED
// transition. Preconditions are checked in order: existence, actor,
// state.
func (u *bookingUseCaseImpl) Decide(ctx context.Context, bookingID, actorID int64, approved bool) (*BookingView, error) {
	b, err := u.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	it, err := u.itemRepo.FindByID(ctx, b.ItemID())
	if err != nil {
		return nil, errs.Wrap(err, "booked item missing")
	}
	if !it.IsOwnedBy(actorID) {
		return nil, ErrForbidden
	}

	decided, err := u.bookingRepo.Decide(ctx, bookingID, approved)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		if errors.Is(err, booking.ErrAlreadyDecided) {
			return nil, errs.Mark(err, ErrAlreadyDecided)
		}
		return nil, err
	}

	booker, err := u.userRepo.FindByID(ctx, decided.BookerID())
	if err != nil {
		return nil, errs.Wrap(err, "booker missing")
	}
	return newBookingView(decided, booker, it), nil
}

// GetByID lets only the booker or the item's owner read a booking;
// anyone else gets not-found so existence does not leak.
func (u *bookingUseCaseImpl) GetByID(ctx context.Context, bookingID, viewerID int64) (*BookingView, error) {
	b, err := u.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	it, err := u.itemRepo.FindByID(ctx, b.ItemID())
	if err != nil {
		return nil, errs.Wrap(err, "booked item missing")
	}
	if b.BookerID() != viewerID && !it.IsOwnedBy(viewerID) {
		return nil, ErrBookingNotFound
	}

	booker, err := u.userRepo.FindByID(ctx, b.BookerID())
	if err != nil {
		return nil, errs.Wrap(err, "booker missing")
	}
	return newBookingView(b, booker, it), nil
}

func (u *bookingUseCaseImpl) ListByBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]*BookingView, error) {
	st, err := u.validateListing(ctx, bookerID, state, from, size)
	if err != nil {
		return nil, err
	}
	bs, err := u.bookingRepo.FindByBooker(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	return u.buildListViews(ctx, bs, st, from, size)
}

func (u *bookingUseCaseImpl) ListByOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]*BookingView, error) {
	st, err := u.validateListing(ctx, ownerID, state, from, size)
	if err != nil {
		return nil, err
	}
	items, err := u.itemRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	itemIDs := make([]int64, 0, len(items))
	for _, it := range items {
		itemIDs = append(itemIDs, it.ID())
	}
	bs, err := u.bookingRepo.FindByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	return u.buildListViews(ctx, bs, st, from, size)
}

// validateListing rejects bad input before touching collaborators: the
// state token and page window first, then the user-existence check.
func (u *bookingUseCaseImpl) validateListing(ctx context.Context, userID int64, state string, from, size int) (booking.State, error) {
	st, err := booking.ParseState(state)
	if err != nil {
		return "", errs.Mark(err, ErrInvalidArgument)
	}
	if from < 0 || size <= 0 {
		return "", errs.Mark(errs.New("invalid page window"), ErrInvalidArgument)
	}
	if _, err := u.userRepo.FindByID(ctx, userID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return st, nil
}

// buildListViews classifies against a single now so one response never
// straddles two clock readings, then paginates the already sorted list.
func (u *bookingUseCaseImpl) buildListViews(ctx context.Context, bs []*booking.Booking, st booking.State, from, size int) ([]*BookingView, error) {
	now := u.clock.Now()
	filtered := make([]*booking.Booking, 0, len(bs))
	for _, b := range bs {
		if b.Matches(st, now) {
			filtered = append(filtered, b)
		}
	}
	page := paginate(filtered, from, size)

	users := make(map[int64]*user.User)
	items := make(map[int64]*item.Item)
	views := make([]*BookingView, 0, len(page))
	for _, b := range page {
		booker, ok := users[b.BookerID()]
		if !ok {
			var err error
			booker, err = u.userRepo.FindByID(ctx, b.BookerID())
			if err != nil {
				return nil, errs.Wrap(err, "booker missing")
			}
			users[b.BookerID()] = booker
		}
		it, ok := items[b.ItemID()]
		if !ok {
			var err error
			it, err = u.itemRepo.FindByID(ctx, b.ItemID())
			if err != nil {
				return nil, errs.Wrap(err, "booked item missing")
			}
			items[b.ItemID()] = it
		}
		views = append(views, newBookingView(b, booker, it))
	}
	return views, nil
}
