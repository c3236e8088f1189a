package usecase

import (
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/item"
	"shareit/internal/domain/request"
	"shareit/internal/domain/user"
)

// Read models handed to the transport layer. Instants serialize as
// RFC 3339 UTC, so string comparison order matches time order.

type UserView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserShortView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ItemShortView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingView struct {
	ID     int64         `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Status string        `json:"status"`
	Booker UserShortView `json:"booker"`
	Item   ItemShortView `json:"item"`
}

// BookingShortView is embedded in item views as last/next booking info.
type BookingShortView struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type CommentView struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type ItemView struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	OwnerID     int64             `json:"ownerId"`
	RequestID   *int64            `json:"requestId,omitempty"`
	LastBooking *BookingShortView `json:"lastBooking,omitempty"`
	NextBooking *BookingShortView `json:"nextBooking,omitempty"`
	Comments    []CommentView     `json:"comments"`
}

type RequestView struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	RequesterID int64      `json:"requesterId"`
	Created     time.Time  `json:"created"`
	Items       []ItemView `json:"items"`
}

func newBookingView(b *booking.Booking, booker *user.User, it *item.Item) *BookingView {
	return &BookingView{
		ID:     b.ID(),
		Start:  b.Interval().Start(),
		End:    b.Interval().End(),
		Status: b.Status().String(),
		Booker: UserShortView{ID: booker.ID(), Name: booker.Name()},
		Item:   ItemShortView{ID: it.ID(), Name: it.Name()},
	}
}

func newBookingShortView(b *booking.Booking) *BookingShortView {
	if b == nil {
		return nil
	}
	return &BookingShortView{ID: b.ID(), BookerID: b.BookerID()}
}

func newUserView(u *user.User) *UserView {
	return &UserView{ID: u.ID(), Name: u.Name(), Email: u.Email().String()}
}

func newCommentView(c *item.Comment, authorName string) CommentView {
	return CommentView{
		ID:         c.ID(),
		Text:       c.Text(),
		AuthorName: authorName,
		Created:    c.Created(),
	}
}

func newItemView(it *item.Item) *ItemView {
	return &ItemView{
		ID:          it.ID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		OwnerID:     it.OwnerID(),
		RequestID:   it.RequestID(),
		Comments:    []CommentView{},
	}
}

func newRequestView(r *request.ItemRequest, items []ItemView) *RequestView {
	if items == nil {
		items = []ItemView{}
	}
	return &RequestView{
		ID:          r.ID(),
		Description: r.Description(),
		RequesterID: r.RequesterID(),
		Created:     r.Created(),
		Items:       items,
	}
}

// paginate applies the filter-then-sort-then-slice contract: skip from,
// take size. Bounds are validated by the caller.
func paginate[T any](s []T, from, size int) []T {
	if from >= len(s) {
		return []T{}
	}
	end := from + size
	if end > len(s) {
		end = len(s)
	}
	return s[from:end]
}
