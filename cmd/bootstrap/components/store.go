package components

import (
	"shareit/internal/domain/booking"
	"shareit/internal/domain/item"
	"shareit/internal/domain/request"
	"shareit/internal/domain/user"
	"shareit/internal/infra/memstore"

	"go.uber.org/fx"
)

// StoreModule provides one in-memory store per aggregate. The user
// store carries a unique secondary index on email so duplicate
// registrations fail atomically with the insert.
var StoreModule = fx.Module("store",
	fx.Provide(
		NewUserStore,
		NewItemStore,
		NewBookingStore,
		NewCommentStore,
		NewRequestStore,
	),
)

func NewUserStore() *memstore.Store[*user.User] {
	return memstore.NewIndexed(func(u *user.User) string {
		return u.Email().String()
	})
}

func NewItemStore() *memstore.Store[*item.Item] {
	return memstore.New[*item.Item]()
}

func NewBookingStore() *memstore.Store[*booking.Booking] {
	return memstore.New[*booking.Booking]()
}

func NewCommentStore() *memstore.Store[*item.Comment] {
	return memstore.New[*item.Comment]()
}

func NewRequestStore() *memstore.Store[*request.ItemRequest] {
	return memstore.New[*request.ItemRequest]()
}
