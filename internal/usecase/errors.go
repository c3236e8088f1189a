package usecase

import "errors"

// Sentinel errors consumed by the handler layer. Every operation either
// fully commits or returns one of these with nothing persisted.
var (
	ErrInvalidInterval = errors.New("invalid booking interval")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrValidation      = errors.New("validation failed")

	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrRequestNotFound = errors.New("request not found")

	ErrForbidden         = errors.New("operation not allowed for this user")
	ErrSelfBooking       = errors.New("owner cannot book their own item")
	ErrItemUnavailable   = errors.New("item is not available for booking")
	ErrBookingConflict   = errors.New("booking interval conflict")
	ErrAlreadyDecided    = errors.New("booking is already decided")
	ErrEmailTaken        = errors.New("email already in use")
	ErrCommentNotAllowed = errors.New("user has no finished booking of this item")
)
