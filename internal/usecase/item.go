package usecase

import (
	"context"
	"strings"

	"shareit/internal/domain/item"
	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
)

type CommentRepository interface {
	Create(ctx context.Context, c *item.Comment) (*item.Comment, error)
	FindByItem(ctx context.Context, itemID int64) ([]*item.Comment, error)
}

type CreateItemParams struct {
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

type PatchItemParams struct {
	Name        *string
	Description *string
	Available   *bool
	RequestID   *int64
}

type ItemUseCase interface {
	Create(ctx context.Context, ownerID int64, params CreateItemParams) (*ItemView, error)
	Update(ctx context.Context, itemID, ownerID int64, patch PatchItemParams) (*ItemView, error)
	GetByID(ctx context.Context, itemID, viewerID int64) (*ItemView, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*ItemView, error)
	Search(ctx context.Context, text string) ([]*ItemView, error)
	Delete(ctx context.Context, itemID, ownerID int64) error
	AddComment(ctx context.Context, itemID, authorID int64, text string) (*CommentView, error)
}

type itemUseCaseImpl struct {
	itemRepo    ItemRepository
	userRepo    UserRepository
	bookingRepo BookingRepository
	commentRepo CommentRepository
	clock       clock.Clock
}

func NewItemUseCase(
	itemRepo ItemRepository,
	userRepo UserRepository,
	bookingRepo BookingRepository,
	commentRepo CommentRepository,
	clock clock.Clock,
) ItemUseCase {
	return &itemUseCaseImpl{
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
		commentRepo: commentRepo,
		clock:       clock,
	}
}

func (u *itemUseCaseImpl) Create(ctx context.Context, ownerID int64, params CreateItemParams) (*ItemView, error) {
	if _, err := u.userRepo.FindByID(ctx, ownerID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	it, err := item.NewItem(params.Name, params.Description, params.Available, ownerID, params.RequestID)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	created, err := u.itemRepo.Create(ctx, it)
	if err != nil {
		return nil, err
	}
	return newItemView(created), nil
}

// Update is owner-only; others get not-found rather than forbidden so
// item ownership does not leak.
func (u *itemUseCaseImpl) Update(ctx context.Context, itemID, ownerID int64, patch PatchItemParams) (*ItemView, error) {
	it, err := u.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if !it.IsOwnedBy(ownerID) {
		return nil, ErrItemNotFound
	}

	if err := it.Patch(patch.Name, patch.Description, patch.Available, patch.RequestID); err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	saved, err := u.itemRepo.Save(ctx, it)
	if err != nil {
		return nil, err
	}
	return newItemView(saved), nil
}

// GetByID returns the item with its comments; the owner additionally
// sees last/next approved booking info.
func (u *itemUseCaseImpl) GetByID(ctx context.Context, itemID, viewerID int64) (*ItemView, error) {
	it, err := u.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	view := newItemView(it)
	if it.IsOwnedBy(viewerID) {
		if err := u.attachBookingInfo(ctx, view); err != nil {
			return nil, err
		}
	}
	if err := u.attachComments(ctx, view); err != nil {
		return nil, err
	}
	return view, nil
}

func (u *itemUseCaseImpl) ListByOwner(ctx context.Context, ownerID int64) ([]*ItemView, error) {
	if _, err := u.userRepo.FindByID(ctx, ownerID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	items, err := u.itemRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	views := make([]*ItemView, 0, len(items))
	for _, it := range items {
		view := newItemView(it)
		if err := u.attachBookingInfo(ctx, view); err != nil {
			return nil, err
		}
		if err := u.attachComments(ctx, view); err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// Search returns available items matching the text; a blank query is an
// empty result, not an error.
func (u *itemUseCaseImpl) Search(ctx context.Context, text string) ([]*ItemView, error) {
	if strings.TrimSpace(text) == "" {
		return []*ItemView{}, nil
	}
	items, err := u.itemRepo.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	views := make([]*ItemView, 0, len(items))
	for _, it := range items {
		views = append(views, newItemView(it))
	}
	return views, nil
}

func (u *itemUseCaseImpl) Delete(ctx context.Context, itemID, ownerID int64) error {
	it, err := u.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	if !it.IsOwnedBy(ownerID) {
		return ErrItemNotFound
	}
	return u.itemRepo.Delete(ctx, itemID)
}

// AddComment requires the author to have an approved booking of the item
// that already finished.
func (u *itemUseCaseImpl) AddComment(ctx context.Context, itemID, authorID int64, text string) (*CommentView, error) {
	author, err := u.userRepo.FindByID(ctx, authorID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if _, err := u.itemRepo.FindByID(ctx, itemID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	now := u.clock.Now()
	ok, err := u.bookingRepo.HasFinishedBooking(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCommentNotAllowed
	}

	c, err := item.NewComment(text, itemID, authorID, now)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}
	created, err := u.commentRepo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	view := newCommentView(created, author.Name())
	return &view, nil
}

func (u *itemUseCaseImpl) attachBookingInfo(ctx context.Context, view *ItemView) error {
	now := u.clock.Now()
	last, err := u.bookingRepo.FindLastByItem(ctx, view.ID, now)
	if err != nil {
		return err
	}
	next, err := u.bookingRepo.FindNextByItem(ctx, view.ID, now)
	if err != nil {
		return err
	}
	view.LastBooking = newBookingShortView(last)
	view.NextBooking = newBookingShortView(next)
	return nil
}

func (u *itemUseCaseImpl) attachComments(ctx context.Context, view *ItemView) error {
	comments, err := u.commentRepo.FindByItem(ctx, view.ID)
	if err != nil {
		return err
	}
	authorNames := make(map[int64]string)
	for _, c := range comments {
		name, ok := authorNames[c.AuthorID()]
		if !ok {
			author, err := u.userRepo.FindByID(ctx, c.AuthorID())
			if err != nil {
				return errs.Wrap(err, "comment author missing")
			}
			name = author.Name()
			authorNames[c.AuthorID()] = name
		}
		view.Comments = append(view.Comments, newCommentView(c, name))
	}
	return nil
}
