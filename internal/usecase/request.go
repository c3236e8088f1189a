package usecase

import (
	"context"

	"shareit/internal/domain/request"
	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
)

type RequestRepository interface {
	Create(ctx context.Context, req *request.ItemRequest) (*request.ItemRequest, error)
	FindByID(ctx context.Context, id int64) (*request.ItemRequest, error)
	FindByRequester(ctx context.Context, requesterID int64) ([]*request.ItemRequest, error)
	FindExceptRequester(ctx context.Context, requesterID int64) ([]*request.ItemRequest, error)
	Delete(ctx context.Context, id int64) error
}

type RequestUseCase interface {
	Create(ctx context.Context, requesterID int64, description string) (*RequestView, error)
	ListOwn(ctx context.Context, requesterID int64) ([]*RequestView, error)
	ListOthers(ctx context.Context, requesterID int64, from, size int) ([]*RequestView, error)
	GetByID(ctx context.Context, requestID, viewerID int64) (*RequestView, error)
	Delete(ctx context.Context, requestID, userID int64) error
}

type requestUseCaseImpl struct {
	requestRepo RequestRepository
	userRepo    UserRepository
	itemRepo    ItemRepository
	clock       clock.Clock
}

func NewRequestUseCase(
	requestRepo RequestRepository,
	userRepo UserRepository,
	itemRepo ItemRepository,
	clock clock.Clock,
) RequestUseCase {
	return &requestUseCaseImpl{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		itemRepo:    itemRepo,
		clock:       clock,
	}
}

func (u *requestUseCaseImpl) Create(ctx context.Context, requesterID int64, description string) (*RequestView, error) {
	if err := u.ensureUser(ctx, requesterID); err != nil {
		return nil, err
	}
	req, err := request.NewItemRequest(description, requesterID, u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}
	created, err := u.requestRepo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	return newRequestView(created, nil), nil
}

func (u *requestUseCaseImpl) ListOwn(ctx context.Context, requesterID int64) ([]*RequestView, error) {
	if err := u.ensureUser(ctx, requesterID); err != nil {
		return nil, err
	}
	reqs, err := u.requestRepo.FindByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return u.withItems(ctx, reqs)
}

func (u *requestUseCaseImpl) ListOthers(ctx context.Context, requesterID int64, from, size int) ([]*RequestView, error) {
	if from < 0 || size <= 0 {
		return nil, errs.Mark(errs.New("invalid page window"), ErrInvalidArgument)
	}
	if err := u.ensureUser(ctx, requesterID); err != nil {
		return nil, err
	}
	reqs, err := u.requestRepo.FindExceptRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return u.withItems(ctx, paginate(reqs, from, size))
}

func (u *requestUseCaseImpl) GetByID(ctx context.Context, requestID, viewerID int64) (*RequestView, error) {
	if err := u.ensureUser(ctx, viewerID); err != nil {
		return nil, err
	}
	req, err := u.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	views, err := u.withItems(ctx, []*request.ItemRequest{req})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (u *requestUseCaseImpl) Delete(ctx context.Context, requestID, userID int64) error {
	req, err := u.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrRequestNotFound
		}
		return err
	}
	if !req.IsRequestedBy(userID) {
		return ErrForbidden
	}
	return u.requestRepo.Delete(ctx, requestID)
}

func (u *requestUseCaseImpl) ensureUser(ctx context.Context, userID int64) error {
	if _, err := u.userRepo.FindByID(ctx, userID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// withItems decorates each request with the items listed against it.
func (u *requestUseCaseImpl) withItems(ctx context.Context, reqs []*request.ItemRequest) ([]*RequestView, error) {
	if len(reqs) == 0 {
		return []*RequestView{}, nil
	}
	ids := make([]int64, 0, len(reqs))
	for _, req := range reqs {
		ids = append(ids, req.ID())
	}
	items, err := u.itemRepo.FindByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byRequest := make(map[int64][]ItemView)
	for _, it := range items {
		if rid := it.RequestID(); rid != nil {
			byRequest[*rid] = append(byRequest[*rid], *newItemView(it))
		}
	}
	views := make([]*RequestView, 0, len(reqs))
	for _, req := range reqs {
		views = append(views, newRequestView(req, byRequest[req.ID()]))
	}
	return views, nil
}
