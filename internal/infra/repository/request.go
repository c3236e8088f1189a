package repository

import (
	"context"
	"sort"

	"shareit/internal/domain/request"
	"shareit/internal/infra"
	"shareit/internal/infra/memstore"
)

type RequestRepository struct {
	store *memstore.Store[*request.ItemRequest]
}

func NewRequestRepository(store *memstore.Store[*request.ItemRequest]) *RequestRepository {
	return &RequestRepository{store: store}
}

func (r *RequestRepository) Create(_ context.Context, req *request.ItemRequest) (*request.ItemRequest, error) {
	created, err := r.store.InsertWith(nil, func(id int64) *request.ItemRequest {
		return request.Reconstruct(id, req.Description(), req.RequesterID(), req.Created())
	})
	if err != nil {
		return nil, err
	}
	return cloneRequest(created), nil
}

func (r *RequestRepository) FindByID(_ context.Context, id int64) (*request.ItemRequest, error) {
	req, ok := r.store.Get(id)
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "request not found")
	}
	return cloneRequest(req), nil
}

// FindByRequester returns the user's own requests newest first.
func (r *RequestRepository) FindByRequester(_ context.Context, requesterID int64) ([]*request.ItemRequest, error) {
	var out []*request.ItemRequest
	for _, req := range r.store.All() {
		if req.RequesterID() == requesterID {
			out = append(out, cloneRequest(req))
		}
	}
	sortByCreatedDesc(out)
	return out, nil
}

// FindExceptRequester returns everyone else's requests newest first;
// the caller applies pagination.
func (r *RequestRepository) FindExceptRequester(_ context.Context, requesterID int64) ([]*request.ItemRequest, error) {
	var out []*request.ItemRequest
	for _, req := range r.store.All() {
		if req.RequesterID() != requesterID {
			out = append(out, cloneRequest(req))
		}
	}
	sortByCreatedDesc(out)
	return out, nil
}

func (r *RequestRepository) Delete(_ context.Context, id int64) error {
	r.store.Delete(id)
	return nil
}

func sortByCreatedDesc(reqs []*request.ItemRequest) {
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].Created().After(reqs[j].Created()) })
}

func cloneRequest(req *request.ItemRequest) *request.ItemRequest {
	return request.Reconstruct(req.ID(), req.Description(), req.RequesterID(), req.Created())
}
