package repository

import (
	"context"
	"sort"

	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/infra/memstore"
)

type UserRepository struct {
	store *memstore.Store[*user.User]
}

func NewUserRepository(store *memstore.Store[*user.User]) *UserRepository {
	return &UserRepository{store: store}
}

// Create persists a validated user. Email uniqueness is enforced by the
// store's secondary index atomically with the insert.
func (r *UserRepository) Create(_ context.Context, u *user.User) (*user.User, error) {
	created, err := r.store.InsertWith(nil, func(id int64) *user.User {
		return user.Reconstruct(id, u.Name(), u.Email())
	})
	if err == memstore.ErrDuplicateKey {
		return nil, infra.NewRepoErr(infra.KindDuplicateKey, "email already in use")
	}
	if err != nil {
		return nil, err
	}
	return cloneUser(created), nil
}

// Save replaces the stored user; a duplicate email fails without
// touching the authoritative copy.
func (r *UserRepository) Save(_ context.Context, u *user.User) (*user.User, error) {
	if err := r.store.Put(u.ID(), cloneUser(u)); err != nil {
		if err == memstore.ErrDuplicateKey {
			return nil, infra.NewRepoErr(infra.KindDuplicateKey, "email already in use")
		}
		return nil, err
	}
	return cloneUser(u), nil
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := r.store.Get(id)
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "user not found")
	}
	return cloneUser(u), nil
}

func (r *UserRepository) FindAll(_ context.Context) ([]*user.User, error) {
	all := r.store.All()
	out := make([]*user.User, 0, len(all))
	for _, u := range all {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.store.Delete(id)
	return nil
}

func cloneUser(u *user.User) *user.User {
	return user.Reconstruct(u.ID(), u.Name(), u.Email())
}
