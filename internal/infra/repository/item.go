package repository

import (
	"context"
	"sort"
	"strings"

	"shareit/internal/domain/item"
	"shareit/internal/infra"
	"shareit/internal/infra/memstore"
)

type ItemRepository struct {
	store *memstore.Store[*item.Item]
}

func NewItemRepository(store *memstore.Store[*item.Item]) *ItemRepository {
	return &ItemRepository{store: store}
}

func (r *ItemRepository) Create(_ context.Context, it *item.Item) (*item.Item, error) {
	created, err := r.store.InsertWith(nil, func(id int64) *item.Item {
		return item.Reconstruct(id, it.Name(), it.Description(), it.Available(), it.OwnerID(), it.RequestID())
	})
	if err != nil {
		return nil, err
	}
	return cloneItem(created), nil
}

func (r *ItemRepository) Save(_ context.Context, it *item.Item) (*item.Item, error) {
	if err := r.store.Put(it.ID(), cloneItem(it)); err != nil {
		return nil, err
	}
	return cloneItem(it), nil
}

func (r *ItemRepository) FindByID(_ context.Context, id int64) (*item.Item, error) {
	it, ok := r.store.Get(id)
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "item not found")
	}
	return cloneItem(it), nil
}

func (r *ItemRepository) FindByOwner(_ context.Context, ownerID int64) ([]*item.Item, error) {
	var out []*item.Item
	for _, it := range r.store.All() {
		if it.OwnerID() == ownerID {
			out = append(out, cloneItem(it))
		}
	}
	sortByID(out)
	return out, nil
}

// Search matches available items whose name or description contains the
// text, case-insensitively. Blank text is handled by the caller.
func (r *ItemRepository) Search(_ context.Context, text string) ([]*item.Item, error) {
	lowered := strings.ToLower(text)
	var out []*item.Item
	for _, it := range r.store.All() {
		if it.Available() && it.MatchesText(lowered) {
			out = append(out, cloneItem(it))
		}
	}
	sortByID(out)
	return out, nil
}

func (r *ItemRepository) FindByRequestIDs(_ context.Context, requestIDs []int64) ([]*item.Item, error) {
	ids := make(map[int64]struct{}, len(requestIDs))
	for _, id := range requestIDs {
		ids[id] = struct{}{}
	}
	var out []*item.Item
	for _, it := range r.store.All() {
		if rid := it.RequestID(); rid != nil {
			if _, ok := ids[*rid]; ok {
				out = append(out, cloneItem(it))
			}
		}
	}
	sortByID(out)
	return out, nil
}

func (r *ItemRepository) Delete(_ context.Context, id int64) error {
	r.store.Delete(id)
	return nil
}

func sortByID(items []*item.Item) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID() < items[j].ID() })
}

func cloneItem(it *item.Item) *item.Item {
	return item.Reconstruct(it.ID(), it.Name(), it.Description(), it.Available(), it.OwnerID(), it.RequestID())
}
