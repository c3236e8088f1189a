package repository

import (
	"context"
	"sort"

	"shareit/internal/domain/item"
	"shareit/internal/infra/memstore"
)

type CommentRepository struct {
	store *memstore.Store[*item.Comment]
}

func NewCommentRepository(store *memstore.Store[*item.Comment]) *CommentRepository {
	return &CommentRepository{store: store}
}

func (r *CommentRepository) Create(_ context.Context, c *item.Comment) (*item.Comment, error) {
	created, err := r.store.InsertWith(nil, func(id int64) *item.Comment {
		return item.ReconstructComment(id, c.Text(), c.ItemID(), c.AuthorID(), c.Created())
	})
	if err != nil {
		return nil, err
	}
	return cloneComment(created), nil
}

// FindByItem returns the item's comments oldest first.
func (r *CommentRepository) FindByItem(_ context.Context, itemID int64) ([]*item.Comment, error) {
	var out []*item.Comment
	for _, c := range r.store.All() {
		if c.ItemID() == itemID {
			out = append(out, cloneComment(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Created().Before(out[j].Created()) })
	return out, nil
}

func cloneComment(c *item.Comment) *item.Comment {
	return item.ReconstructComment(c.ID(), c.Text(), c.ItemID(), c.AuthorID(), c.Created())
}
