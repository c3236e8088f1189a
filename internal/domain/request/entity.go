package request

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyDescription = errors.New("request description must not be blank")

// ItemRequest is a wish for an item that does not exist in the catalog
// yet; owners may later list items against it.
type ItemRequest struct {
	id          int64
	description string
	requesterID int64
	created     time.Time
}

func NewItemRequest(description string, requesterID int64, created time.Time) (*ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}
	return &ItemRequest{
		description: description,
		requesterID: requesterID,
		created:     created,
	}, nil
}

func Reconstruct(id int64, description string, requesterID int64, created time.Time) *ItemRequest {
	return &ItemRequest{
		id:          id,
		description: description,
		requesterID: requesterID,
		created:     created,
	}
}

func (r *ItemRequest) IsRequestedBy(userID int64) bool {
	return r.requesterID == userID
}

func (r *ItemRequest) ID() int64           { return r.id }
func (r *ItemRequest) Description() string { return r.description }
func (r *ItemRequest) RequesterID() int64  { return r.requesterID }
func (r *ItemRequest) Created() time.Time  { return r.created }
