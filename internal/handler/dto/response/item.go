package response

import (
	"time"

	"shareit/internal/usecase"

	"github.com/jinzhu/copier"
)

type BookingShortResponse struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type ItemResponse struct {
	ID          int64                 `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Available   bool                  `json:"available"`
	OwnerID     int64                 `json:"ownerId"`
	RequestID   *int64                `json:"requestId,omitempty"`
	LastBooking *BookingShortResponse `json:"lastBooking,omitempty"`
	NextBooking *BookingShortResponse `json:"nextBooking,omitempty"`
	Comments    []CommentResponse     `json:"comments"`
}

func FromItemView(v *usecase.ItemView) *ItemResponse {
	var resp ItemResponse
	_ = copier.Copy(&resp, v)
	if resp.Comments == nil {
		resp.Comments = []CommentResponse{}
	}
	return &resp
}

func FromItemViews(vs []*usecase.ItemView) []*ItemResponse {
	resps := make([]*ItemResponse, len(vs))
	for i, v := range vs {
		resps[i] = FromItemView(v)
	}
	return resps
}

func FromCommentView(v *usecase.CommentView) *CommentResponse {
	var resp CommentResponse
	_ = copier.Copy(&resp, v)
	return &resp
}
