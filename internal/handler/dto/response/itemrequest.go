package response

import (
	"time"

	"shareit/internal/usecase"

	"github.com/jinzhu/copier"
)

type ItemRequestResponse struct {
	ID          int64          `json:"id"`
	Description string         `json:"description"`
	RequesterID int64          `json:"requesterId"`
	Created     time.Time      `json:"created"`
	Items       []ItemResponse `json:"items"`
}

func FromRequestView(v *usecase.RequestView) *ItemRequestResponse {
	var resp ItemRequestResponse
	_ = copier.Copy(&resp, v)
	if resp.Items == nil {
		resp.Items = []ItemResponse{}
	}
	return &resp
}

func FromRequestViews(vs []*usecase.RequestView) []*ItemRequestResponse {
	resps := make([]*ItemRequestResponse, len(vs))
	for i, v := range vs {
		resps[i] = FromRequestView(v)
	}
	return resps
}
