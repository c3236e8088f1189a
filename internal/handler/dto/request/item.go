package request

import (
	"shareit/internal/usecase"
)

type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

func (r CreateItemRequest) ToParams() usecase.CreateItemParams {
	return usecase.CreateItemParams{
		Name:        r.Name,
		Description: r.Description,
		Available:   *r.Available,
		RequestID:   r.RequestID,
	}
}

type PatchItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
	RequestID   *int64  `json:"requestId,omitempty"`
}

func (r PatchItemRequest) ToParams() usecase.PatchItemParams {
	return usecase.PatchItemParams{
		Name:        r.Name,
		Description: r.Description,
		Available:   r.Available,
		RequestID:   r.RequestID,
	}
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}
