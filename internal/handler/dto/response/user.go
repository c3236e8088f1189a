package response

import (
	"shareit/internal/usecase"

	"github.com/jinzhu/copier"
)

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func FromUserView(v *usecase.UserView) *UserResponse {
	var resp UserResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromUserViews(vs []*usecase.UserView) []*UserResponse {
	resps := make([]*UserResponse, len(vs))
	for i, v := range vs {
		resps[i] = FromUserView(v)
	}
	return resps
}
