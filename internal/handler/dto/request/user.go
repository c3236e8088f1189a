package request

import (
	"shareit/internal/usecase"
)

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

func (r CreateUserRequest) ToParams() usecase.CreateUserParams {
	return usecase.CreateUserParams{
		Name:  r.Name,
		Email: r.Email,
	}
}

type PatchUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

func (r PatchUserRequest) ToParams() usecase.PatchUserParams {
	return usecase.PatchUserParams{
		Name:  r.Name,
		Email: r.Email,
	}
}
