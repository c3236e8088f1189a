package usecase

import (
	"context"

	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/pkg/errs"
)

type CreateUserParams struct {
	Name  string
	Email string
}

type PatchUserParams struct {
	Name  *string
	Email *string
}

type UserUseCase interface {
	Create(ctx context.Context, params CreateUserParams) (*UserView, error)
	Update(ctx context.Context, userID int64, patch PatchUserParams) (*UserView, error)
	GetByID(ctx context.Context, userID int64) (*UserView, error)
	List(ctx context.Context) ([]*UserView, error)
	Delete(ctx context.Context, userID int64) error
}

type userUseCaseImpl struct {
	userRepo UserRepository
}

func NewUserUseCase(userRepo UserRepository) UserUseCase {
	return &userUseCaseImpl{userRepo: userRepo}
}

func (u *userUseCaseImpl) Create(ctx context.Context, params CreateUserParams) (*UserView, error) {
	email, err := user.NewEmail(params.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}
	entity, err := user.NewUser(params.Name, email)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	created, err := u.userRepo.Create(ctx, entity)
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, ErrEmailTaken)
		}
		return nil, err
	}
	return newUserView(created), nil
}

func (u *userUseCaseImpl) Update(ctx context.Context, userID int64, patch PatchUserParams) (*UserView, error) {
	entity, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if patch.Name != nil {
		if err := entity.Rename(*patch.Name); err != nil {
			return nil, errs.Mark(err, ErrValidation)
		}
	}
	if patch.Email != nil {
		email, err := user.NewEmail(*patch.Email)
		if err != nil {
			return nil, errs.Mark(err, ErrValidation)
		}
		entity.ChangeEmail(email)
	}

	saved, err := u.userRepo.Save(ctx, entity)
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, ErrEmailTaken)
		}
		return nil, err
	}
	return newUserView(saved), nil
}

func (u *userUseCaseImpl) GetByID(ctx context.Context, userID int64) (*UserView, error) {
	entity, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return newUserView(entity), nil
}

func (u *userUseCaseImpl) List(ctx context.Context) ([]*UserView, error) {
	users, err := u.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*UserView, 0, len(users))
	for _, entity := range users {
		views = append(views, newUserView(entity))
	}
	return views, nil
}

func (u *userUseCaseImpl) Delete(ctx context.Context, userID int64) error {
	return u.userRepo.Delete(ctx, userID)
}
