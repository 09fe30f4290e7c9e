package usecase

import (
	"context"
	"errors"

	"renov-srv/internal/model"
	"renov-srv/internal/user"
	"renov-srv/internal/user/repository"
)

func (uc *implUseCase) GetProfile(ctx context.Context, sc model.Scope) (user.ProfileOutput, error) {
	u, err := uc.repo.GetByID(ctx, sc.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return user.ProfileOutput{}, user.ErrUserNotFound
		}
		uc.l.Errorf(ctx, "user.usecase.GetProfile: Failed to get user: %v", err)
		return user.ProfileOutput{}, err
	}
	return user.ProfileOutput{User: *u}, nil
}

func (uc *implUseCase) UpdateProfile(ctx context.Context, sc model.Scope, input user.UpdateProfileInput) (user.ProfileOutput, error) {
	u, err := uc.repo.Update(ctx, repository.UpdateOptions{
		UserID:   sc.UserID,
		Nickname: input.Nickname,
		Avatar:   input.Avatar,
		Phone:    input.Phone,
		City:     input.City,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return user.ProfileOutput{}, user.ErrUserNotFound
		}
		uc.l.Errorf(ctx, "user.usecase.UpdateProfile: Failed to update user: %v", err)
		return user.ProfileOutput{}, err
	}
	return user.ProfileOutput{User: *u}, nil
}

func (uc *implUseCase) IsMember(ctx context.Context, userID string) (bool, error) {
	u, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return u.MemberActive(uc.clock()), nil
}

func (uc *implUseCase) ConsumeFirstFree(ctx context.Context, userID string) (bool, error) {
	won, err := uc.repo.ConsumeFirstFree(ctx, userID)
	if err != nil {
		uc.l.Errorf(ctx, "user.usecase.ConsumeFirstFree: Failed to claim for user %s: %v", userID, err)
		return false, err
	}
	return won, nil
}
