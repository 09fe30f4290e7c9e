package usecase

import (
	"context"
	"errors"

	"renov-srv/internal/user"
	"renov-srv/internal/user/repository"
)

const roleUser = "user"

func (uc *implUseCase) Login(ctx context.Context, input user.LoginInput) (user.LoginOutput, error) {
	if input.Code == "" {
		return user.LoginOutput{}, user.ErrCodeRequired
	}

	session, err := uc.auth.ExchangeCode(ctx, input.Code)
	if err != nil {
		uc.l.Errorf(ctx, "user.usecase.Login: Code exchange failed: %v", err)
		return user.LoginOutput{}, user.ErrCodeExchangeFailed
	}

	sessionKeyEnc, err := uc.encrypter.Encrypt(session.SessionKey)
	if err != nil {
		uc.l.Errorf(ctx, "user.usecase.Login: Failed to encrypt session key: %v", err)
		return user.LoginOutput{}, user.ErrLoginFailed
	}

	u, err := uc.repo.GetByOpenID(ctx, session.OpenID)
	isNew := false
	switch {
	case err == nil:
		// Returning user: refresh the stored session key, pick up any
		// profile fields the client sent along.
		updateOpts := repository.UpdateOptions{
			UserID:        u.ID,
			SessionKeyEnc: &sessionKeyEnc,
		}
		if input.Nickname != "" {
			updateOpts.Nickname = &input.Nickname
		}
		if input.Avatar != "" {
			updateOpts.Avatar = &input.Avatar
		}
		if u, err = uc.repo.Update(ctx, updateOpts); err != nil {
			uc.l.Errorf(ctx, "user.usecase.Login: Failed to refresh user: %v", err)
			return user.LoginOutput{}, user.ErrLoginFailed
		}
	case errors.Is(err, repository.ErrUserNotFound):
		isNew = true
		u, err = uc.repo.Create(ctx, repository.CreateOptions{
			OpenID:        session.OpenID,
			Nickname:      input.Nickname,
			Avatar:        input.Avatar,
			SessionKeyEnc: sessionKeyEnc,
		})
		if err != nil {
			uc.l.Errorf(ctx, "user.usecase.Login: Failed to create user: %v", err)
			return user.LoginOutput{}, user.ErrLoginFailed
		}
	default:
		uc.l.Errorf(ctx, "user.usecase.Login: Failed to look up user: %v", err)
		return user.LoginOutput{}, user.ErrLoginFailed
	}

	// Invitation redeem is best effort: a bad code never blocks login.
	if isNew && input.InvitationCode != "" && uc.entitlementUC != nil {
		uc.redeemInvitation(ctx, u.ID, input.InvitationCode)
	}

	token, err := uc.jwtManager.GenerateToken(u.ID, roleUser)
	if err != nil {
		uc.l.Errorf(ctx, "user.usecase.Login: Failed to generate token: %v", err)
		return user.LoginOutput{}, user.ErrLoginFailed
	}

	return user.LoginOutput{
		Token:     token,
		UserID:    u.ID,
		IsNewUser: isNew,
	}, nil
}

func (uc *implUseCase) redeemInvitation(ctx context.Context, inviteeID, code string) {
	inviterID, err := uc.entitlementUC.RedeemInvitation(ctx, inviteeID, code)
	if err != nil {
		uc.l.Warnf(ctx, "user.usecase.redeemInvitation: Redeem failed for user %s: %v", inviteeID, err)
		return
	}

	if _, err := uc.repo.Update(ctx, repository.UpdateOptions{
		UserID:    inviteeID,
		InvitedBy: &inviterID,
	}); err != nil {
		uc.l.Warnf(ctx, "user.usecase.redeemInvitation: Failed to record inviter for user %s: %v", inviteeID, err)
	}
}
