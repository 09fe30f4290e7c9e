package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"renov-srv/internal/entitlement"
	"renov-srv/internal/entitlement/repository"
	"renov-srv/internal/model"
)

// Invitation codes are short and case-insensitive for manual entry.
// The alphabet drops easily-confused characters (0/O, 1/I/L).
const (
	codeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"
	codeLength   = 8
)

func (uc *implUseCase) CreateInvitation(ctx context.Context, sc model.Scope) (entitlement.InvitationOutput, error) {
	now := uc.clock()

	// Reuse an open, unexpired code instead of minting a new one per
	// request.
	open, err := uc.repo.GetOpenInvitation(ctx, sc.UserID)
	if err != nil {
		return entitlement.InvitationOutput{}, err
	}
	if open != nil && open.CreatedAt.Add(uc.config.InvitationExpiry).After(now) {
		return entitlement.InvitationOutput{
			Code:      open.Code,
			ExpiresAt: open.CreatedAt.Add(uc.config.InvitationExpiry),
		}, nil
	}

	code, err := generateCode()
	if err != nil {
		uc.l.Errorf(ctx, "entitlement.usecase.CreateInvitation: Failed to generate code: %v", err)
		return entitlement.InvitationOutput{}, err
	}

	inv, err := uc.repo.CreateInvitation(ctx, repository.CreateInvitationOptions{
		InviterID: sc.UserID,
		Code:      code,
	})
	if err != nil {
		uc.l.Errorf(ctx, "entitlement.usecase.CreateInvitation: Failed to create invitation: %v", err)
		return entitlement.InvitationOutput{}, err
	}

	return entitlement.InvitationOutput{
		Code:      inv.Code,
		ExpiresAt: inv.CreatedAt.Add(uc.config.InvitationExpiry),
	}, nil
}

func (uc *implUseCase) RedeemInvitation(ctx context.Context, inviteeID, code string) (string, error) {
	inv, err := uc.repo.GetInvitationByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrInvitationNotFound) {
			return "", entitlement.ErrInvitationNotFound
		}
		return "", err
	}

	if inv.InviterID == inviteeID {
		return "", entitlement.ErrSelfInvitation
	}
	if inv.UsedAt != nil {
		return "", entitlement.ErrInvitationUsed
	}

	now := uc.clock()
	if inv.CreatedAt.Add(uc.config.InvitationExpiry).Before(now) {
		return "", entitlement.ErrInvitationExpired
	}

	won, err := uc.repo.MarkInvitationUsed(ctx, repository.MarkInvitationUsedOptions{
		InvitationID: inv.ID,
		InviteeID:    inviteeID,
	})
	if err != nil {
		return "", err
	}
	if !won {
		// A concurrent redeem of the same code got there first.
		return "", entitlement.ErrInvitationUsed
	}

	if _, err := uc.repo.CreateEntitlement(ctx, repository.CreateEntitlementOptions{
		OwnerID:   inv.InviterID,
		Source:    model.EntitlementSourceInvitation,
		ExpiresAt: now.Add(uc.config.InvitationExpiry),
	}); err != nil {
		uc.l.Errorf(ctx, "entitlement.usecase.RedeemInvitation: Failed to credit inviter %s: %v", inv.InviterID, err)
		return "", err
	}

	return inv.InviterID, nil
}

func (uc *implUseCase) ListEntitlements(ctx context.Context, sc model.Scope) (entitlement.ListOutput, error) {
	ents, err := uc.repo.ListByOwner(ctx, sc.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "entitlement.usecase.ListEntitlements: Failed to list: %v", err)
		return entitlement.ListOutput{}, err
	}

	// Expired-but-unmarked rows read as expired.
	now := uc.clock()
	for i := range ents {
		if ents[i].Status == model.EntitlementStatusAvailable && ents[i].ExpiresAt.Before(now) {
			ents[i].Status = model.EntitlementStatusExpired
		}
	}

	return entitlement.ListOutput{Entitlements: ents}, nil
}

func (uc *implUseCase) ConsumeEntitlement(ctx context.Context, sc model.Scope, input entitlement.ConsumeInput) error {
	_, err := uc.repo.Consume(ctx, repository.ConsumeOptions{
		OwnerID:  sc.UserID,
		ReportID: input.ReportID,
		Now:      uc.clock(),
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrReportNotFound):
		return entitlement.ErrReportNotFound
	case errors.Is(err, repository.ErrReportAlreadyUnlocked):
		return entitlement.ErrAlreadyUnlocked
	case errors.Is(err, repository.ErrNoEntitlement):
		return entitlement.ErrNoEntitlement
	default:
		uc.l.Errorf(ctx, "entitlement.usecase.ConsumeEntitlement: Failed to consume for report %d: %v", input.ReportID, err)
		return err
	}
}

func generateCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate invitation code: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
