package postgre

import (
	"context"
	"database/sql"
	"time"

	"renov-srv/internal/entitlement/repository"
	"renov-srv/internal/model"
)

const invitationColumns = `id, code, inviter_id, invitee_id, used_at, created_at`

// CreateInvitation - Insert a new invitation.
func (r *implRepository) CreateInvitation(ctx context.Context, opts repository.CreateInvitationOptions) (*model.Invitation, error) {
	query := `
		INSERT INTO renov.invitations (code, inviter_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING ` + invitationColumns

	inv, err := scanInvitation(r.db.QueryRowContext(ctx, query, opts.Code, opts.InviterID, time.Now()))
	if err != nil {
		r.l.Errorf(ctx, "entitlement.repository.postgre.CreateInvitation: Failed to insert invitation: %v", err)
		return nil, repository.ErrInvitationCreateFailed
	}
	return inv, nil
}

// GetInvitationByCode - Look up an invitation by its shareable code.
func (r *implRepository) GetInvitationByCode(ctx context.Context, code string) (*model.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM renov.invitations WHERE code = $1`

	inv, err := scanInvitation(r.db.QueryRowContext(ctx, query, code))
	if err == sql.ErrNoRows {
		return nil, repository.ErrInvitationNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "entitlement.repository.postgre.GetInvitationByCode: Failed to get invitation: %v", err)
		return nil, err
	}
	return inv, nil
}

// GetOpenInvitation - The inviter's most recent unused invitation.
func (r *implRepository) GetOpenInvitation(ctx context.Context, inviterID string) (*model.Invitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM renov.invitations
		WHERE inviter_id = $1 AND used_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1`

	inv, err := scanInvitation(r.db.QueryRowContext(ctx, query, inviterID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "entitlement.repository.postgre.GetOpenInvitation: Failed to get invitation: %v", err)
		return nil, err
	}
	return inv, nil
}

// MarkInvitationUsed - Claim a one-shot invitation.
func (r *implRepository) MarkInvitationUsed(ctx context.Context, opts repository.MarkInvitationUsedOptions) (bool, error) {
	query := `
		UPDATE renov.invitations
		SET invitee_id = $2, used_at = $3
		WHERE id = $1 AND used_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, opts.InvitationID, opts.InviteeID, time.Now())
	if err != nil {
		r.l.Errorf(ctx, "entitlement.repository.postgre.MarkInvitationUsed: Failed to update: %v", err)
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func scanInvitation(row rowScanner) (*model.Invitation, error) {
	var inv model.Invitation
	var inviteeID sql.NullString
	var usedAt sql.NullTime

	err := row.Scan(&inv.ID, &inv.Code, &inv.InviterID, &inviteeID, &usedAt, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}

	inv.InviteeID = inviteeID.String
	if usedAt.Valid {
		t := usedAt.Time
		inv.UsedAt = &t
	}
	return &inv, nil
}
