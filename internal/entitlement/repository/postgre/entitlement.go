package postgre

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"renov-srv/internal/entitlement/repository"
	"renov-srv/internal/model"
)

const entitlementColumns = `id, owner_id, source, status, bound_variant, used_report_id, expires_at, consumed_at, created_at`

// CreateEntitlement - Insert a new unlock entitlement.
func (r *implRepository) CreateEntitlement(ctx context.Context, opts repository.CreateEntitlementOptions) (*model.UnlockEntitlement, error) {
	query := `
		INSERT INTO renov.entitlements (owner_id, source, status, bound_variant, expires_at, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
		RETURNING ` + entitlementColumns

	ent, err := scanEntitlement(r.db.QueryRowContext(ctx, query,
		opts.OwnerID, opts.Source, model.EntitlementStatusAvailable, opts.BoundVariant,
		opts.ExpiresAt, time.Now()))
	if err != nil {
		r.l.Errorf(ctx, "entitlement.repository.postgre.CreateEntitlement: Failed to insert entitlement: %v", err)
		return nil, repository.ErrEntitlementCreateFailed
	}
	return ent, nil
}

// ListByOwner - All of the owner's entitlements, newest first.
func (r *implRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.UnlockEntitlement, error) {
	query := `
		SELECT ` + entitlementColumns + `
		FROM renov.entitlements
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		r.l.Errorf(ctx, "entitlement.repository.postgre.ListByOwner: Failed to list entitlements: %v", err)
		return nil, err
	}
	defer rows.Close()

	var ents []model.UnlockEntitlement
	for rows.Next() {
		ent, err := scanEntitlement(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByOwner scan: %w", err)
		}
		ents = append(ents, *ent)
	}
	return ents, rows.Err()
}

// Consume - Spend the owner's oldest available entitlement on the
// report. Both the entitlement update and the report unlock commit in
// the same transaction.
func (r *implRepository) Consume(ctx context.Context, opts repository.ConsumeOptions) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "entitlement.repository.postgre.Consume: Failed to begin tx: %v", err)
		return 0, err
	}
	defer tx.Rollback()

	// Lock the report row first so concurrent consumers of the same
	// report serialize on it.
	var isUnlocked bool
	var variant string
	err = tx.QueryRowContext(ctx, `
		SELECT is_unlocked, variant FROM renov.reports
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL
		FOR UPDATE`,
		opts.ReportID, opts.OwnerID,
	).Scan(&isUnlocked, &variant)
	if err == sql.ErrNoRows {
		return 0, repository.ErrReportNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "entitlement.repository.postgre.Consume: Failed to lock report: %v", err)
		return 0, err
	}
	if isUnlocked {
		return 0, repository.ErrReportAlreadyUnlocked
	}

	// An entitlement bound to a variant can only unlock that variant.
	var entitlementID int64
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM renov.entitlements
		WHERE owner_id = $1 AND status = $2 AND expires_at > $3
			AND (bound_variant IS NULL OR bound_variant = $4)
		ORDER BY expires_at ASC
		LIMIT 1
		FOR UPDATE SKIP LOCKED`,
		opts.OwnerID, model.EntitlementStatusAvailable, opts.Now, variant,
	).Scan(&entitlementID)
	if err == sql.ErrNoRows {
		return 0, repository.ErrNoEntitlement
	}
	if err != nil {
		r.l.Errorf(ctx, "entitlement.repository.postgre.Consume: Failed to lock entitlement: %v", err)
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE renov.entitlements
		SET status = $2, used_report_id = $3, consumed_at = $4
		WHERE id = $1`,
		entitlementID, model.EntitlementStatusUsed, opts.ReportID, opts.Now,
	); err != nil {
		r.l.Errorf(ctx, "entitlement.repository.postgre.Consume: Failed to update entitlement: %v", err)
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE renov.reports
		SET is_unlocked = TRUE, unlock_reason = $2, entitlement_id = $3, updated_at = $4
		WHERE id = $1`,
		opts.ReportID, model.UnlockReasonInvitation, entitlementID, opts.Now,
	); err != nil {
		r.l.Errorf(ctx, "entitlement.repository.postgre.Consume: Failed to unlock report: %v", err)
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "entitlement.repository.postgre.Consume: Failed to commit: %v", err)
		return 0, err
	}
	return entitlementID, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntitlement(row rowScanner) (*model.UnlockEntitlement, error) {
	var ent model.UnlockEntitlement
	var boundVariant sql.NullString
	var usedReportID sql.NullInt64
	var consumedAt sql.NullTime

	err := row.Scan(
		&ent.ID, &ent.OwnerID, &ent.Source, &ent.Status, &boundVariant,
		&usedReportID, &ent.ExpiresAt, &consumedAt, &ent.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	ent.BoundVariant = boundVariant.String
	if usedReportID.Valid {
		v := usedReportID.Int64
		ent.UsedReportID = &v
	}
	if consumedAt.Valid {
		t := consumedAt.Time
		ent.ConsumedAt = &t
	}
	return &ent, nil
}
