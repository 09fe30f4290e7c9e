package postgre

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"renov-srv/internal/model"
	"renov-srv/internal/report/repository"
)

const reportColumns = `
	id, variant, owner_id, status, progress, source_ref, file_name,
	normalized_name, stage, ocr_text, result, is_unlocked, unlock_reason,
	result_status, rectified_photo_refs, recheck_count, entitlement_id,
	created_at, updated_at, deleted_at
`

// Create - Insert a new report record.
func (r *implRepository) Create(ctx context.Context, opts repository.CreateOptions) (*model.Report, error) {
	status := opts.Status
	if status == "" {
		status = model.ReportStatusPending
	}
	unlockReason := opts.UnlockReason
	if unlockReason == "" {
		unlockReason = model.UnlockReasonLocked
	}

	progressJSON, err := json.Marshal(opts.Progress)
	if err != nil {
		return nil, fmt.Errorf("Create marshal progress: %w", err)
	}

	now := time.Now()
	query := `
		INSERT INTO renov.reports (
			variant, owner_id, status, progress, source_ref, file_name,
			normalized_name, stage, result, is_unlocked, unlock_reason,
			rectified_photo_refs, recheck_count, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 0, $13, $13)
		RETURNING ` + reportColumns

	row := r.db.QueryRowContext(ctx, query,
		opts.Variant, opts.OwnerID, status, progressJSON, opts.SourceRef, opts.FileName,
		opts.NormalizedName, opts.Stage, nullJSON(opts.Result), opts.IsUnlocked, unlockReason,
		pq.Array([]string{}), now,
	)

	rpt, err := scanReport(row)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.Create: Failed to insert report: %v", err)
		return nil, repository.ErrReportCreateFailed
	}
	return rpt, nil
}

// GetByID - Get report by primary key, optionally restricted by variant.
func (r *implRepository) GetByID(ctx context.Context, opts repository.GetOptions) (*model.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM renov.reports WHERE id = $1`
	args := []interface{}{opts.ReportID}
	argIdx := 2

	if opts.Variant != "" {
		query += fmt.Sprintf(" AND variant = $%d", argIdx)
		args = append(args, opts.Variant)
	}
	if !opts.IncludeDeleted {
		query += " AND deleted_at IS NULL"
	}

	rpt, err := scanReport(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, repository.ErrReportNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.GetByID: Failed to get report: %v", err)
		return nil, err
	}
	return rpt, nil
}

// List - List an owner's reports of one variant with pagination.
func (r *implRepository) List(ctx context.Context, opts repository.ListOptions) ([]*model.Report, int64, error) {
	where := " WHERE owner_id = $1 AND variant = $2"
	if opts.Deleted {
		where += " AND deleted_at IS NOT NULL"
	} else {
		where += " AND deleted_at IS NULL"
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM renov.reports" + where
	if err := r.db.QueryRowContext(ctx, countQuery, opts.OwnerID, opts.Variant).Scan(&total); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.List: Failed to count reports: %v", err)
		return nil, 0, err
	}

	query := `SELECT ` + reportColumns + ` FROM renov.reports` + where +
		" ORDER BY created_at DESC, id DESC LIMIT $3 OFFSET $4"

	rows, err := r.db.QueryContext(ctx, query, opts.OwnerID, opts.Variant, opts.Limit, opts.Offset)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.List: Failed to list reports: %v", err)
		return nil, 0, err
	}
	defer rows.Close()

	var reports []*model.Report
	for rows.Next() {
		rpt, err := scanReport(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("List scan: %w", err)
		}
		reports = append(reports, rpt)
	}
	return reports, total, rows.Err()
}

// FindCachedCompany - Most recent completed company report for a
// normalized name inside the freshness window. Nil when absent.
func (r *implRepository) FindCachedCompany(ctx context.Context, opts repository.FindCachedCompanyOptions) (*model.Report, error) {
	query := `SELECT ` + reportColumns + `
		FROM renov.reports
		WHERE variant = $1 AND normalized_name = $2 AND status = $3
		  AND created_at > $4 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1`

	cutoff := time.Now().Add(-opts.Window)
	rpt, err := scanReport(r.db.QueryRowContext(ctx, query,
		model.VariantCompany, opts.NormalizedName, model.ReportStatusCompleted, cutoff))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.FindCachedCompany: Failed to find report: %v", err)
		return nil, err
	}
	return rpt, nil
}

// HasUnlocked - Whether the owner holds any unlocked report.
func (r *implRepository) HasUnlocked(ctx context.Context, ownerID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM renov.reports
			WHERE owner_id = $1 AND is_unlocked = TRUE AND deleted_at IS NULL
		)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&exists); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.HasUnlocked: Failed to query: %v", err)
		return false, err
	}
	return exists, nil
}

// ListStalePending - IDs of pending reports created before the cutoff.
func (r *implRepository) ListStalePending(ctx context.Context, before time.Time, limit int) ([]int64, error) {
	query := `
		SELECT id FROM renov.reports
		WHERE status = $1 AND created_at < $2 AND deleted_at IS NULL
		ORDER BY created_at ASC
		LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, model.ReportStatusPending, before, limit)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.ListStalePending: Failed to query: %v", err)
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ListStalePending scan: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
