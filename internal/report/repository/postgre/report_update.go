package postgre

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"renov-srv/internal/model"
	"renov-srv/internal/report/repository"
)

// UpdateStatus - CAS status transition guarded by the expected status.
func (r *implRepository) UpdateStatus(ctx context.Context, opts repository.UpdateStatusOptions) (bool, error) {
	progressJSON, err := json.Marshal(opts.Progress)
	if err != nil {
		return false, fmt.Errorf("UpdateStatus marshal progress: %w", err)
	}

	query := `
		UPDATE renov.reports
		SET status = $1, progress = $2, updated_at = $3
		WHERE id = $4 AND status = $5
	`

	res, err := r.db.ExecContext(ctx, query, opts.New, progressJSON, time.Now(), opts.ReportID, opts.Expected)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.UpdateStatus: Failed to update report: %v", err)
		return false, repository.ErrReportUpdateFailed
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// UpdateProgress - Advance progress while analyzing. The percent guard
// keeps progress monotonic under duplicate background runs.
func (r *implRepository) UpdateProgress(ctx context.Context, opts repository.UpdateProgressOptions) error {
	progressJSON, err := json.Marshal(opts.Progress)
	if err != nil {
		return fmt.Errorf("UpdateProgress marshal progress: %w", err)
	}

	query := `
		UPDATE renov.reports
		SET progress = $1, updated_at = $2
	`
	args := []interface{}{progressJSON, time.Now()}
	argIdx := 3

	if opts.OCRText != "" {
		query += fmt.Sprintf(", ocr_text = $%d", argIdx)
		args = append(args, opts.OCRText)
		argIdx++
	}

	query += fmt.Sprintf(`
		WHERE id = $%d AND status = $%d
		  AND COALESCE((progress->>'percent')::int, 0) <= $%d`,
		argIdx, argIdx+1, argIdx+2)
	args = append(args, opts.ReportID, model.ReportStatusAnalyzing, opts.Progress.Percent)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.UpdateProgress: Failed to update report: %v", err)
		return repository.ErrReportUpdateFailed
	}
	return nil
}

// UpdateCompleted - Write the result and complete the report iff it is
// still analyzing.
func (r *implRepository) UpdateCompleted(ctx context.Context, opts repository.UpdateCompletedOptions) (bool, error) {
	progressJSON, err := json.Marshal(opts.Progress)
	if err != nil {
		return false, fmt.Errorf("UpdateCompleted marshal progress: %w", err)
	}

	query := `
		UPDATE renov.reports
		SET status = $1, result = $2, result_status = $3, progress = $4, updated_at = $5
		WHERE id = $6 AND status = $7
	`

	res, err := r.db.ExecContext(ctx, query,
		model.ReportStatusCompleted, []byte(opts.Result), nullString(opts.ResultStatus),
		progressJSON, time.Now(), opts.ReportID, model.ReportStatusAnalyzing)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.UpdateCompleted: Failed to update report: %v", err)
		return false, repository.ErrReportUpdateFailed
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// UpdateFailed - Mark a non-terminal report failed with a stage message.
func (r *implRepository) UpdateFailed(ctx context.Context, opts repository.UpdateFailedOptions) error {
	progressJSON, err := json.Marshal(model.Progress{
		Step:    "failed",
		Percent: 100,
		Message: opts.Message,
	})
	if err != nil {
		return fmt.Errorf("UpdateFailed marshal progress: %w", err)
	}

	query := `
		UPDATE renov.reports
		SET status = $1, progress = $2, updated_at = $3
		WHERE id = $4 AND status NOT IN ($5, $6)
	`

	if _, err := r.db.ExecContext(ctx, query,
		model.ReportStatusFailed, progressJSON, time.Now(),
		opts.ReportID, model.ReportStatusCompleted, model.ReportStatusFailed); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.UpdateFailed: Failed to update report: %v", err)
		return repository.ErrReportUpdateFailed
	}
	return nil
}

// SetUnlock - Flip a locked report to unlocked.
func (r *implRepository) SetUnlock(ctx context.Context, opts repository.SetUnlockOptions) error {
	query := `
		UPDATE renov.reports
		SET is_unlocked = TRUE, unlock_reason = $1, entitlement_id = $2, updated_at = $3
		WHERE id = $4 AND is_unlocked = FALSE
	`

	res, err := r.db.ExecContext(ctx, query, opts.Reason, opts.EntitlementID, time.Now(), opts.ReportID)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.SetUnlock: Failed to update report: %v", err)
		return repository.ErrReportUpdateFailed
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return repository.ErrReportNotFound
	}
	return nil
}

// UpdateRecheck - Advance the acceptance rectification lifecycle.
func (r *implRepository) UpdateRecheck(ctx context.Context, opts repository.UpdateRecheckOptions) error {
	increment := 0
	if opts.IncrementRecheck {
		increment = 1
	}

	query := `
		UPDATE renov.reports
		SET result_status = $1, rectified_photo_refs = $2,
		    recheck_count = recheck_count + $3, updated_at = $4
		WHERE id = $5
	`

	refs := opts.RectifiedPhotoRefs
	if refs == nil {
		refs = []string{}
	}

	if _, err := r.db.ExecContext(ctx, query,
		opts.ResultStatus, pq.Array(refs), increment, time.Now(), opts.ReportID); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.UpdateRecheck: Failed to update report: %v", err)
		return repository.ErrReportUpdateFailed
	}
	return nil
}

// SoftDelete - Mark a report deleted; ownership enforced in the query.
func (r *implRepository) SoftDelete(ctx context.Context, opts repository.DeleteOptions) error {
	query := `
		UPDATE renov.reports
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND owner_id = $3 AND deleted_at IS NULL
	`

	res, err := r.db.ExecContext(ctx, query, time.Now(), opts.ReportID, opts.OwnerID)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.SoftDelete: Failed to update report: %v", err)
		return repository.ErrReportUpdateFailed
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return repository.ErrReportNotFound
	}
	return nil
}

// Restore - Clear the soft-delete mark.
func (r *implRepository) Restore(ctx context.Context, opts repository.DeleteOptions) error {
	query := `
		UPDATE renov.reports
		SET deleted_at = NULL, updated_at = $1
		WHERE id = $2 AND owner_id = $3 AND deleted_at IS NOT NULL
	`

	res, err := r.db.ExecContext(ctx, query, time.Now(), opts.ReportID, opts.OwnerID)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.Restore: Failed to update report: %v", err)
		return repository.ErrReportUpdateFailed
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return repository.ErrReportNotFound
	}
	return nil
}

// PurgeDeleted - Hard-delete reports soft-deleted before the cutoff.
func (r *implRepository) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM renov.reports WHERE deleted_at IS NOT NULL AND deleted_at < $1`

	res, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.PurgeDeleted: Failed to delete reports: %v", err)
		return 0, err
	}
	return res.RowsAffected()
}
