package repository

import (
	"context"
	"time"

	"renov-srv/internal/model"
)

//go:generate mockery --name ReportRepository
type ReportRepository interface {
	Create(ctx context.Context, opts CreateOptions) (*model.Report, error)
	GetByID(ctx context.Context, opts GetOptions) (*model.Report, error)
	List(ctx context.Context, opts ListOptions) ([]*model.Report, int64, error)

	// UpdateStatus applies a compare-and-set status transition. It
	// reports whether the row matched the expected status; a false
	// return with nil error means another run got there first.
	UpdateStatus(ctx context.Context, opts UpdateStatusOptions) (bool, error)

	// UpdateProgress advances progress for a report still analyzing.
	// Regressing percents are ignored.
	UpdateProgress(ctx context.Context, opts UpdateProgressOptions) error

	// UpdateCompleted writes the result and completes the report iff it
	// is still analyzing.
	UpdateCompleted(ctx context.Context, opts UpdateCompletedOptions) (bool, error)

	// UpdateFailed marks a non-terminal report failed.
	UpdateFailed(ctx context.Context, opts UpdateFailedOptions) error

	// FindCachedCompany returns the most recent completed company
	// report for the normalized name inside the freshness window, or
	// nil when there is none.
	FindCachedCompany(ctx context.Context, opts FindCachedCompanyOptions) (*model.Report, error)

	// HasUnlocked reports whether the owner has any unlocked,
	// non-deleted report across variants.
	HasUnlocked(ctx context.Context, ownerID string) (bool, error)

	// SetUnlock flips a locked report to unlocked with the given reason.
	SetUnlock(ctx context.Context, opts SetUnlockOptions) error

	UpdateRecheck(ctx context.Context, opts UpdateRecheckOptions) error

	SoftDelete(ctx context.Context, opts DeleteOptions) error
	Restore(ctx context.Context, opts DeleteOptions) error

	// PurgeDeleted hard-deletes reports soft-deleted before the cutoff.
	PurgeDeleted(ctx context.Context, before time.Time) (int64, error)

	// ListStalePending returns IDs of pending reports created before the
	// cutoff. These are tasks whose enqueue was lost and need a retry.
	ListStalePending(ctx context.Context, before time.Time, limit int) ([]int64, error)
}

//go:generate mockery --name PostgresRepository
type PostgresRepository interface {
	ReportRepository
}
