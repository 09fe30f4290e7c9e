package usecase

import (
	"context"
	"time"
)

const (
	// stalePendingAge is how long a report may sit pending before the
	// reconcile pass assumes its task message was lost.
	stalePendingAge = 5 * time.Minute

	// reconcileBatchSize caps one reconcile pass.
	reconcileBatchSize = 100
)

// Reconcile re-enqueues pending reports older than stalePendingAge.
// Submissions whose Kafka publish failed are picked up here; duplicate
// enqueues are harmless because Continue is idempotent.
func (uc *implUseCase) Reconcile(ctx context.Context) error {
	cutoff := uc.clock().Add(-stalePendingAge)

	ids, err := uc.repo.ListStalePending(ctx, cutoff, reconcileBatchSize)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.Reconcile: Failed to list stale pending reports: %v", err)
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	uc.l.Infof(ctx, "report.usecase.Reconcile: Re-enqueueing %d stale pending reports", len(ids))
	for _, id := range ids {
		uc.enqueueAnalysis(ctx, id)
	}
	return nil
}

// PurgeExpired hard-deletes reports soft-deleted longer ago than the
// restore retention window.
func (uc *implUseCase) PurgeExpired(ctx context.Context) error {
	cutoff := uc.clock().Add(-uc.config.RestoreRetention)

	purged, err := uc.repo.PurgeDeleted(ctx, cutoff)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.PurgeExpired: Failed to purge reports: %v", err)
		return err
	}
	if purged > 0 {
		uc.l.Infof(ctx, "report.usecase.PurgeExpired: Purged %d expired reports", purged)
	}
	return nil
}
