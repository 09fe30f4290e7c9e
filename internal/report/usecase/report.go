package usecase

import (
	"context"
	"errors"
	"strings"

	"renov-srv/internal/model"
	"renov-srv/internal/report"
	"renov-srv/internal/report/repository"
	"renov-srv/pkg/paginator"
	"renov-srv/pkg/storage"
)

// GetReport returns one of the owner's reports with a short-lived
// preview URL for document variants.
func (uc *implUseCase) GetReport(ctx context.Context, sc model.Scope, input report.GetReportInput) (report.ReportOutput, error) {
	rpt, err := uc.getOwned(ctx, sc, input.ReportID, input.Variant, false)
	if err != nil {
		return report.ReportOutput{}, err
	}

	output := report.ReportOutput{Report: rpt}
	if rpt.Variant == model.VariantQuote || rpt.Variant == model.VariantContract {
		signed, err := uc.storage.PresignedGetURL(ctx, uc.storage.DocsBucket(), rpt.SourceRef, storage.DocURLExpiry)
		if err != nil {
			// Preview is best-effort; the report itself is the payload.
			uc.l.Warnf(ctx, "report.usecase.GetReport: Failed to presign source for report %d: %v", rpt.ID, err)
		} else {
			output.SourceURL = signed.URL
		}
	}
	return output, nil
}

// ListReports lists the owner's reports of one variant.
func (uc *implUseCase) ListReports(ctx context.Context, sc model.Scope, input report.ListReportsInput) (report.ListReportsOutput, error) {
	if !validVariant(input.Variant) {
		return report.ListReportsOutput{}, report.ErrInvalidVariant
	}

	input.PaginateQuery.Adjust()
	reports, total, err := uc.repo.List(ctx, repository.ListOptions{
		OwnerID: sc.UserID,
		Variant: input.Variant,
		Deleted: input.Deleted,
		Limit:   input.PaginateQuery.Limit,
		Offset:  input.PaginateQuery.Offset(),
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.ListReports: Failed to list reports: %v", err)
		return report.ListReportsOutput{}, err
	}

	return report.ListReportsOutput{
		Reports: reports,
		Paginator: paginator.Paginator{
			Total:       total,
			Count:       int64(len(reports)),
			PerPage:     input.PaginateQuery.Limit,
			CurrentPage: input.PaginateQuery.Page,
		},
	}, nil
}

// DeleteReport soft-deletes an owned report. It stays restorable for
// members until the retention window lapses.
func (uc *implUseCase) DeleteReport(ctx context.Context, sc model.Scope, input report.DeleteReportInput) error {
	if _, err := uc.getOwned(ctx, sc, input.ReportID, "", false); err != nil {
		return err
	}

	if err := uc.repo.SoftDelete(ctx, repository.DeleteOptions{
		ReportID: input.ReportID,
		OwnerID:  sc.UserID,
	}); err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return report.ErrReportNotFound
		}
		uc.l.Errorf(ctx, "report.usecase.DeleteReport: Failed to delete report %d: %v", input.ReportID, err)
		return err
	}
	return nil
}

// RestoreReport brings a soft-deleted report back. Members only, and
// only inside the retention window.
func (uc *implUseCase) RestoreReport(ctx context.Context, sc model.Scope, input report.RestoreReportInput) (report.ReportOutput, error) {
	member, err := uc.userUC.IsMember(ctx, sc.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.RestoreReport: Failed to check membership: %v", err)
		return report.ReportOutput{}, err
	}
	if !member {
		return report.ReportOutput{}, report.ErrRestoreMembersOnly
	}

	rpt, err := uc.getOwned(ctx, sc, input.ReportID, "", true)
	if err != nil {
		return report.ReportOutput{}, err
	}
	if rpt.DeletedAt == nil {
		return report.ReportOutput{Report: rpt}, nil
	}
	if uc.clock().Sub(*rpt.DeletedAt) > uc.config.RestoreRetention {
		return report.ReportOutput{}, report.ErrRestoreExpired
	}

	if err := uc.repo.Restore(ctx, repository.DeleteOptions{
		ReportID: input.ReportID,
		OwnerID:  sc.UserID,
	}); err != nil {
		uc.l.Errorf(ctx, "report.usecase.RestoreReport: Failed to restore report %d: %v", input.ReportID, err)
		return report.ReportOutput{}, err
	}

	rpt.DeletedAt = nil
	return report.ReportOutput{Report: rpt}, nil
}

// RequestRecheck submits rectification photos for an acceptance report
// that flagged issues.
func (uc *implUseCase) RequestRecheck(ctx context.Context, sc model.Scope, input report.RequestRecheckInput) (report.ReportOutput, error) {
	if len(input.PhotoRefs) == 0 {
		return report.ReportOutput{}, report.ErrPhotosRequired
	}

	rpt, err := uc.getOwned(ctx, sc, input.ReportID, model.VariantAcceptance, false)
	if err != nil {
		return report.ReportOutput{}, err
	}
	if rpt.ResultStatus != model.ResultStatusNeedRectify {
		return report.ReportOutput{}, report.ErrRecheckNotAllowed
	}
	for _, ref := range input.PhotoRefs {
		if !strings.HasPrefix(ref, storage.OwnerPrefix(storage.PrefixAcceptance, sc.UserID)) {
			return report.ReportOutput{}, report.ErrPermissionDenied
		}
	}

	if err := uc.repo.UpdateRecheck(ctx, repository.UpdateRecheckOptions{
		ReportID:           rpt.ID,
		ResultStatus:       model.ResultStatusPendingRecheck,
		RectifiedPhotoRefs: input.PhotoRefs,
		IncrementRecheck:   true,
	}); err != nil {
		uc.l.Errorf(ctx, "report.usecase.RequestRecheck: Failed to update report %d: %v", rpt.ID, err)
		return report.ReportOutput{}, err
	}

	uc.publishEvent(ctx, "report.recheck_requested", rpt)

	rpt.ResultStatus = model.ResultStatusPendingRecheck
	rpt.RectifiedPhotoRefs = input.PhotoRefs
	rpt.RecheckCount++
	return report.ReportOutput{Report: rpt}, nil
}

func (uc *implUseCase) getOwned(ctx context.Context, sc model.Scope, reportID int64, variant string, includeDeleted bool) (*model.Report, error) {
	rpt, err := uc.repo.GetByID(ctx, repository.GetOptions{
		ReportID:       reportID,
		Variant:        variant,
		IncludeDeleted: includeDeleted,
	})
	if errors.Is(err, repository.ErrReportNotFound) {
		return nil, report.ErrReportNotFound
	}
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.getOwned: Failed to get report %d: %v", reportID, err)
		return nil, err
	}
	if rpt.OwnerID != sc.UserID {
		return nil, report.ErrPermissionDenied
	}
	return rpt, nil
}

func validVariant(v string) bool {
	switch v {
	case model.VariantQuote, model.VariantContract, model.VariantCompany, model.VariantAcceptance:
		return true
	}
	return false
}
