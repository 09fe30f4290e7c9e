package report

import (
	"context"

	"renov-srv/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Submission paths, one per variant. All return immediately with a
	// pending report; analysis happens in the background.
	SubmitQuote(ctx context.Context, sc model.Scope, input SubmitDocumentInput) (SubmitOutput, error)
	SubmitContract(ctx context.Context, sc model.Scope, input SubmitDocumentInput) (SubmitOutput, error)
	SubmitCompany(ctx context.Context, sc model.Scope, input SubmitCompanyInput) (SubmitOutput, error)
	SubmitAcceptance(ctx context.Context, sc model.Scope, input SubmitAcceptanceInput) (SubmitOutput, error)

	// UploadAcceptancePhoto stores one photo and returns its object key
	// for a later SubmitAcceptance call.
	UploadAcceptancePhoto(ctx context.Context, sc model.Scope, input UploadPhotoInput) (UploadPhotoOutput, error)

	GetReport(ctx context.Context, sc model.Scope, input GetReportInput) (ReportOutput, error)
	ListReports(ctx context.Context, sc model.Scope, input ListReportsInput) (ListReportsOutput, error)
	DeleteReport(ctx context.Context, sc model.Scope, input DeleteReportInput) error
	RestoreReport(ctx context.Context, sc model.Scope, input RestoreReportInput) (ReportOutput, error)

	RequestRecheck(ctx context.Context, sc model.Scope, input RequestRecheckInput) (ReportOutput, error)

	// Continue is the background analysis continuation. It is safe to
	// run more than once for the same report; terminal reports are
	// never re-advanced.
	Continue(ctx context.Context, reportID int64) error

	// Reconcile re-enqueues pending reports whose task message was lost.
	Reconcile(ctx context.Context) error

	// PurgeExpired hard-deletes recycle-bin reports past retention.
	PurgeExpired(ctx context.Context) error
}
