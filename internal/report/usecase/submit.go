package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"renov-srv/internal/model"
	"renov-srv/internal/report"
	"renov-srv/internal/report/repository"
	"renov-srv/pkg/storage"
)

// SubmitQuote accepts a quote document, stores it, and queues analysis.
func (uc *implUseCase) SubmitQuote(ctx context.Context, sc model.Scope, input report.SubmitDocumentInput) (report.SubmitOutput, error) {
	return uc.submitDocument(ctx, sc, model.VariantQuote, storage.PrefixQuotes, input)
}

// SubmitContract accepts a contract document, stores it, and queues analysis.
func (uc *implUseCase) SubmitContract(ctx context.Context, sc model.Scope, input report.SubmitDocumentInput) (report.SubmitOutput, error) {
	return uc.submitDocument(ctx, sc, model.VariantContract, storage.PrefixContracts, input)
}

func (uc *implUseCase) submitDocument(ctx context.Context, sc model.Scope, variant, keyPrefix string, input report.SubmitDocumentInput) (report.SubmitOutput, error) {
	if err := uc.validateDocumentUpload(input); err != nil {
		return report.SubmitOutput{}, err
	}

	key := storage.BuildKey(keyPrefix, sc.UserID, input.FileName)
	if _, err := uc.storage.Upload(ctx, &storage.UploadRequest{
		Bucket:       uc.storage.DocsBucket(),
		Key:          key,
		OriginalName: input.FileName,
		Reader:       input.Reader,
		Size:         input.Size,
		ContentType:  input.ContentType,
	}); err != nil {
		uc.l.Errorf(ctx, "report.usecase.submitDocument: Failed to upload artifact: %v", err)
		return report.SubmitOutput{}, report.ErrSubmitFailed
	}

	rpt, err := uc.repo.Create(ctx, repository.CreateOptions{
		Variant:   variant,
		OwnerID:   sc.UserID,
		SourceRef: key,
		FileName:  input.FileName,
		Progress:  queuedProgress(),
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.submitDocument: Failed to create report: %v", err)
		return report.SubmitOutput{}, report.ErrSubmitFailed
	}

	uc.enqueueAnalysis(ctx, rpt.ID)

	return report.SubmitOutput{
		ReportID: rpt.ID,
		Status:   rpt.Status,
		Progress: rpt.Progress,
	}, nil
}

// SubmitCompany queues a company background scan, short-circuiting
// through the freshness-windowed cache first. A cache hit creates the
// new report already completed with the prior result and reason cached.
func (uc *implUseCase) SubmitCompany(ctx context.Context, sc model.Scope, input report.SubmitCompanyInput) (report.SubmitOutput, error) {
	name := strings.TrimSpace(input.CompanyName)
	if name == "" {
		return report.SubmitOutput{}, report.ErrCompanyNameRequired
	}
	normalized := normalizeCompanyName(name)

	cached, err := uc.repo.FindCachedCompany(ctx, repository.FindCachedCompanyOptions{
		NormalizedName: normalized,
		Window:         uc.config.CompanyCacheWindow,
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.SubmitCompany: Failed to check cache: %v", err)
		return report.SubmitOutput{}, report.ErrSubmitFailed
	}

	opts := repository.CreateOptions{
		Variant:        model.VariantCompany,
		OwnerID:        sc.UserID,
		SourceRef:      name,
		NormalizedName: normalized,
		Progress:       queuedProgress(),
	}
	if cached != nil {
		opts.Status = model.ReportStatusCompleted
		opts.Progress = completedProgress()
		opts.Result = cached.Result
		opts.IsUnlocked = true
		opts.UnlockReason = model.UnlockReasonCached
	}

	rpt, err := uc.repo.Create(ctx, opts)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.SubmitCompany: Failed to create report: %v", err)
		return report.SubmitOutput{}, report.ErrSubmitFailed
	}

	if cached == nil {
		uc.enqueueAnalysis(ctx, rpt.ID)
	}

	return report.SubmitOutput{
		ReportID: rpt.ID,
		Status:   rpt.Status,
		Progress: rpt.Progress,
	}, nil
}

// UploadAcceptancePhoto stores one construction photo and returns its
// key plus a short-lived preview URL.
func (uc *implUseCase) UploadAcceptancePhoto(ctx context.Context, sc model.Scope, input report.UploadPhotoInput) (report.UploadPhotoOutput, error) {
	if err := uc.validatePhotoUpload(input); err != nil {
		return report.UploadPhotoOutput{}, err
	}

	key := storage.BuildKey(storage.PrefixAcceptance, sc.UserID, input.FileName)
	if _, err := uc.storage.Upload(ctx, &storage.UploadRequest{
		Bucket:       uc.storage.PhotosBucket(),
		Key:          key,
		OriginalName: input.FileName,
		Reader:       input.Reader,
		Size:         input.Size,
		ContentType:  input.ContentType,
	}); err != nil {
		uc.l.Errorf(ctx, "report.usecase.UploadAcceptancePhoto: Failed to upload photo: %v", err)
		return report.UploadPhotoOutput{}, report.ErrSubmitFailed
	}

	preview, err := uc.storage.PresignedGetURL(ctx, uc.storage.PhotosBucket(), key, storage.DocURLExpiry)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.UploadAcceptancePhoto: Failed to presign preview: %v", err)
		return report.UploadPhotoOutput{}, report.ErrSubmitFailed
	}

	return report.UploadPhotoOutput{
		PhotoRef:   key,
		PreviewURL: preview.URL,
	}, nil
}

// SubmitAcceptance queues analysis of previously uploaded stage photos.
func (uc *implUseCase) SubmitAcceptance(ctx context.Context, sc model.Scope, input report.SubmitAcceptanceInput) (report.SubmitOutput, error) {
	if !report.ValidStages[input.Stage] {
		return report.SubmitOutput{}, report.ErrInvalidStage
	}
	if len(input.PhotoRefs) == 0 {
		return report.SubmitOutput{}, report.ErrPhotosRequired
	}
	for _, ref := range input.PhotoRefs {
		if !strings.HasPrefix(ref, storage.OwnerPrefix(storage.PrefixAcceptance, sc.UserID)) {
			return report.SubmitOutput{}, report.ErrPermissionDenied
		}
	}

	rpt, err := uc.repo.Create(ctx, repository.CreateOptions{
		Variant:   model.VariantAcceptance,
		OwnerID:   sc.UserID,
		SourceRef: strings.Join(input.PhotoRefs, ","),
		Stage:     input.Stage,
		Progress:  queuedProgress(),
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.SubmitAcceptance: Failed to create report: %v", err)
		return report.SubmitOutput{}, report.ErrSubmitFailed
	}

	uc.enqueueAnalysis(ctx, rpt.ID)

	return report.SubmitOutput{
		ReportID: rpt.ID,
		Status:   rpt.Status,
		Progress: rpt.Progress,
	}, nil
}

// enqueueAnalysis publishes the continuation task. A publish failure is
// logged but does not fail the submit; the report stays pending and the
// reconcile pass will pick it up.
func (uc *implUseCase) enqueueAnalysis(ctx context.Context, reportID int64) {
	value, err := marshalTask(reportID)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.enqueueAnalysis: Failed to marshal task: %v", err)
		return
	}
	key := []byte(strconv.FormatInt(reportID, 10))
	if err := uc.taskProducer.Publish(key, value); err != nil {
		uc.l.Errorf(ctx, "report.usecase.enqueueAnalysis: Failed to publish task for report %d: %v", reportID, err)
	}
}

func (uc *implUseCase) publishEvent(ctx context.Context, eventType string, rpt *model.Report) {
	value, err := marshalEvent(reportEvent{
		Type:     eventType,
		ReportID: rpt.ID,
		Variant:  rpt.Variant,
		OwnerID:  rpt.OwnerID,
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.publishEvent: Failed to marshal event: %v", err)
		return
	}
	key := []byte(fmt.Sprintf("%s:%d", rpt.Variant, rpt.ID))
	if err := uc.eventProducer.Publish(key, value); err != nil {
		uc.l.Warnf(ctx, "report.usecase.publishEvent: Failed to publish %s for report %d: %v", eventType, rpt.ID, err)
	}
}
