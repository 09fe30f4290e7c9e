package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"renov-srv/internal/model"
	"renov-srv/internal/report"
	"renov-srv/internal/report/repository"
	"renov-srv/pkg/llmagent"
	"renov-srv/pkg/ocr"
	"renov-srv/pkg/storage"
)

// Continue runs the background analysis pipeline for one report.
// Duplicate runs are harmless: every status write is gated on the
// current status, and terminal reports are returned untouched.
func (uc *implUseCase) Continue(ctx context.Context, reportID int64) error {
	ctx, cancel := context.WithTimeout(ctx, analysisDeadline)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			uc.l.Errorf(ctx, "report.usecase.Continue: panic recovered for report %d: %v", reportID, r)
			_ = uc.repo.UpdateFailed(context.Background(), repository.UpdateFailedOptions{
				ReportID: reportID,
				Message:  fmt.Sprintf("internal panic: %v", r),
			})
		}
	}()

	rpt, err := uc.repo.GetByID(ctx, repository.GetOptions{ReportID: reportID})
	if errors.Is(err, repository.ErrReportNotFound) {
		uc.l.Warnf(ctx, "report.usecase.Continue: report %d not found, dropping task", reportID)
		return nil
	}
	if err != nil {
		return err
	}
	if rpt.Terminal() {
		return nil
	}

	advanced, err := uc.repo.UpdateStatus(ctx, repository.UpdateStatusOptions{
		ReportID: reportID,
		Expected: model.ReportStatusPending,
		New:      model.ReportStatusAnalyzing,
		Progress: model.Progress{Step: report.StepOCR, Percent: report.PercentOCR, Message: "识别资料中"},
	})
	if err != nil {
		return err
	}
	// A prior run may have advanced the status and died; reruns on an
	// analyzing report are allowed and converge on the same result.
	if !advanced && rpt.Status != model.ReportStatusAnalyzing {
		return nil
	}

	var (
		result       json.RawMessage
		resultStatus string
	)
	switch rpt.Variant {
	case model.VariantQuote, model.VariantContract:
		result, err = uc.analyzeDocument(ctx, rpt)
	case model.VariantCompany:
		result, err = uc.analyzeCompany(ctx, rpt)
	case model.VariantAcceptance:
		result, resultStatus, err = uc.analyzeAcceptance(ctx, rpt)
	default:
		err = fmt.Errorf("unknown variant %q", rpt.Variant)
	}
	if err != nil {
		uc.failReport(ctx, reportID, err)
		return nil
	}

	completed, err := uc.repo.UpdateCompleted(ctx, repository.UpdateCompletedOptions{
		ReportID:     reportID,
		Result:       result,
		ResultStatus: resultStatus,
		Progress:     completedProgress(),
	})
	if err != nil {
		return err
	}
	if !completed {
		// Lost the race to another run; that run owns the notifications.
		return nil
	}

	uc.applyFirstFree(ctx, rpt)
	uc.publishEvent(ctx, "report.completed", rpt)

	uc.l.Infof(ctx, "report.usecase.Continue: report %d (%s) completed", rpt.ID, rpt.Variant)
	return nil
}

// analyzeDocument handles the quote and contract pipelines:
// download, OCR, LLM, parse.
func (uc *implUseCase) analyzeDocument(ctx context.Context, rpt *model.Report) (json.RawMessage, error) {
	body, err := uc.storage.Download(ctx, uc.storage.DocsBucket(), rpt.SourceRef)
	if err != nil {
		return nil, fmt.Errorf("download artifact: %w", err)
	}
	data, err := io.ReadAll(body)
	_ = body.Close()
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	ocrResult, err := uc.ocr.Recognize(ctx, &ocr.RecognizeRequest{
		Image:      data,
		TableFirst: rpt.Variant == model.VariantQuote,
	})
	if err != nil {
		return nil, fmt.Errorf("ocr: %w", err)
	}
	if ocrResult.ErrorCount > 0 {
		uc.l.Warnf(ctx, "report.usecase.analyzeDocument: report %d OCR finished with %d/%d failed segments",
			rpt.ID, ocrResult.ErrorCount, ocrResult.SegmentsProcessed)
	}

	if err := uc.repo.UpdateProgress(ctx, repository.UpdateProgressOptions{
		ReportID: rpt.ID,
		Progress: model.Progress{Step: report.StepAnalyzing, Percent: report.PercentAnalyzing, Message: "分析内容中"},
		OCRText:  ocrResult.Text,
	}); err != nil {
		return nil, err
	}

	prompt := buildDocumentPrompt(rpt.Variant, ocrResult.Text)
	reply, err := uc.agent.Invoke(ctx, &llmagent.InvokeRequest{
		Prompt: prompt,
		UserID: rpt.OwnerID,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: %w", err)
	}

	result := uc.parseResult(ctx, rpt, reply.Content)
	if err := uc.markPersisting(ctx, rpt.ID); err != nil {
		return nil, err
	}
	return result, nil
}

// analyzeCompany handles the company pipeline: enrichment then LLM.
// Enrichment failures degrade to an LLM-only analysis.
func (uc *implUseCase) analyzeCompany(ctx context.Context, rpt *model.Report) (json.RawMessage, error) {
	profile, err := uc.enrich.CompanyProfile(ctx, rpt.SourceRef)
	if err != nil {
		uc.l.Warnf(ctx, "report.usecase.analyzeCompany: registry lookup failed for report %d: %v", rpt.ID, err)
	}
	litigation, err := uc.enrich.Litigation(ctx, rpt.SourceRef)
	if err != nil {
		uc.l.Warnf(ctx, "report.usecase.analyzeCompany: litigation lookup failed for report %d: %v", rpt.ID, err)
	}

	if err := uc.repo.UpdateProgress(ctx, repository.UpdateProgressOptions{
		ReportID: rpt.ID,
		Progress: model.Progress{Step: report.StepAnalyzing, Percent: report.PercentAnalyzing, Message: "分析企业风险中"},
	}); err != nil {
		return nil, err
	}

	prompt := buildCompanyPrompt(rpt.SourceRef, profile, litigation)
	reply, err := uc.agent.Invoke(ctx, &llmagent.InvokeRequest{
		Prompt: prompt,
		UserID: rpt.OwnerID,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: %w", err)
	}

	result := uc.parseResult(ctx, rpt, reply.Content)
	if err := uc.markPersisting(ctx, rpt.ID); err != nil {
		return nil, err
	}
	return result, nil
}

// analyzeAcceptance handles stage-photo review. Photos reach the agent
// as signed URLs; no OCR is involved.
func (uc *implUseCase) analyzeAcceptance(ctx context.Context, rpt *model.Report) (json.RawMessage, string, error) {
	refs := strings.Split(rpt.SourceRef, ",")
	urls := make([]string, 0, len(refs))
	for _, ref := range refs {
		signed, err := uc.storage.PresignedGetURL(ctx, uc.storage.PhotosBucket(), ref, storage.PhotoURLExpiry)
		if err != nil {
			return nil, "", fmt.Errorf("presign photo %s: %w", ref, err)
		}
		urls = append(urls, signed.URL)
	}

	if err := uc.repo.UpdateProgress(ctx, repository.UpdateProgressOptions{
		ReportID: rpt.ID,
		Progress: model.Progress{Step: report.StepAnalyzing, Percent: report.PercentAnalyzing, Message: "检查施工照片中"},
	}); err != nil {
		return nil, "", err
	}

	prompt := buildAcceptancePrompt(rpt.Stage, urls)
	reply, err := uc.agent.Invoke(ctx, &llmagent.InvokeRequest{
		Prompt: prompt,
		UserID: rpt.OwnerID,
	})
	if err != nil {
		return nil, "", fmt.Errorf("llm: %w", err)
	}

	result := uc.parseResult(ctx, rpt, reply.Content)
	resultStatus := acceptanceResultStatus(result)

	if err := uc.markPersisting(ctx, rpt.ID); err != nil {
		return nil, "", err
	}
	return result, resultStatus, nil
}

// parseResult extracts the variant result from the agent reply, falling
// back to the deterministic unavailable payload when no conforming JSON
// can be recovered. Parse failures never fail the report.
func (uc *implUseCase) parseResult(ctx context.Context, rpt *model.Report, reply string) json.RawMessage {
	result, err := extractResult(rpt.Variant, reply)
	if err != nil {
		uc.l.Warnf(ctx, "report.usecase.parseResult: report %d: %v; storing fallback result", rpt.ID, err)
		return fallbackResult(rpt.Variant)
	}
	return result
}

func (uc *implUseCase) markPersisting(ctx context.Context, reportID int64) error {
	return uc.repo.UpdateProgress(ctx, repository.UpdateProgressOptions{
		ReportID: reportID,
		Progress: model.Progress{Step: report.StepPersisting, Percent: report.PercentPersisting, Message: "保存结果中"},
	})
}

// applyFirstFree grants the lifetime first-report-free unlock when this
// completion is the owner's first unlocked report. The user-row CAS in
// ConsumeFirstFree keeps the grant single-shot under concurrency.
func (uc *implUseCase) applyFirstFree(ctx context.Context, rpt *model.Report) {
	hasUnlocked, err := uc.repo.HasUnlocked(ctx, rpt.OwnerID)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.applyFirstFree: Failed to check unlocked reports: %v", err)
		return
	}
	if hasUnlocked {
		return
	}

	won, err := uc.userUC.ConsumeFirstFree(ctx, rpt.OwnerID)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.applyFirstFree: Failed to consume first-free flag: %v", err)
		return
	}
	if !won {
		return
	}

	if err := uc.repo.SetUnlock(ctx, repository.SetUnlockOptions{
		ReportID: rpt.ID,
		Reason:   model.UnlockReasonFirstFree,
	}); err != nil {
		uc.l.Errorf(ctx, "report.usecase.applyFirstFree: Failed to unlock report %d: %v", rpt.ID, err)
	}
}

func (uc *implUseCase) failReport(ctx context.Context, reportID int64, cause error) {
	uc.l.Errorf(ctx, "report.usecase.Continue: report %d failed: %v", reportID, cause)
	if err := uc.repo.UpdateFailed(context.WithoutCancel(ctx), repository.UpdateFailedOptions{
		ReportID: reportID,
		Message:  cause.Error(),
	}); err != nil {
		uc.l.Errorf(ctx, "report.usecase.failReport: Failed to mark report %d failed: %v", reportID, err)
	}
}
