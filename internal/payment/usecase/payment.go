package usecase

import (
	"context"
	"errors"

	"renov-srv/internal/model"
	"renov-srv/internal/payment"
	"renov-srv/internal/payment/repository"
	"renov-srv/internal/report"
)

// CreateOrder - Open a paid-unlock order for one of the caller's
// locked reports.
func (uc *implUseCase) CreateOrder(ctx context.Context, sc model.Scope, input payment.CreateOrderInput) (payment.OrderOutput, error) {
	out, err := uc.reportUC.GetReport(ctx, sc, report.GetReportInput{ReportID: input.ReportID})
	if err != nil {
		if errors.Is(err, report.ErrReportNotFound) || errors.Is(err, report.ErrPermissionDenied) {
			return payment.OrderOutput{}, payment.ErrReportNotFound
		}
		uc.l.Errorf(ctx, "payment.usecase.CreateOrder: Failed to load report %d: %v", input.ReportID, err)
		return payment.OrderOutput{}, err
	}
	if out.Report.IsUnlocked {
		return payment.OrderOutput{}, payment.ErrAlreadyUnlocked
	}

	order, err := uc.repo.CreateOrder(ctx, repository.CreateOrderOptions{
		OwnerID:       sc.UserID,
		ReportVariant: out.Report.Variant,
		ReportID:      out.Report.ID,
		AmountFen:     uc.config.UnlockPriceFen,
	})
	if err != nil {
		uc.l.Errorf(ctx, "payment.usecase.CreateOrder: Failed to create order for report %d: %v", input.ReportID, err)
		return payment.OrderOutput{}, err
	}
	return payment.OrderOutput{Order: order}, nil
}

// ConfirmPaid - Settle an order after the collaborator verified the
// gateway payment. The order flip and the report unlock are one
// transaction, so a crash between them cannot strand a paid order.
func (uc *implUseCase) ConfirmPaid(ctx context.Context, sc model.Scope, input payment.ConfirmPaidInput) (payment.OrderOutput, error) {
	order, err := uc.repo.ConfirmPaid(ctx, repository.ConfirmPaidOptions{
		OrderID: input.OrderID,
		OwnerID: sc.UserID,
		Now:     uc.clock(),
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			return payment.OrderOutput{}, payment.ErrOrderNotFound
		case errors.Is(err, repository.ErrOrderNotPayable):
			return payment.OrderOutput{}, payment.ErrOrderNotPayable
		default:
			uc.l.Errorf(ctx, "payment.usecase.ConfirmPaid: Failed to confirm order %d: %v", input.OrderID, err)
			return payment.OrderOutput{}, err
		}
	}
	return payment.OrderOutput{Order: order}, nil
}
