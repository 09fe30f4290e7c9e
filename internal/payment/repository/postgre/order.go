package postgre

import (
	"context"
	"database/sql"
	"time"

	"renov-srv/internal/model"
	"renov-srv/internal/payment/repository"
)

const orderColumns = `id, owner_id, report_variant, report_id, amount_fen, status, created_at, paid_at`

// CreateOrder - Insert a new paid-unlock order in the created state.
func (r *implRepository) CreateOrder(ctx context.Context, opts repository.CreateOrderOptions) (*model.PaymentOrder, error) {
	query := `
		INSERT INTO renov.payment_orders (owner_id, report_variant, report_id, amount_fen, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + orderColumns

	order, err := scanOrder(r.db.QueryRowContext(ctx, query,
		opts.OwnerID, opts.ReportVariant, opts.ReportID, opts.AmountFen,
		model.OrderStatusCreated, time.Now()))
	if err != nil {
		r.l.Errorf(ctx, "payment.repository.postgre.CreateOrder: Failed to insert order: %v", err)
		return nil, repository.ErrOrderCreateFailed
	}
	return order, nil
}

// GetOrder - Fetch one order scoped to its owner.
func (r *implRepository) GetOrder(ctx context.Context, opts repository.GetOrderOptions) (*model.PaymentOrder, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM renov.payment_orders
		WHERE id = $1 AND owner_id = $2`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, opts.OrderID, opts.OwnerID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrOrderNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "payment.repository.postgre.GetOrder: Failed to get order: %v", err)
		return nil, err
	}
	return order, nil
}

// ConfirmPaid - Mark the order paid and unlock its report in one
// transaction. Duplicate callbacks find the order already paid and
// get ErrOrderNotPayable.
func (r *implRepository) ConfirmPaid(ctx context.Context, opts repository.ConfirmPaidOptions) (*model.PaymentOrder, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "payment.repository.postgre.ConfirmPaid: Failed to begin tx: %v", err)
		return nil, err
	}
	defer tx.Rollback()

	var status string
	var reportID int64
	err = tx.QueryRowContext(ctx, `
		SELECT status, report_id FROM renov.payment_orders
		WHERE id = $1 AND owner_id = $2
		FOR UPDATE`,
		opts.OrderID, opts.OwnerID,
	).Scan(&status, &reportID)
	if err == sql.ErrNoRows {
		return nil, repository.ErrOrderNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "payment.repository.postgre.ConfirmPaid: Failed to lock order: %v", err)
		return nil, err
	}
	if status != model.OrderStatusCreated {
		return nil, repository.ErrOrderNotPayable
	}

	order, err := scanOrder(tx.QueryRowContext(ctx, `
		UPDATE renov.payment_orders
		SET status = $2, paid_at = $3
		WHERE id = $1
		RETURNING `+orderColumns,
		opts.OrderID, model.OrderStatusPaid, opts.Now,
	))
	if err != nil {
		r.l.Errorf(ctx, "payment.repository.postgre.ConfirmPaid: Failed to update order: %v", err)
		return nil, err
	}

	// The report may already be unlocked through another path; the
	// guarded update keeps the original unlock reason in that case.
	if _, err := tx.ExecContext(ctx, `
		UPDATE renov.reports
		SET is_unlocked = TRUE, unlock_reason = $2, updated_at = $3
		WHERE id = $1 AND is_unlocked = FALSE`,
		reportID, model.UnlockReasonPaid, opts.Now,
	); err != nil {
		r.l.Errorf(ctx, "payment.repository.postgre.ConfirmPaid: Failed to unlock report: %v", err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "payment.repository.postgre.ConfirmPaid: Failed to commit: %v", err)
		return nil, err
	}
	return order, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*model.PaymentOrder, error) {
	var order model.PaymentOrder
	var paidAt sql.NullTime

	err := row.Scan(
		&order.ID, &order.OwnerID, &order.ReportVariant, &order.ReportID,
		&order.AmountFen, &order.Status, &order.CreatedAt, &paidAt,
	)
	if err != nil {
		return nil, err
	}

	if paidAt.Valid {
		t := paidAt.Time
		order.PaidAt = &t
	}
	return &order, nil
}
