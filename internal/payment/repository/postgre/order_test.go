package postgre

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"renov-srv/internal/model"
	"renov-srv/internal/payment/repository"
	"renov-srv/pkg/log"
)

func newMockRepo(t *testing.T) (*implRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := &implRepository{
		db: db,
		l:  log.Init(log.ZapConfig{Level: "error", Mode: "development", Encoding: "console"}),
	}
	return repo, mock
}

func orderRow(status string, paidAt interface{}) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "owner_id", "report_variant", "report_id", "amount_fen",
		"status", "created_at", "paid_at",
	}).AddRow(int64(7), "user-1", model.VariantQuote, int64(9), int64(990),
		status, time.Now(), paidAt)
}

func TestConfirmPaid(t *testing.T) {
	now := time.Now()
	opts := repository.ConfirmPaidOptions{
		OrderID: 7,
		OwnerID: "user-1",
		Now:     now,
	}

	t.Run("settles order and unlocks report", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status, report_id FROM renov.payment_orders").
			WithArgs(int64(7), "user-1").
			WillReturnRows(sqlmock.NewRows([]string{"status", "report_id"}).
				AddRow(model.OrderStatusCreated, int64(9)))
		mock.ExpectQuery("UPDATE renov.payment_orders").
			WithArgs(int64(7), model.OrderStatusPaid, now).
			WillReturnRows(orderRow(model.OrderStatusPaid, now))
		mock.ExpectExec("UPDATE renov.reports").
			WithArgs(int64(9), model.UnlockReasonPaid, now).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		order, err := repo.ConfirmPaid(context.Background(), opts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.Status != model.OrderStatusPaid {
			t.Errorf("status mismatch: got %q, want %q", order.Status, model.OrderStatusPaid)
		}
		if order.PaidAt == nil {
			t.Error("expected PaidAt to be set")
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	t.Run("already paid order is not payable", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status, report_id FROM renov.payment_orders").
			WillReturnRows(sqlmock.NewRows([]string{"status", "report_id"}).
				AddRow(model.OrderStatusPaid, int64(9)))
		mock.ExpectRollback()

		if _, err := repo.ConfirmPaid(context.Background(), opts); !errors.Is(err, repository.ErrOrderNotPayable) {
			t.Errorf("error mismatch: got %v, want %v", err, repository.ErrOrderNotPayable)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status, report_id FROM renov.payment_orders").
			WillReturnRows(sqlmock.NewRows([]string{"status", "report_id"}))
		mock.ExpectRollback()

		if _, err := repo.ConfirmPaid(context.Background(), opts); !errors.Is(err, repository.ErrOrderNotFound) {
			t.Errorf("error mismatch: got %v, want %v", err, repository.ErrOrderNotFound)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}

func TestGetOrder(t *testing.T) {
	t.Run("owner scoped lookup", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM renov.payment_orders").
			WithArgs(int64(7), "user-1").
			WillReturnRows(orderRow(model.OrderStatusCreated, nil))

		order, err := repo.GetOrder(context.Background(), repository.GetOrderOptions{OrderID: 7, OwnerID: "user-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.ID != 7 {
			t.Errorf("order id mismatch: got %d, want 7", order.ID)
		}
		if order.PaidAt != nil {
			t.Error("expected PaidAt to be nil for a created order")
		}
	})

	t.Run("missing order", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM renov.payment_orders").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		if _, err := repo.GetOrder(context.Background(), repository.GetOrderOptions{OrderID: 404, OwnerID: "user-1"}); !errors.Is(err, repository.ErrOrderNotFound) {
			t.Errorf("error mismatch: got %v, want %v", err, repository.ErrOrderNotFound)
		}
	})
}
