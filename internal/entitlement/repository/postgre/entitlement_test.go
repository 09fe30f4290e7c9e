package postgre

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"renov-srv/internal/entitlement/repository"
	"renov-srv/internal/model"
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

func TestConsume(t *testing.T) {
	opts := repository.ConsumeOptions{
		OwnerID:  "user-1",
		ReportID: 9,
		Now:      time.Now(),
	}

	t.Run("spends oldest entitlement and unlocks", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT is_unlocked, variant FROM renov.reports").
			WithArgs(int64(9), "user-1").
			WillReturnRows(sqlmock.NewRows([]string{"is_unlocked", "variant"}).AddRow(false, model.VariantQuote))
		mock.ExpectQuery(`bound_variant IS NULL OR bound_variant =`).
			WithArgs("user-1", model.EntitlementStatusAvailable, opts.Now, model.VariantQuote).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(33))
		mock.ExpectExec("UPDATE renov.entitlements").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE renov.reports").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		id, err := repo.Consume(context.Background(), opts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != 33 {
			t.Errorf("entitlement id mismatch: got %d, want 33", id)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	t.Run("already unlocked report", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT is_unlocked, variant FROM renov.reports").
			WillReturnRows(sqlmock.NewRows([]string{"is_unlocked", "variant"}).AddRow(true, model.VariantQuote))
		mock.ExpectRollback()

		_, err := repo.Consume(context.Background(), opts)
		if !errors.Is(err, repository.ErrReportAlreadyUnlocked) {
			t.Errorf("got %v, want ErrReportAlreadyUnlocked", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	t.Run("no available entitlement", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT is_unlocked, variant FROM renov.reports").
			WillReturnRows(sqlmock.NewRows([]string{"is_unlocked", "variant"}).AddRow(false, model.VariantQuote))
		mock.ExpectQuery("SELECT id FROM renov.entitlements").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		_, err := repo.Consume(context.Background(), opts)
		if !errors.Is(err, repository.ErrNoEntitlement) {
			t.Errorf("got %v, want ErrNoEntitlement", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	t.Run("entitlement bound to another variant is skipped", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		// The locking query filters by the report's variant, so a
		// contract-bound entitlement never matches a quote report.
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT is_unlocked, variant FROM renov.reports").
			WillReturnRows(sqlmock.NewRows([]string{"is_unlocked", "variant"}).AddRow(false, model.VariantQuote))
		mock.ExpectQuery(`bound_variant IS NULL OR bound_variant =`).
			WithArgs("user-1", model.EntitlementStatusAvailable, opts.Now, model.VariantQuote).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		_, err := repo.Consume(context.Background(), opts)
		if !errors.Is(err, repository.ErrNoEntitlement) {
			t.Errorf("got %v, want ErrNoEntitlement", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	t.Run("report not found", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT is_unlocked, variant FROM renov.reports").
			WillReturnRows(sqlmock.NewRows([]string{"is_unlocked", "variant"}))
		mock.ExpectRollback()

		_, err := repo.Consume(context.Background(), opts)
		if !errors.Is(err, repository.ErrReportNotFound) {
			t.Errorf("got %v, want ErrReportNotFound", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}
