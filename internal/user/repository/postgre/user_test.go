package postgre

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

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

func TestConsumeFirstFree(t *testing.T) {
	t.Run("first winner flips the flag", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("UPDATE renov.users").
			WillReturnResult(sqlmock.NewResult(0, 1))

		won, err := repo.ConsumeFirstFree(context.Background(), "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !won {
			t.Error("expected the first consumer to win the free unlock")
		}
	})

	t.Run("already used", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("UPDATE renov.users").
			WillReturnResult(sqlmock.NewResult(0, 0))

		won, err := repo.ConsumeFirstFree(context.Background(), "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if won {
			t.Error("expected a spent flag to report no win")
		}
	})

	t.Run("database error surfaces", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("UPDATE renov.users").
			WillReturnError(errors.New("connection reset"))

		if _, err := repo.ConsumeFirstFree(context.Background(), "user-1"); err == nil {
			t.Error("expected an error")
		}
	})
}
