package postgre

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"renov-srv/internal/consult/repository"
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

func messageRows(id int64, sessionID int64, role, content string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "session_id", "role", "content", "image_refs", "created_at"}).
		AddRow(id, sessionID, role, content, "{}", time.Now())
}

func TestAppendExchange(t *testing.T) {
	opts := repository.AppendExchangeOptions{
		SessionID:        7,
		UserContent:      "瓷砖空鼓怎么处理?",
		AssistantContent: "建议先确认空鼓面积...",
		Quota: &repository.QuotaIncrement{
			OwnerID:   "user-1",
			YearMonth: "2026-09",
			Ceiling:   3,
		},
	}

	t.Run("quota exhausted rolls back", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO renov.quota_counters").
			WithArgs("user-1", "2026-09", 3, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		_, _, err := repo.AppendExchange(context.Background(), opts)
		if !errors.Is(err, repository.ErrQuotaExhausted) {
			t.Errorf("got %v, want ErrQuotaExhausted", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	t.Run("successful exchange commits both messages", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO renov.quota_counters").
			WithArgs("user-1", "2026-09", 3, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO renov.consult_messages").
			WillReturnRows(messageRows(101, 7, "user", opts.UserContent))
		mock.ExpectQuery("INSERT INTO renov.consult_messages").
			WillReturnRows(messageRows(102, 7, "assistant", opts.AssistantContent))
		mock.ExpectExec("UPDATE renov.consult_sessions SET updated_at").
			WithArgs(int64(7), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		userMsg, assistantMsg, err := repo.AppendExchange(context.Background(), opts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if userMsg.ID != 101 || userMsg.Role != "user" {
			t.Errorf("unexpected user message: %+v", userMsg)
		}
		if assistantMsg.ID != 102 || assistantMsg.Role != "assistant" {
			t.Errorf("unexpected assistant message: %+v", assistantMsg)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	t.Run("member bypass skips quota", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		memberOpts := opts
		memberOpts.Quota = nil

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO renov.consult_messages").
			WillReturnRows(messageRows(201, 7, "user", opts.UserContent))
		mock.ExpectQuery("INSERT INTO renov.consult_messages").
			WillReturnRows(messageRows(202, 7, "assistant", opts.AssistantContent))
		mock.ExpectExec("UPDATE renov.consult_sessions SET updated_at").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		if _, _, err := repo.AppendExchange(context.Background(), memberOpts); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}
