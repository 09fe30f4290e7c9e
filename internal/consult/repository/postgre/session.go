package postgre

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"renov-srv/internal/consult/repository"
	"renov-srv/internal/model"
)

const sessionColumns = `
	id, owner_id, linked_report_id, linked_report_variant, stage,
	status, is_human_escalated, escalated_at, created_at, updated_at
`

const messageColumns = `id, session_id, role, content, image_refs, created_at`

// CreateSession - Insert a new consultation session.
func (r *implRepository) CreateSession(ctx context.Context, opts repository.CreateSessionOptions) (*model.ConsultSession, error) {
	query := `
		INSERT INTO renov.consult_sessions (
			owner_id, linked_report_id, linked_report_variant, stage,
			status, is_human_escalated, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6, $6)
		RETURNING ` + sessionColumns

	var linked sql.NullInt64
	if opts.LinkedReportID != nil {
		linked = sql.NullInt64{Int64: *opts.LinkedReportID, Valid: true}
	}

	sess, err := scanSession(r.db.QueryRowContext(ctx, query,
		opts.OwnerID, linked, opts.LinkedReportVariant, opts.Stage,
		model.SessionStatusActive, time.Now()))
	if err != nil {
		r.l.Errorf(ctx, "consult.repository.postgre.CreateSession: Failed to insert session: %v", err)
		return nil, repository.ErrSessionCreateFailed
	}
	return sess, nil
}

// GetSession - Get session by primary key.
func (r *implRepository) GetSession(ctx context.Context, sessionID int64) (*model.ConsultSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM renov.consult_sessions WHERE id = $1`

	sess, err := scanSession(r.db.QueryRowContext(ctx, query, sessionID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrSessionNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "consult.repository.postgre.GetSession: Failed to get session: %v", err)
		return nil, err
	}
	return sess, nil
}

// ListRecentMessages - Newest messages in ascending id order.
func (r *implRepository) ListRecentMessages(ctx context.Context, sessionID int64, limit int) ([]model.ConsultMessage, error) {
	query := `
		SELECT ` + messageColumns + ` FROM (
			SELECT ` + messageColumns + `
			FROM renov.consult_messages
			WHERE session_id = $1
			ORDER BY id DESC
			LIMIT $2
		) recent
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		r.l.Errorf(ctx, "consult.repository.postgre.ListRecentMessages: Failed to list messages: %v", err)
		return nil, err
	}
	defer rows.Close()

	var msgs []model.ConsultMessage
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("ListRecentMessages scan: %w", err)
		}
		msgs = append(msgs, *msg)
	}
	return msgs, rows.Err()
}

// AppendMessage - Insert one message outside an exchange.
func (r *implRepository) AppendMessage(ctx context.Context, opts repository.AppendMessageOptions) (*model.ConsultMessage, error) {
	msg, err := insertMessage(ctx, r.db, opts.SessionID, opts.Role, opts.Content, opts.ImageRefs)
	if err != nil {
		r.l.Errorf(ctx, "consult.repository.postgre.AppendMessage: Failed to insert message: %v", err)
		return nil, err
	}
	return msg, nil
}

// GetQuotaUsed - Read the owner's monthly counter, zero when absent.
func (r *implRepository) GetQuotaUsed(ctx context.Context, ownerID, yearMonth string) (int, error) {
	query := `SELECT used_count FROM renov.quota_counters WHERE owner_id = $1 AND year_month = $2`

	var used int
	err := r.db.QueryRowContext(ctx, query, ownerID, yearMonth).Scan(&used)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "consult.repository.postgre.GetQuotaUsed: Failed to read counter: %v", err)
		return 0, err
	}
	return used, nil
}

// Escalate - Flag the session for human review.
func (r *implRepository) Escalate(ctx context.Context, sessionID int64) error {
	query := `
		UPDATE renov.consult_sessions
		SET is_human_escalated = TRUE, escalated_at = $2, updated_at = $2
		WHERE id = $1 AND is_human_escalated = FALSE`

	if _, err := r.db.ExecContext(ctx, query, sessionID, time.Now()); err != nil {
		r.l.Errorf(ctx, "consult.repository.postgre.Escalate: Failed to update session: %v", err)
		return err
	}
	return nil
}

type execer interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func insertMessage(ctx context.Context, db execer, sessionID int64, role, content string, imageRefs []string) (*model.ConsultMessage, error) {
	query := `
		INSERT INTO renov.consult_messages (session_id, role, content, image_refs, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + messageColumns

	if imageRefs == nil {
		imageRefs = []string{}
	}
	return scanMessage(db.QueryRowContext(ctx, query, sessionID, role, content, pq.Array(imageRefs), time.Now()))
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*model.ConsultSession, error) {
	var sess model.ConsultSession
	var linkedID sql.NullInt64
	var linkedVariant, stage sql.NullString
	var escalatedAt sql.NullTime

	err := row.Scan(
		&sess.ID, &sess.OwnerID, &linkedID, &linkedVariant, &stage,
		&sess.Status, &sess.IsHumanEscalated, &escalatedAt,
		&sess.CreatedAt, &sess.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if linkedID.Valid {
		v := linkedID.Int64
		sess.LinkedReportID = &v
	}
	sess.LinkedReportVariant = linkedVariant.String
	sess.Stage = stage.String
	if escalatedAt.Valid {
		t := escalatedAt.Time
		sess.EscalatedAt = &t
	}
	return &sess, nil
}

func scanMessage(row rowScanner) (*model.ConsultMessage, error) {
	var msg model.ConsultMessage
	var refs pq.StringArray

	err := row.Scan(&msg.ID, &msg.SessionID, &msg.Role, &msg.Content, &refs, &msg.CreatedAt)
	if err != nil {
		return nil, err
	}

	msg.ImageRefs = refs
	return &msg, nil
}
