package postgre

import (
	"context"
	"time"

	"renov-srv/internal/consult/repository"
	"renov-srv/internal/model"
)

// AppendExchange - Insert the user message and the assistant reply in
// one transaction, together with the guarded quota increment. The
// increment's WHERE clause makes the monthly ceiling atomic: zero rows
// affected means the quota is spent and the whole exchange rolls back.
func (r *implRepository) AppendExchange(ctx context.Context, opts repository.AppendExchangeOptions) (*model.ConsultMessage, *model.ConsultMessage, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "consult.repository.postgre.AppendExchange: Failed to begin tx: %v", err)
		return nil, nil, err
	}
	defer tx.Rollback()

	if opts.Quota != nil {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO renov.quota_counters (owner_id, year_month, used_count, updated_at)
			VALUES ($1, $2, 1, $4)
			ON CONFLICT (owner_id, year_month)
			DO UPDATE SET used_count = quota_counters.used_count + 1, updated_at = $4
			WHERE quota_counters.used_count < $3`,
			opts.Quota.OwnerID, opts.Quota.YearMonth, opts.Quota.Ceiling, time.Now(),
		)
		if err != nil {
			r.l.Errorf(ctx, "consult.repository.postgre.AppendExchange: Failed to bump quota: %v", err)
			return nil, nil, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, nil, err
		}
		if affected == 0 {
			return nil, nil, repository.ErrQuotaExhausted
		}
	}

	userMsg, err := insertMessage(ctx, tx, opts.SessionID, model.RoleUser, opts.UserContent, opts.UserImageRefs)
	if err != nil {
		r.l.Errorf(ctx, "consult.repository.postgre.AppendExchange: Failed to insert user message: %v", err)
		return nil, nil, err
	}

	assistantMsg, err := insertMessage(ctx, tx, opts.SessionID, model.RoleAssistant, opts.AssistantContent, nil)
	if err != nil {
		r.l.Errorf(ctx, "consult.repository.postgre.AppendExchange: Failed to insert assistant message: %v", err)
		return nil, nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE renov.consult_sessions SET updated_at = $2 WHERE id = $1`,
		opts.SessionID, time.Now(),
	); err != nil {
		r.l.Errorf(ctx, "consult.repository.postgre.AppendExchange: Failed to touch session: %v", err)
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "consult.repository.postgre.AppendExchange: Failed to commit: %v", err)
		return nil, nil, err
	}
	return userMsg, assistantMsg, nil
}
