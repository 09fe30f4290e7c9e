package postgre

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"renov-srv/internal/model"
	"renov-srv/internal/user/repository"
)

const userColumns = `
	id, open_id, nickname, avatar, phone, city, session_key_enc,
	is_member, member_expires_at, first_free_used, invited_by,
	created_at, updated_at
`

// Create - Insert a new user record.
func (r *implRepository) Create(ctx context.Context, opts repository.CreateOptions) (*model.User, error) {
	now := time.Now()
	query := `
		INSERT INTO renov.users (
			id, open_id, nickname, avatar, session_key_enc, invited_by,
			is_member, first_free_used, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, FALSE, $7, $7)
		RETURNING ` + userColumns

	row := r.db.QueryRowContext(ctx, query,
		uuid.New().String(), opts.OpenID, opts.Nickname, opts.Avatar,
		opts.SessionKeyEnc, opts.InvitedBy, now,
	)

	u, err := scanUser(row)
	if err != nil {
		r.l.Errorf(ctx, "user.repository.postgre.Create: Failed to insert user: %v", err)
		return nil, repository.ErrUserCreateFailed
	}
	return u, nil
}

// GetByID - Get user by primary key.
func (r *implRepository) GetByID(ctx context.Context, userID string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM renov.users WHERE id = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, userID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "user.repository.postgre.GetByID: Failed to get user: %v", err)
		return nil, err
	}
	return u, nil
}

// GetByOpenID - Get user by platform open ID.
func (r *implRepository) GetByOpenID(ctx context.Context, openID string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM renov.users WHERE open_id = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, openID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "user.repository.postgre.GetByOpenID: Failed to get user: %v", err)
		return nil, err
	}
	return u, nil
}

// Update - Apply partial profile updates. Nil fields are untouched.
func (r *implRepository) Update(ctx context.Context, opts repository.UpdateOptions) (*model.User, error) {
	sets := []string{}
	args := []interface{}{}
	argIdx := 1

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if opts.Nickname != nil {
		add("nickname", *opts.Nickname)
	}
	if opts.Avatar != nil {
		add("avatar", *opts.Avatar)
	}
	if opts.Phone != nil {
		add("phone", *opts.Phone)
	}
	if opts.City != nil {
		add("city", *opts.City)
	}
	if opts.SessionKeyEnc != nil {
		add("session_key_enc", *opts.SessionKeyEnc)
	}
	if opts.InvitedBy != nil {
		add("invited_by", *opts.InvitedBy)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, opts.UserID)
	}

	add("updated_at", time.Now())

	query := fmt.Sprintf(`UPDATE renov.users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), argIdx, userColumns)
	args = append(args, opts.UserID)

	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "user.repository.postgre.Update: Failed to update user: %v", err)
		return nil, err
	}
	return u, nil
}

// ConsumeFirstFree - Claim the lifetime first-free flag. The WHERE
// clause makes concurrent claims race on the row; exactly one wins.
func (r *implRepository) ConsumeFirstFree(ctx context.Context, userID string) (bool, error) {
	query := `
		UPDATE renov.users
		SET first_free_used = TRUE, updated_at = $2
		WHERE id = $1 AND first_free_used = FALSE`

	res, err := r.db.ExecContext(ctx, query, userID, time.Now())
	if err != nil {
		r.l.Errorf(ctx, "user.repository.postgre.ConsumeFirstFree: Failed to update: %v", err)
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// SetMembership - Activate or extend a membership.
func (r *implRepository) SetMembership(ctx context.Context, opts repository.SetMembershipOptions) error {
	query := `
		UPDATE renov.users
		SET is_member = TRUE, member_expires_at = $2, updated_at = $3
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, opts.UserID, opts.ExpiresAt, time.Now())
	if err != nil {
		r.l.Errorf(ctx, "user.repository.postgre.SetMembership: Failed to update: %v", err)
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*model.User, error) {
	var u model.User
	var phone, city, invitedBy sql.NullString
	var memberExpiresAt sql.NullTime

	err := row.Scan(
		&u.ID, &u.OpenID, &u.Nickname, &u.Avatar, &phone, &city, &u.SessionKeyEnc,
		&u.IsMember, &memberExpiresAt, &u.FirstFreeUsed, &invitedBy,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Phone = phone.String
	u.City = city.String
	u.InvitedBy = invitedBy.String
	if memberExpiresAt.Valid {
		t := memberExpiresAt.Time
		u.MemberExpiresAt = &t
	}
	return &u, nil
}
