package db

import (
	"context"

	"github.com/shandysiswandi/gotp/internal/otp/entity"
	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
)

const userColumns = `id, COALESCE(phone, ''), COALESCE(email, ''), status, COALESCE(totp_secret, ''), created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Phone, &u.Email, &u.Status, &u.TOTPSecret, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *DB) GetUserByPhone(ctx context.Context, phone string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByPhone")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE phone = $1`, phone)

	u, err := scanUser(row)
	if err != nil {
		return nil, s.mapError(err)
	}
	return u, nil
}

func (s *DB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	u, err := scanUser(row)
	if err != nil {
		return nil, s.mapError(err)
	}
	return u, nil
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	u, err := scanUser(row)
	if err != nil {
		return nil, s.mapError(err)
	}
	return u, nil
}

// UpsertUserByPhone creates the user on first login and is a no-op update on
// every later one, returning the surviving row either way.
func (s *DB) UpsertUserByPhone(ctx context.Context, id int64, phone string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "UpsertUserByPhone")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `
		INSERT INTO users (id, phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		ON CONFLICT (phone) DO UPDATE SET updated_at = now()
		RETURNING `+userColumns,
		id, phone, entity.UserStatusActive)

	u, err := scanUser(row)
	if err != nil {
		return nil, s.mapError(err)
	}
	return u, nil
}

// UpsertUserByEmail mirrors UpsertUserByPhone for email identifiers.
func (s *DB) UpsertUserByEmail(ctx context.Context, id int64, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "UpsertUserByEmail")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `
		INSERT INTO users (id, email, status, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING `+userColumns,
		id, email, entity.UserStatusActive)

	u, err := scanUser(row)
	if err != nil {
		return nil, s.mapError(err)
	}
	return u, nil
}

// SaveUserTOTPSecret persists the encrypted authenticator secret. A nil
// secret clears the enrollment.
func (s *DB) SaveUserTOTPSecret(ctx context.Context, userID int64, secret []byte) (err error) {
	ctx, span := s.startSpan(ctx, "SaveUserTOTPSecret")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE users SET totp_secret = $1, updated_at = now() WHERE id = $2`,
		secret, userID)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
