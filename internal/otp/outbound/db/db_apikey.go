package db

import (
	"context"

	"github.com/shandysiswandi/gotp/internal/otp/entity"
)

func (s *DB) GetAPIKeyByPublicKey(ctx context.Context, publicKey string) (_ *entity.APIKey, err error) {
	ctx, span := s.startSpan(ctx, "GetAPIKeyByPublicKey")
	defer func() { s.endSpan(span, err) }()

	var key entity.APIKey
	err = s.conn.QueryRow(ctx, `
		SELECT id, public_key, secret_hash, status, last_used_at, created_at
		FROM api_keys WHERE public_key = $1`, publicKey).
		Scan(&key.ID, &key.PublicKey, &key.SecretHash, &key.Status, &key.LastUsedAt, &key.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &key, nil
}

// TouchAPIKeyLastUsed records key usage; a miss is not an error because the
// key was already authenticated.
func (s *DB) TouchAPIKeyLastUsed(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "TouchAPIKeyLastUsed")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `UPDATE api_keys SET last_used_at = now() WHERE id = $1`, id)
	return s.mapError(err)
}
