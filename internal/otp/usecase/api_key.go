package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/gotp/internal/otp/entity"
	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
)

// AuthenticateAPIKey checks a raw "publicKey:secret" credential against the
// api_keys table. Each distinct failure logs its cause but callers only see
// one unauthorized error, so keys cannot be enumerated.
func (s *Usecase) AuthenticateAPIKey(ctx context.Context, raw string) error {
	ctx, span := s.startSpan(ctx, "AuthenticateAPIKey")
	defer span.End()

	unauthorized := goerror.NewBusiness("invalid API key", goerror.CodeUnauthorized)

	publicKey, secret, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok || publicKey == "" || secret == "" {
		return unauthorized
	}

	key, err := s.repoDB.GetAPIKeyByPublicKey(ctx, publicKey)
	if errors.Is(err, goerror.ErrNotFound) {
		return unauthorized
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to load api key", "error", err)
		return goerror.NewServer(err)
	}

	if key.Status != entity.APIKeyStatusActive {
		slog.WarnContext(ctx, "rejected api key", "key_id", key.ID, "status", key.Status.String())
		return unauthorized
	}

	if !s.argon2id.Verify(key.SecretHash, secret) {
		slog.WarnContext(ctx, "api key secret mismatch", "key_id", key.ID)
		return unauthorized
	}

	s.goroutine.Go(ctx, func(ctx context.Context) error {
		return s.repoDB.TouchAPIKeyLastUsed(ctx, key.ID)
	})

	return nil
}
