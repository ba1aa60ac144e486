package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
	"github.com/shandysiswandi/gotp/internal/pkg/jwt"
	"github.com/shandysiswandi/gotp/internal/pkg/mfa"
)

type TOTPConfirmInput struct {
	Code string `validate:"required,otpcode"`
}

// TOTPConfirm completes authenticator enrollment by validating the first
// code against the stashed secret and persisting it.
func (s *Usecase) TOTPConfirm(ctx context.Context, in TOTPConfirmInput) error {
	ctx, span := s.startSpan(ctx, "TOTPConfirm")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	ciphertext, err := s.repoCache.GetPendingTOTP(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("no pending authenticator enrollment", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to load pending enrollment", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	secret, err := s.mfaEncryptor.Decrypt(ciphertext, mfa.Scope{UserID: clm.UserID, Purpose: mfa.PurposeOTPSeed})
	if err != nil {
		slog.ErrorContext(ctx, "failed to decrypt pending secret", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	if !s.totp.Validate(in.Code, string(secret), s.clock.Now()) {
		return goerror.NewBusiness("invalid authenticator code", goerror.CodeUnauthorized)
	}

	if err := s.repoDB.SaveUserTOTPSecret(ctx, clm.UserID, ciphertext); err != nil {
		slog.ErrorContext(ctx, "failed to persist authenticator secret", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoCache.DeletePendingTOTP(ctx, clm.UserID); err != nil {
		slog.WarnContext(ctx, "failed to discard pending enrollment", "user_id", clm.UserID, "error", err)
	}

	return nil
}
