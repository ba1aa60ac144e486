package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
	"github.com/shandysiswandi/gotp/internal/pkg/jwt"
	"github.com/shandysiswandi/gotp/internal/pkg/mfa"
)

type TOTPSetupOutput struct {
	Secret string
	URI    string
}

// TOTPSetup starts authenticator enrollment for the authenticated user. The
// plaintext secret is returned exactly once; only its ciphertext is stashed
// until the user confirms with a first code.
func (s *Usecase) TOTPSetup(ctx context.Context) (*TOTPSetupOutput, error) {
	ctx, span := s.startSpan(ctx, "TOTPSetup")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	if _, err := s.repoDB.GetUserByID(ctx, clm.UserID); err != nil {
		slog.ErrorContext(ctx, "failed to load user for enrollment", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	secret, uri, err := s.totp.Generate(clm.Identifier)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate authenticator secret", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	ciphertext, err := s.mfaEncryptor.Encrypt([]byte(secret), mfa.Scope{UserID: clm.UserID, Purpose: mfa.PurposeOTPSeed})
	if err != nil {
		slog.ErrorContext(ctx, "failed to encrypt authenticator secret", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	ttl := s.cfg.GetMinute("modules.otp.totp_pending_ttl_minutes")
	if err := s.repoCache.SavePendingTOTP(ctx, clm.UserID, ciphertext, ttl); err != nil {
		slog.ErrorContext(ctx, "failed to stash pending enrollment", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &TOTPSetupOutput{Secret: secret, URI: uri}, nil
}
