package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gotp/internal/otp/entity"
	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
	"github.com/shandysiswandi/gotp/internal/pkg/mfa"
)

type VerifyCodeInput struct {
	Identifier string `validate:"required,max=254"`
	Code       string `validate:"required,otpcode"`
}

type VerifyCodeOutput struct {
	AccessToken string
	UserID      int64
}

func (s *Usecase) VerifyCode(ctx context.Context, in VerifyCodeInput) (*VerifyCodeOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyCode")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	ident := entity.Classify(in.Identifier)
	if !ident.IsValid() {
		return nil, goerror.NewBusiness("identifier must be a valid email address or Iranian mobile number",
			goerror.CodeInvalidInput)
	}

	ok, err := s.engine.Verify(ctx, ident.Value, in.Code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to verify code", "kind", ident.Kind, "error", err)
		return nil, goerror.NewServer(err)
	}

	method := entity.LoginMethodOTP
	if !ok {
		// A wrong or expired one-time code can still be a valid
		// authenticator-app code when the user enrolled one.
		if !s.verifyEnrolledTOTP(ctx, ident, in.Code) {
			return nil, goerror.NewBusiness("invalid or expired code", goerror.CodeUnauthorized)
		}
		method = entity.LoginMethodTOTP
	}

	user, err := s.findOrCreateUser(ctx, ident)
	if err != nil {
		slog.ErrorContext(ctx, "failed to find or create user", "kind", ident.Kind, "error", err)
		return nil, goerror.NewServer(err)
	}

	if user.Status == entity.UserStatusBanned {
		slog.WarnContext(ctx, "banned user attempted login", "user_id", user.ID)
		return nil, goerror.NewBusiness("account is banned", goerror.CodeForbidden)
	}

	token, err := s.jwt.Generate(user.ID, ident.Value)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	loginAt := s.clock.Now()
	s.goroutine.Go(ctx, func(ctx context.Context) error {
		return s.repoMsg.PublishUserLogin(ctx, UserLoginEvent{
			UserID:     user.ID,
			Identifier: ident.Value,
			Method:     method.String(),
			LoginAt:    loginAt,
		})
	})

	return &VerifyCodeOutput{AccessToken: token, UserID: user.ID}, nil
}

func (s *Usecase) verifyEnrolledTOTP(ctx context.Context, ident entity.Identifier, code string) bool {
	user, err := s.getUserByIdentifier(ctx, ident)
	if errors.Is(err, goerror.ErrNotFound) {
		return false
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to load user for authenticator check", "kind", ident.Kind, "error", err)
		return false
	}
	if !user.HasTOTP() {
		return false
	}

	secret, err := s.mfaEncryptor.Decrypt(user.TOTPSecret, mfa.Scope{UserID: user.ID, Purpose: mfa.PurposeOTPSeed})
	if err != nil {
		slog.ErrorContext(ctx, "failed to decrypt authenticator secret", "user_id", user.ID, "error", err)
		return false
	}

	return s.totp.Validate(code, string(secret), s.clock.Now())
}

func (s *Usecase) getUserByIdentifier(ctx context.Context, ident entity.Identifier) (*entity.User, error) {
	if ident.Kind == entity.IdentifierPhone {
		return s.repoDB.GetUserByPhone(ctx, ident.Value)
	}
	return s.repoDB.GetUserByEmail(ctx, ident.Value)
}

func (s *Usecase) findOrCreateUser(ctx context.Context, ident entity.Identifier) (*entity.User, error) {
	if ident.Kind == entity.IdentifierPhone {
		return s.repoDB.UpsertUserByPhone(ctx, s.uid.Generate(), ident.Value)
	}
	return s.repoDB.UpsertUserByEmail(ctx, s.uid.Generate(), ident.Value)
}
