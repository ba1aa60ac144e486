package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
	"github.com/shandysiswandi/gotp/internal/pkg/idempotency"
)

type CallbackInput struct {
	Provider string `validate:"required,oneof=google github"`
	State    string `validate:"required,max=128"`
	Code     string `validate:"required,max=512"`
}

type CallbackOutput struct {
	AccessToken string
	UserID      int64
}

// Callback completes the OAuth2 flow: it validates the state, exchanges the
// authorization code, resolves the provider profile to a local user, and
// issues an access token. The code exchange is guarded so a replayed
// callback cannot redeem the same code twice.
func (s *Usecase) Callback(ctx context.Context, in CallbackInput) (*CallbackOutput, error) {
	ctx, span := s.startSpan(ctx, "Callback")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	p, ok := s.providers[in.Provider]
	if !ok {
		return nil, goerror.NewBusiness("unknown social provider", goerror.CodeNotFound)
	}

	provider, err := s.repoCache.TakeState(ctx, in.State)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("invalid or expired authorization state", goerror.CodeUnauthorized)
		}

		slog.ErrorContext(ctx, "failed to take authorization state", "provider", in.Provider, "error", err)
		return nil, goerror.NewServer(err)
	}
	if provider != p.ID() {
		return nil, goerror.NewBusiness("invalid or expired authorization state", goerror.CodeUnauthorized)
	}

	var out *CallbackOutput
	digest := sha256.Sum256([]byte(in.Code))
	key := "social:code:" + hex.EncodeToString(digest[:])
	err = s.idemp.Do(ctx, key, func(ctx context.Context) error {
		res, exErr := s.exchange(ctx, p, in.Code)
		out = res
		return exErr
	})
	if err != nil {
		if errors.Is(err, idempotency.ErrCompleted) || errors.Is(err, idempotency.ErrInProgress) {
			return nil, goerror.NewBusiness("this login was already processed", goerror.CodeConflict)
		}

		var gerr *goerror.Error
		if errors.As(err, &gerr) {
			return nil, err
		}

		slog.ErrorContext(ctx, "failed to complete social login", "provider", in.Provider, "error", err)
		return nil, goerror.NewServer(err)
	}

	return out, nil
}

func (s *Usecase) exchange(ctx context.Context, p *Provider, code string) (*CallbackOutput, error) {
	token, err := p.Exchange(ctx, code)
	if err != nil {
		slog.WarnContext(ctx, "authorization code exchange failed", "provider", p.ID(), "error", err)
		return nil, goerror.NewBusiness("authorization code was rejected by the provider",
			goerror.CodeUnauthorized)
	}

	profile, err := p.FetchProfile(ctx, token)
	if err != nil {
		return nil, err
	}
	if profile.Email == "" {
		return nil, goerror.NewBusiness("the provider account has no verified email address",
			goerror.CodeInvalidInput)
	}

	user, err := s.repoDB.UpsertUserByEmail(ctx, s.uid.Generate(), profile.Email)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	s.cacheToken(ctx, user.ID, p.ID(), token)

	loginAt := s.clock.Now()
	s.goroutine.Go(ctx, func(ctx context.Context) error {
		return s.repoMsg.PublishUserLogin(ctx, UserLoginEvent{
			UserID:     user.ID,
			Identifier: user.Email,
			Method:     "social:" + p.ID(),
			LoginAt:    loginAt,
		})
	})

	return &CallbackOutput{AccessToken: accessToken, UserID: user.ID}, nil
}

// cacheToken keeps the provider token around for later profile syncs.
// Failures are logged and otherwise ignored; the login already succeeded.
func (s *Usecase) cacheToken(ctx context.Context, userID int64, provider string, token any) {
	raw, err := json.Marshal(token)
	if err != nil {
		return
	}

	ttl := s.cfg.GetHour("modules.social.token_cache_ttl_hours")
	if err := s.repoCache.SaveProviderToken(ctx, userID, provider, raw, ttl); err != nil {
		slog.WarnContext(ctx, "failed to cache provider token", "provider", provider, "error", err)
	}
}
