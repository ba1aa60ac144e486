package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
)

type AuthorizeInput struct {
	Provider string `validate:"required,oneof=google github"`
}

type AuthorizeOutput struct {
	URL string
}

// Authorize starts the OAuth2 authorization-code flow for the given provider.
// The returned URL carries a single-use state the callback must echo back.
func (s *Usecase) Authorize(ctx context.Context, in AuthorizeInput) (*AuthorizeOutput, error) {
	ctx, span := s.startSpan(ctx, "Authorize")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	p, ok := s.providers[in.Provider]
	if !ok {
		return nil, goerror.NewBusiness("unknown social provider", goerror.CodeNotFound)
	}

	state := s.uuid.Generate()
	ttl := s.cfg.GetMinute("modules.social.state_ttl_minutes")
	if err := s.repoCache.SaveState(ctx, state, p.ID(), ttl); err != nil {
		slog.ErrorContext(ctx, "failed to save authorization state", "provider", p.ID(), "error", err)
		return nil, goerror.NewServer(err)
	}

	return &AuthorizeOutput{URL: p.AuthURL(state)}, nil
}
