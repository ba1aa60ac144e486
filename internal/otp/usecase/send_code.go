package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gotp/internal/otp/entity"
	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
	"github.com/shandysiswandi/gotp/internal/pkg/mail"
)

type SendCodeInput struct {
	Identifier string `validate:"required,max=254"`
}

type SendCodeOutput struct {
	Channel string
}

func (s *Usecase) SendCode(ctx context.Context, in SendCodeInput) (*SendCodeOutput, error) {
	ctx, span := s.startSpan(ctx, "SendCode")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	ident := entity.Classify(in.Identifier)
	if !ident.IsValid() {
		return nil, goerror.NewBusiness("identifier must be a valid email address or Iranian mobile number",
			goerror.CodeInvalidInput)
	}

	hot, err := s.engine.OnCooldown(ctx, ident.Value)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check resend cooldown", "kind", ident.Kind, "error", err)
		return nil, goerror.NewServer(err)
	}
	if hot {
		return nil, goerror.NewBusiness("a code was sent recently, wait before requesting another",
			goerror.CodeTooManyRequest)
	}

	code, err := s.engine.Issue(ctx, ident.Value)
	if err != nil {
		slog.ErrorContext(ctx, "failed to issue code", "kind", ident.Kind, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.dispatch(ctx, ident, code); err != nil {
		// The stored code is unreachable by the user now; revoke it so a
		// later resend is not blocked by the cooldown.
		if delErr := s.engine.Invalidate(ctx, ident.Value); delErr != nil {
			slog.ErrorContext(ctx, "failed to revoke undelivered code", "kind", ident.Kind, "error", delErr)
		}

		slog.ErrorContext(ctx, "failed to dispatch code", "kind", ident.Kind, "error", err)
		return nil, goerror.NewServer(err)
	}

	primary, _ := s.gateways.ActiveIDs()
	sentAt := s.clock.Now()
	s.goroutine.Go(ctx, func(ctx context.Context) error {
		gw := ""
		if ident.Kind == entity.IdentifierPhone {
			gw = primary
		}
		return s.repoMsg.PublishOTPSent(ctx, OTPSentEvent{
			Identifier: ident.Value,
			Channel:    ident.Kind.String(),
			Gateway:    gw,
			SentAt:     sentAt,
		})
	})

	return &SendCodeOutput{Channel: ident.Kind.String()}, nil
}

func (s *Usecase) dispatch(ctx context.Context, ident entity.Identifier, code string) error {
	if ident.Kind == entity.IdentifierPhone {
		return s.gateways.SendOTP(ctx, ident.Value, code)
	}

	return s.mailer.Send(ctx, mail.Message{
		To:       []string{ident.Value},
		Subject:  "Your verification code",
		TextBody: s.gateways.RenderMessage(code),
	})
}
