package mq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/gotp/internal/pkg/instrument"
	"github.com/shandysiswandi/gotp/internal/pkg/messaging"
	"github.com/shandysiswandi/gotp/internal/shared/event"
	"github.com/shandysiswandi/gotp/internal/social/usecase"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) publish(ctx context.Context, destination string, body []byte, key string) error {
	b := retry.WithMaxRetries(3, retry.NewFibonacci(200*time.Millisecond))

	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := m.client.Publish(ctx, destination, messaging.Event{
			Body: body,
			Key:  key,
			Attributes: map[string]string{
				keyOfCorrelationID: instrument.GetCorrelationID(ctx),
			},
		})
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (m *Messaging) PublishUserLogin(ctx context.Context, msg usecase.UserLoginEvent) error {
	ctx, span := m.ins.Tracer("social.outbound.mq").Start(ctx, "PublishUserLogin")
	defer span.End()

	body, err := json.Marshal(event.UserLoginMessage{
		UserID:     msg.UserID,
		Identifier: msg.Identifier,
		Method:     msg.Method,
		LoginAt:    msg.LoginAt.Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := m.publish(ctx, event.UserLoginDestination, body, msg.Identifier); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
