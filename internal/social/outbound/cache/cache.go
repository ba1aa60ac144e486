package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
	"github.com/shandysiswandi/gotp/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	stateKeyPrefix = "gotp:social:state:"
	tokenKeyPrefix = "gotp:social:token:"
)

type Cache struct {
	client *redis.Client
	ins    instrument.Instrumentation
}

func NewCache(client *redis.Client, ins instrument.Instrumentation) *Cache {
	return &Cache{client: client, ins: ins}
}

func (c *Cache) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("social.outbound.cache").Start(ctx, name)
}

func (c *Cache) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// SaveState stores the provider id under the authorization state.
func (c *Cache) SaveState(ctx context.Context, state, provider string, ttl time.Duration) (err error) {
	ctx, span := c.startSpan(ctx, "SaveState")
	defer func() { c.endSpan(span, err) }()

	return c.client.Set(ctx, stateKeyPrefix+state, provider, ttl).Err()
}

// TakeState reads and removes the state in one round trip, so each state can
// authorize exactly one callback.
func (c *Cache) TakeState(ctx context.Context, state string) (provider string, err error) {
	ctx, span := c.startSpan(ctx, "TakeState")
	defer func() { c.endSpan(span, err) }()

	provider, err = c.client.GetDel(ctx, stateKeyPrefix+state).Result()
	if errors.Is(err, redis.Nil) {
		return "", goerror.ErrNotFound
	}

	return provider, err
}

// SaveProviderToken caches the serialized OAuth2 token of a user.
func (c *Cache) SaveProviderToken(ctx context.Context, userID int64, provider string, token []byte, ttl time.Duration) (err error) {
	ctx, span := c.startSpan(ctx, "SaveProviderToken")
	defer func() { c.endSpan(span, err) }()

	key := tokenKeyPrefix + provider + ":" + strconv.FormatInt(userID, 10)

	return c.client.Set(ctx, key, token, ttl).Err()
}
