package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gotp/internal/otp/entity"
	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
	"github.com/shandysiswandi/gotp/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	otpKeyPrefix         = "gotp:otp:"
	totpPendingKeyPrefix = "gotp:totp:pending:"
)

// deleteIfMatch removes the key only when it still holds the exact value the
// caller read, so a double-submit race admits exactly one success.
var deleteIfMatch = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Cache struct {
	client *redis.Client
	ins    instrument.Instrumentation
}

func NewCache(client *redis.Client, ins instrument.Instrumentation) *Cache {
	return &Cache{client: client, ins: ins}
}

func (c *Cache) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("otp.outbound.cache").Start(ctx, name)
}

func (c *Cache) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// otpKey derives the record key from the identifier digest, so raw emails and
// phone numbers never appear in redis.
func otpKey(identifier string) string {
	sum := sha256.Sum256([]byte(identifier))
	return otpKeyPrefix + hex.EncodeToString(sum[:])
}

// SaveOTP stores the record under the identifier with the given TTL,
// replacing any live record.
func (c *Cache) SaveOTP(ctx context.Context, identifier string, rec entity.OTPRecord, ttl time.Duration) (err error) {
	ctx, span := c.startSpan(ctx, "SaveOTP")
	defer func() { c.endSpan(span, err) }()

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("cache: encode otp record: %w", err)
	}

	err = c.client.Set(ctx, otpKey(identifier), raw, ttl).Err()
	return err
}

// GetOTP fetches the live record; absent and expired are indistinguishable
// and both surface as goerror.ErrNotFound.
func (c *Cache) GetOTP(ctx context.Context, identifier string) (_ *entity.OTPRecord, err error) {
	ctx, span := c.startSpan(ctx, "GetOTP")
	defer func() { c.endSpan(span, err) }()

	raw, err := c.client.Get(ctx, otpKey(identifier)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec entity.OTPRecord
	if err = json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("cache: decode otp record: %w", err)
	}

	return &rec, nil
}

// DeleteOTP unconditionally invalidates the record, used to compensate when
// dispatch fails after a successful store.
func (c *Cache) DeleteOTP(ctx context.Context, identifier string) (err error) {
	ctx, span := c.startSpan(ctx, "DeleteOTP")
	defer func() { c.endSpan(span, err) }()

	err = c.client.Del(ctx, otpKey(identifier)).Err()
	return err
}

// DeleteOTPIfMatch atomically removes the record when it still equals rec.
// It reports false when the record changed or expired in the meantime.
func (c *Cache) DeleteOTPIfMatch(ctx context.Context, identifier string, rec entity.OTPRecord) (_ bool, err error) {
	ctx, span := c.startSpan(ctx, "DeleteOTPIfMatch")
	defer func() { c.endSpan(span, err) }()

	raw, err := json.Marshal(rec)
	if err != nil {
		return false, fmt.Errorf("cache: encode otp record: %w", err)
	}

	n, err := deleteIfMatch.Run(ctx, c.client, []string{otpKey(identifier)}, string(raw)).Int64()
	if err != nil {
		return false, err
	}

	return n == 1, nil
}

// SavePendingTOTP stashes an encrypted authenticator secret awaiting the
// confirmation code.
func (c *Cache) SavePendingTOTP(ctx context.Context, userID int64, secret []byte, ttl time.Duration) (err error) {
	ctx, span := c.startSpan(ctx, "SavePendingTOTP")
	defer func() { c.endSpan(span, err) }()

	err = c.client.Set(ctx, totpPendingKeyPrefix+strconv.FormatInt(userID, 10), secret, ttl).Err()
	return err
}

// GetPendingTOTP returns the stashed secret or goerror.ErrNotFound.
func (c *Cache) GetPendingTOTP(ctx context.Context, userID int64) (_ []byte, err error) {
	ctx, span := c.startSpan(ctx, "GetPendingTOTP")
	defer func() { c.endSpan(span, err) }()

	raw, err := c.client.Get(ctx, totpPendingKeyPrefix+strconv.FormatInt(userID, 10)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return raw, nil
}

// DeletePendingTOTP discards the stashed secret after confirmation.
func (c *Cache) DeletePendingTOTP(ctx context.Context, userID int64) (err error) {
	ctx, span := c.startSpan(ctx, "DeletePendingTOTP")
	defer func() { c.endSpan(span, err) }()

	err = c.client.Del(ctx, totpPendingKeyPrefix+strconv.FormatInt(userID, 10)).Err()
	return err
}
