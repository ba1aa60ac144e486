package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shandysiswandi/gotp/internal/otp/entity"
	"github.com/shandysiswandi/gotp/internal/pkg/clock"
	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
	"github.com/shandysiswandi/gotp/internal/pkg/hash"
	"github.com/shandysiswandi/gotp/internal/pkg/otpcode"
)

const (
	// DefaultTTL is how long an issued code stays verifiable.
	DefaultTTL = 5 * time.Minute
	// DefaultCooldown is the minimum gap between two sends to one identifier.
	DefaultCooldown = 60 * time.Second
)

// Engine owns the one-time-code lifecycle: issue, cooldown, verify, revoke.
// Codes are stored keyed-hashed with a TTL; verification is constant time and
// single use.
type Engine struct {
	cache    repoCache
	hmac     hash.Hash
	codes    otpcode.Generator
	clock    clock.Clocker
	ttl      time.Duration
	cooldown time.Duration
}

func NewEngine(cache repoCache, hmac hash.Hash, codes otpcode.Generator, clk clock.Clocker, ttl, cooldown time.Duration) *Engine {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}

	return &Engine{
		cache:    cache,
		hmac:     hmac,
		codes:    codes,
		clock:    clk,
		ttl:      ttl,
		cooldown: cooldown,
	}
}

// Issue generates a fresh code and stores its hash, replacing any live code
// for the identifier. The plaintext exists only in the returned value.
func (e *Engine) Issue(ctx context.Context, identifier string) (string, error) {
	code := e.codes.Generate()

	codeHash, err := e.hmac.Hash(code)
	if err != nil {
		return "", fmt.Errorf("otp engine: hash code: %w", err)
	}

	rec := entity.OTPRecord{
		CodeHash:  string(codeHash),
		CreatedAt: e.clock.Now().Unix(),
	}
	if err := e.cache.SaveOTP(ctx, identifier, rec, e.ttl); err != nil {
		return "", fmt.Errorf("otp engine: store record: %w", err)
	}

	return code, nil
}

// OnCooldown reports whether a code was issued to the identifier within the
// cooldown window.
func (e *Engine) OnCooldown(ctx context.Context, identifier string) (bool, error) {
	rec, err := e.cache.GetOTP(ctx, identifier)
	if errors.Is(err, goerror.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("otp engine: read record: %w", err)
	}

	issuedAt := time.Unix(rec.CreatedAt, 0)
	return e.clock.Now().Sub(issuedAt) < e.cooldown, nil
}

// Verify checks the submitted code. Absent and expired records are
// indistinguishable and both report false. On a match the record is removed
// atomically, so of two racing submissions of the same code exactly one
// succeeds; on a mismatch the record stays until its TTL.
func (e *Engine) Verify(ctx context.Context, identifier, code string) (bool, error) {
	rec, err := e.cache.GetOTP(ctx, identifier)
	if errors.Is(err, goerror.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("otp engine: read record: %w", err)
	}

	if !e.hmac.Verify(rec.CodeHash, code) {
		return false, nil
	}

	deleted, err := e.cache.DeleteOTPIfMatch(ctx, identifier, *rec)
	if err != nil {
		return false, fmt.Errorf("otp engine: consume record: %w", err)
	}

	return deleted, nil
}

// Invalidate removes the live code, compensating a failed dispatch.
func (e *Engine) Invalidate(ctx context.Context, identifier string) error {
	return e.cache.DeleteOTP(ctx, identifier)
}
