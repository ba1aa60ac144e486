package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/gotp/internal/otp/entity"
	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
	"github.com/shandysiswandi/gotp/internal/pkg/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

// fakeCodes returns codes from a fixed sequence.
type fakeCodes struct {
	codes []string
	next  int
}

func (f *fakeCodes) Generate() string {
	code := f.codes[f.next%len(f.codes)]
	f.next++
	return code
}

// memCache is an in-memory repoCache honoring TTLs against the fake clock.
type memCache struct {
	clk     *fakeClock
	rec     map[string]entity.OTPRecord
	exp     map[string]time.Time
	pending map[int64][]byte
}

func newMemCache(clk *fakeClock) *memCache {
	return &memCache{
		clk:     clk,
		rec:     make(map[string]entity.OTPRecord),
		exp:     make(map[string]time.Time),
		pending: make(map[int64][]byte),
	}
}

func (m *memCache) SaveOTP(_ context.Context, identifier string, rec entity.OTPRecord, ttl time.Duration) error {
	m.rec[identifier] = rec
	m.exp[identifier] = m.clk.Now().Add(ttl)
	return nil
}

func (m *memCache) GetOTP(_ context.Context, identifier string) (*entity.OTPRecord, error) {
	rec, ok := m.rec[identifier]
	if !ok || m.clk.Now().After(m.exp[identifier]) {
		return nil, goerror.ErrNotFound
	}
	return &rec, nil
}

func (m *memCache) DeleteOTP(_ context.Context, identifier string) error {
	delete(m.rec, identifier)
	delete(m.exp, identifier)
	return nil
}

func (m *memCache) DeleteOTPIfMatch(_ context.Context, identifier string, rec entity.OTPRecord) (bool, error) {
	cur, ok := m.rec[identifier]
	if !ok || m.clk.Now().After(m.exp[identifier]) || cur != rec {
		return false, nil
	}
	delete(m.rec, identifier)
	delete(m.exp, identifier)
	return true, nil
}

func (m *memCache) SavePendingTOTP(_ context.Context, userID int64, secret []byte, _ time.Duration) error {
	m.pending[userID] = secret
	return nil
}

func (m *memCache) GetPendingTOTP(_ context.Context, userID int64) ([]byte, error) {
	secret, ok := m.pending[userID]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return secret, nil
}

func (m *memCache) DeletePendingTOTP(_ context.Context, userID int64) error {
	delete(m.pending, userID)
	return nil
}

func newTestEngine(clk *fakeClock, codes []string) (*Engine, *memCache) {
	cache := newMemCache(clk)
	hmac := hash.NewHMACSHA256("engine-test-secret")
	gen := &fakeCodes{codes: codes}

	return NewEngine(cache, hmac, gen, clk, 5*time.Minute, time.Minute), cache
}

func TestEngineIssueAndVerify(t *testing.T) {
	t.Run("VerifyConsumesCode", func(t *testing.T) {
		// Arrange
		clk := &fakeClock{now: time.Unix(1_700_000_000, 0)}
		eng, _ := newTestEngine(clk, []string{"123456"})
		ctx := context.Background()

		code, err := eng.Issue(ctx, "+989123456789")
		require.NoError(t, err)
		require.Equal(t, "123456", code)

		// Act
		ok, err := eng.Verify(ctx, "+989123456789", code)
		again, errAgain := eng.Verify(ctx, "+989123456789", code)

		// Assert
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, errAgain)
		assert.False(t, again, "a consumed code must not verify twice")
	})

	t.Run("WrongCodeKeepsRecordAlive", func(t *testing.T) {
		// Arrange
		clk := &fakeClock{now: time.Unix(1_700_000_000, 0)}
		eng, _ := newTestEngine(clk, []string{"123456"})
		ctx := context.Background()

		_, err := eng.Issue(ctx, "user@example.com")
		require.NoError(t, err)

		// Act
		wrong, err := eng.Verify(ctx, "user@example.com", "000000")
		right, errRight := eng.Verify(ctx, "user@example.com", "123456")

		// Assert
		assert.NoError(t, err)
		assert.False(t, wrong)
		assert.NoError(t, errRight)
		assert.True(t, right, "a failed attempt must not burn the live code")
	})

	t.Run("ReissueInvalidatesPreviousCode", func(t *testing.T) {
		// Arrange
		clk := &fakeClock{now: time.Unix(1_700_000_000, 0)}
		eng, _ := newTestEngine(clk, []string{"111111", "222222"})
		ctx := context.Background()

		first, err := eng.Issue(ctx, "+989123456789")
		require.NoError(t, err)
		clk.Advance(2 * time.Minute)
		second, err := eng.Issue(ctx, "+989123456789")
		require.NoError(t, err)

		// Act
		okOld, err := eng.Verify(ctx, "+989123456789", first)
		okNew, errNew := eng.Verify(ctx, "+989123456789", second)

		// Assert
		assert.NoError(t, err)
		assert.False(t, okOld, "replaced code must stop verifying")
		assert.NoError(t, errNew)
		assert.True(t, okNew)
	})

	t.Run("ExpiredCodeFails", func(t *testing.T) {
		// Arrange
		clk := &fakeClock{now: time.Unix(1_700_000_000, 0)}
		eng, _ := newTestEngine(clk, []string{"123456"})
		ctx := context.Background()

		code, err := eng.Issue(ctx, "+989123456789")
		require.NoError(t, err)

		// Act
		clk.Advance(5*time.Minute + time.Second)
		ok, err := eng.Verify(ctx, "+989123456789", code)

		// Assert
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("UnknownIdentifierFails", func(t *testing.T) {
		// Arrange
		clk := &fakeClock{now: time.Unix(1_700_000_000, 0)}
		eng, _ := newTestEngine(clk, []string{"123456"})

		// Act
		ok, err := eng.Verify(context.Background(), "+989999999999", "123456")

		// Assert
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestEngineCooldown(t *testing.T) {
	t.Run("HotInsideWindow", func(t *testing.T) {
		// Arrange
		clk := &fakeClock{now: time.Unix(1_700_000_000, 0)}
		eng, _ := newTestEngine(clk, []string{"123456"})
		ctx := context.Background()

		_, err := eng.Issue(ctx, "+989123456789")
		require.NoError(t, err)

		// Act
		clk.Advance(30 * time.Second)
		hot, err := eng.OnCooldown(ctx, "+989123456789")

		// Assert
		assert.NoError(t, err)
		assert.True(t, hot)
	})

	t.Run("ColdAfterWindow", func(t *testing.T) {
		// Arrange
		clk := &fakeClock{now: time.Unix(1_700_000_000, 0)}
		eng, _ := newTestEngine(clk, []string{"123456"})
		ctx := context.Background()

		_, err := eng.Issue(ctx, "+989123456789")
		require.NoError(t, err)

		// Act
		clk.Advance(61 * time.Second)
		hot, err := eng.OnCooldown(ctx, "+989123456789")

		// Assert
		assert.NoError(t, err)
		assert.False(t, hot)
	})

	t.Run("ColdWhenNothingIssued", func(t *testing.T) {
		// Arrange
		clk := &fakeClock{now: time.Unix(1_700_000_000, 0)}
		eng, _ := newTestEngine(clk, []string{"123456"})

		// Act
		hot, err := eng.OnCooldown(context.Background(), "+989123456789")

		// Assert
		assert.NoError(t, err)
		assert.False(t, hot)
	})

	t.Run("InvalidateClearsCooldown", func(t *testing.T) {
		// Arrange
		clk := &fakeClock{now: time.Unix(1_700_000_000, 0)}
		eng, _ := newTestEngine(clk, []string{"123456"})
		ctx := context.Background()

		_, err := eng.Issue(ctx, "+989123456789")
		require.NoError(t, err)

		// Act
		require.NoError(t, eng.Invalidate(ctx, "+989123456789"))
		hot, err := eng.OnCooldown(ctx, "+989123456789")

		// Assert
		assert.NoError(t, err)
		assert.False(t, hot)
	})
}
