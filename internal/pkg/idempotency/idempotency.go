// Package idempotency guards side-effecting operations against duplicate
// execution, backed by redis SETNX locks with a bounded lease.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrInProgress means another caller holds the lock for this key.
	ErrInProgress = errors.New("idempotency: operation already in progress")
	// ErrCompleted means the operation already ran to completion.
	ErrCompleted = errors.New("idempotency: operation already completed")
	// ErrFailed means a previous run of the operation failed.
	ErrFailed = errors.New("idempotency: operation previously failed")
	// ErrInvalidState means the stored marker holds an unexpected value.
	ErrInvalidState = errors.New("idempotency: invalid state")
)

// State describes the stored outcome of a keyed operation.
type State string

const (
	// StateNone means the caller acquired the lock and may proceed.
	StateNone State = "none"
	// StateInProgress means another caller holds the lock.
	StateInProgress State = "in_progress"
	// StateCompleted means the operation finished successfully.
	StateCompleted State = "completed"
	// StateFailed means the previous attempt failed.
	StateFailed State = "failed"
	// StateError means the state could not be determined.
	StateError State = "error"
)

func (s State) String() string { return string(s) }

// Guard runs keyed operations at most once within a state TTL.
type Guard interface {
	// Do runs fn unless the key was already claimed; duplicates get
	// ErrInProgress, ErrCompleted or ErrFailed.
	Do(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error
}

const (
	defaultLockDuration = time.Minute
	defaultStateTTL     = 10 * time.Minute
)

// Option tunes a single Do call.
type Option func(*doOptions)

type doOptions struct {
	lockDuration time.Duration
	stateTTL     time.Duration
}

// WithLockDuration bounds how long the in-progress lock is held before it
// expires on its own.
func WithLockDuration(d time.Duration) Option {
	return func(o *doOptions) {
		o.lockDuration = d
	}
}

// WithStateTTL sets how long the completed or failed marker is remembered.
func WithStateTTL(d time.Duration) Option {
	return func(o *doOptions) {
		o.stateTTL = d
	}
}

// RedisGuard is the redis-backed Guard.
type RedisGuard struct {
	client *redis.Client
	prefix string
}

// New returns a Guard storing markers under the given key prefix.
func New(client *redis.Client, prefix string) *RedisGuard {
	if prefix == "" {
		prefix = "gotp:idemp:"
	}
	return &RedisGuard{client: client, prefix: prefix}
}

// acquire claims the key or reports its current state.
func (g *RedisGuard) acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error) {
	fk := g.prefix + key

	acquired, err := g.client.SetNX(ctx, fk, StateInProgress.String(), lockDuration).Result()
	if err != nil {
		return StateError, err
	}
	if acquired {
		return StateNone, nil
	}

	result, err := g.client.Get(ctx, fk).Result()
	if errors.Is(err, redis.Nil) {
		// The marker expired between SetNX and Get; try to claim again.
		acquired, err = g.client.SetNX(ctx, fk, StateInProgress.String(), lockDuration).Result()
		if err != nil {
			return StateError, err
		}
		if acquired {
			return StateNone, nil
		}
		return StateError, ErrInvalidState
	}
	if err != nil {
		return StateError, err
	}

	switch State(result) {
	case StateInProgress, StateCompleted, StateFailed:
		return State(result), nil
	default:
		return StateError, ErrInvalidState
	}
}

// Do implements Guard.
func (g *RedisGuard) Do(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error {
	do := &doOptions{lockDuration: defaultLockDuration, stateTTL: defaultStateTTL}
	for _, opt := range opts {
		opt(do)
	}
	if do.lockDuration <= 0 {
		do.lockDuration = defaultLockDuration
	}
	if do.stateTTL <= 0 {
		do.stateTTL = defaultStateTTL
	}

	state, err := g.acquire(ctx, key, do.lockDuration)
	if err != nil {
		return err
	}

	switch state {
	case StateInProgress:
		return ErrInProgress
	case StateCompleted:
		return ErrCompleted
	case StateFailed:
		return ErrFailed
	}

	fk := g.prefix + key
	if err := fn(ctx); err != nil {
		if markErr := g.client.Set(ctx, fk, StateFailed.String(), do.stateTTL).Err(); markErr != nil {
			return errors.Join(err, markErr)
		}
		return err
	}

	return g.client.Set(ctx, fk, StateCompleted.String(), do.stateTTL).Err()
}
