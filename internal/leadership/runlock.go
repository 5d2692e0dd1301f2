/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package leadership guards a generate run with a Redis lease so that two
// runs never replace the schedule concurrently.
package leadership

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/friendsincode/grimnir_planner/internal/telemetry"
)

const (
	defaultLockKey = "grimnir:planner:run"

	// The lease outlives a stuck process by at most this long.
	defaultLeaseDuration = 2 * time.Minute

	defaultRenewalInterval = 30 * time.Second
)

var (
	// ErrLockHeld is returned by Acquire when another instance holds the lock.
	ErrLockHeld = errors.New("run lock held by another instance")

	// ErrLockLost is the cancellation cause of a run whose lease expired or
	// was taken over before it finished.
	ErrLockLost = errors.New("run lock lost")
)

var (
	renewScript = redis.NewScript(`
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("pexpire", KEYS[1], ARGV[2])
		else
			return 0
		end
	`)
	releaseScript = redis.NewScript(`
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("del", KEYS[1])
		else
			return 0
		end
	`)
)

// LockConfig configures the run lock.
type LockConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Key is the Redis key holding the current owner.
	Key string

	// LeaseDuration bounds how long a crashed holder blocks other runs.
	LeaseDuration time.Duration

	// RenewalInterval is how often a holder extends its lease.
	RenewalInterval time.Duration

	// InstanceID identifies this process as lock owner.
	InstanceID string
}

func (c LockConfig) withDefaults() LockConfig {
	if c.Key == "" {
		c.Key = defaultLockKey
	}
	if c.LeaseDuration <= 0 {
		c.LeaseDuration = defaultLeaseDuration
	}
	if c.RenewalInterval <= 0 || c.RenewalInterval >= c.LeaseDuration {
		c.RenewalInterval = c.LeaseDuration / 3
	}
	if c.InstanceID == "" {
		c.InstanceID = uuid.NewString()
	}
	return c
}

// RunLock is a single-holder Redis lease.
type RunLock struct {
	client *redis.Client
	config LockConfig
	logger zerolog.Logger
}

// NewRunLock connects to Redis and returns a lock.
func NewRunLock(ctx context.Context, config LockConfig, logger zerolog.Logger) (*RunLock, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})
	if err := redisotel.InstrumentTracing(client); err != nil {
		logger.Warn().Err(err).Msg("redis tracing instrumentation failed")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRunLockWithClient(client, config, logger), nil
}

// NewRunLockWithClient wraps an existing client.
func NewRunLockWithClient(client *redis.Client, config LockConfig, logger zerolog.Logger) *RunLock {
	config = config.withDefaults()
	return &RunLock{
		client: client,
		config: config,
		logger: logger.With().Str("component", "run_lock").Str("instance_id", config.InstanceID).Logger(),
	}
}

// Acquire takes the lock or fails with ErrLockHeld. While held, the lease is
// renewed in the background. The returned context is cancelled with
// ErrLockLost if renewal finds another owner; the release func stops renewal
// and deletes the key if this instance still owns it.
func (l *RunLock) Acquire(ctx context.Context) (context.Context, func(context.Context) error, error) {
	ok, err := l.client.SetNX(ctx, l.config.Key, l.config.InstanceID, l.config.LeaseDuration).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("set lock: %w", err)
	}
	if !ok {
		holder, _ := l.Holder(ctx)
		return nil, nil, fmt.Errorf("%w (holder %s)", ErrLockHeld, holder)
	}

	telemetry.LockStatus.Set(1)
	l.logger.Info().Str("key", l.config.Key).Dur("lease", l.config.LeaseDuration).Msg("run lock acquired")

	runCtx, cancelRun := context.WithCancelCause(ctx)
	renewCtx, stop := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	go func() {
		defer close(done)
		l.renewLoop(renewCtx, cancelRun)
	}()

	release := func(ctx context.Context) error {
		stop()
		<-done
		cancelRun(nil)
		telemetry.LockStatus.Set(0)
		if err := releaseScript.Run(ctx, l.client, []string{l.config.Key}, l.config.InstanceID).Err(); err != nil {
			return fmt.Errorf("release lock: %w", err)
		}
		l.logger.Info().Msg("run lock released")
		return nil
	}
	return runCtx, release, nil
}

func (l *RunLock) renewLoop(ctx context.Context, lost context.CancelCauseFunc) {
	ticker := time.NewTicker(l.config.RenewalInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := renewScript.Run(ctx, l.client, []string{l.config.Key},
				l.config.InstanceID, l.config.LeaseDuration.Milliseconds()).Int()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error().Err(err).Msg("failed to renew run lock")
				continue
			}
			if n == 0 {
				l.logger.Warn().Msg("run lock lost before the run finished, cancelling run")
				telemetry.LockStatus.Set(0)
				lost(ErrLockLost)
				return
			}
		}
	}
}

// Holder returns the instance currently holding the lock, or "" when free.
func (l *RunLock) Holder(ctx context.Context) (string, error) {
	id, err := l.client.Get(ctx, l.config.Key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get lock holder: %w", err)
	}
	return id, nil
}

// Close closes the Redis connection.
func (l *RunLock) Close() error {
	return l.client.Close()
}
