/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package retry wraps remote store calls in a bounded exponential backoff.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/friendsincode/grimnir_planner/internal/telemetry"
)

const (
	defaultMaxAttempts = 5
	defaultBase        = time.Second
	defaultMaxDelay    = 30 * time.Second
)

// Policy decides whether and when a failed remote call is attempted again.
//
// The zero value is usable: five attempts, 1s base doubling up to 30s, no jitter,
// and only errors marked with Transient are retried.
type Policy struct {
	MaxAttempts int
	Base        time.Duration
	MaxDelay    time.Duration
	// Jitter adds up to Jitter*delay of random extra wait on each retry.
	Jitter float64

	// Retriable classifies failures. Defaults to IsTransient.
	Retriable func(error) bool

	// Sleep and Rand are replaced in tests.
	Sleep func(ctx context.Context, d time.Duration) error
	Rand  func() float64

	Logger zerolog.Logger
}

// Do runs fn until it succeeds, fails with a non-retriable error, or the attempt
// budget is spent. The error of the last attempt is returned unchanged.
func (p Policy) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	p = p.withDefaults()

	ctx, span := telemetry.StartSpan(ctx, "remote."+op)
	defer span.End()

	var err error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err = fn(ctx)
		if err == nil {
			telemetry.AddSpanAttributes(span, map[string]any{"attempts": attempt})
			return nil
		}
		if !p.Retriable(err) || attempt == p.MaxAttempts {
			telemetry.AddSpanAttributes(span, map[string]any{"attempts": attempt})
			telemetry.RecordError(span, err)
			return err
		}

		delay := p.Delay(attempt, err)
		telemetry.RemoteRetriesTotal.WithLabelValues(op).Inc()
		p.Logger.Warn().
			Err(err).
			Str("operation", op).
			Int("attempt", attempt).
			Int("max_attempts", p.MaxAttempts).
			Dur("delay", delay).
			Msg("transient remote failure, retrying")

		if serr := p.Sleep(ctx, delay); serr != nil {
			telemetry.RecordError(span, serr)
			return errors.Join(err, serr)
		}
	}
	return err
}

// Value is Do for calls that return a result.
func Value[T any](ctx context.Context, p Policy, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := p.Do(ctx, op, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

// Delay returns the wait before the attempt following attempt (1-based):
// Base*2^(attempt-1) capped at MaxDelay, plus up to Jitter of random extra.
// A RetryAfter hint replaces the exponential part.
func (p Policy) Delay(attempt int, err error) time.Duration {
	p = p.withDefaults()

	d := p.Base
	var ra RetryAfterError
	if err != nil && errors.As(err, &ra) {
		d = ra.RetryAfter()
	} else {
		for i := 1; i < attempt; i++ {
			d *= 2
			if d >= p.MaxDelay {
				break
			}
		}
	}
	if d > p.MaxDelay {
		d = p.MaxDelay
	}
	if p.Jitter > 0 && d > 0 {
		d += time.Duration(float64(d) * p.Jitter * p.Rand())
	}
	return d
}

func (p Policy) withDefaults() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = defaultMaxAttempts
	}
	if p.Base <= 0 {
		p.Base = defaultBase
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = defaultMaxDelay
	}
	if p.MaxDelay < p.Base {
		p.MaxDelay = p.Base
	}
	if p.Jitter < 0 {
		p.Jitter = 0
	}
	if p.Retriable == nil {
		p.Retriable = IsTransient
	}
	if p.Sleep == nil {
		p.Sleep = sleepContext
	}
	if p.Rand == nil {
		p.Rand = rand.Float64
	}
	return p
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
