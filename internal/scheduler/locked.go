/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/friendsincode/grimnir_planner/internal/leadership"
	"github.com/friendsincode/grimnir_planner/internal/telemetry"
)

// Locker hands out an exclusive right to publish. The returned context ends
// when that right is lost.
type Locker interface {
	Acquire(ctx context.Context) (context.Context, func(context.Context) error, error)
}

// Generator produces one calendar run.
type Generator interface {
	Generate(ctx context.Context) (*Report, error)
}

// LockedGenerator runs a Generator only while holding a Locker, so concurrent
// invocations against the same store never interleave their replace calls.
type LockedGenerator struct {
	inner  Generator
	lock   Locker
	logger zerolog.Logger
}

// NewLocked wraps inner with lock.
func NewLocked(inner Generator, lock Locker, logger zerolog.Logger) *LockedGenerator {
	return &LockedGenerator{
		inner:  inner,
		lock:   lock,
		logger: logger.With().Str("component", "locked_scheduler").Logger(),
	}
}

// Generate acquires the lock, runs inner under the lock's context and releases
// the lock. If another instance holds the lock the run is refused with
// leadership.ErrLockHeld; if the lock is lost mid-run, inner sees a cancelled
// context and the error carries leadership.ErrLockLost.
func (g *LockedGenerator) Generate(ctx context.Context) (*Report, error) {
	runCtx, release, err := g.lock.Acquire(ctx)
	if err != nil {
		if errors.Is(err, leadership.ErrLockHeld) {
			telemetry.RunsTotal.WithLabelValues("locked").Inc()
			g.logger.Warn().Err(err).Msg("another run is in progress, skipping")
		}
		return nil, err
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := release(releaseCtx); err != nil {
			g.logger.Error().Err(err).Msg("failed to release run lock")
		}
	}()

	report, err := g.inner.Generate(runCtx)
	if err != nil {
		if cause := context.Cause(runCtx); errors.Is(cause, leadership.ErrLockLost) {
			return report, fmt.Errorf("%w: %w", cause, err)
		}
	}
	return report, err
}
