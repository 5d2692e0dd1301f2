/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/friendsincode/grimnir_planner/internal/leadership"
)

type fakeLock struct {
	err      error
	lost     bool
	released int
}

func (l *fakeLock) Acquire(ctx context.Context) (context.Context, func(context.Context) error, error) {
	if l.err != nil {
		return nil, nil, l.err
	}
	runCtx, cancel := context.WithCancelCause(ctx)
	if l.lost {
		cancel(leadership.ErrLockLost)
	}
	return runCtx, func(context.Context) error {
		cancel(nil)
		l.released++
		return nil
	}, nil
}

type countingGenerator struct {
	calls int
	err   error
}

func (g *countingGenerator) Generate(ctx context.Context) (*Report, error) {
	g.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Report{RunID: "run"}, g.err
}

func TestLockedGeneratorRunsWhileHoldingLock(t *testing.T) {
	lock := &fakeLock{}
	inner := &countingGenerator{err: errors.New("boom")}

	_, err := NewLocked(inner, lock, zerolog.Nop()).Generate(context.Background())
	if err == nil || err.Error() != "boom" {
		t.Fatalf("inner error should pass through, got %v", err)
	}
	if inner.calls != 1 || lock.released != 1 {
		t.Fatalf("calls=%d released=%d", inner.calls, lock.released)
	}
}

func TestLockedGeneratorSkipsWhenHeld(t *testing.T) {
	lock := &fakeLock{err: fmt.Errorf("key grimnir:planner:run: %w", leadership.ErrLockHeld)}
	inner := &countingGenerator{}

	report, err := NewLocked(inner, lock, zerolog.Nop()).Generate(context.Background())
	if !errors.Is(err, leadership.ErrLockHeld) || report != nil {
		t.Fatalf("expected ErrLockHeld, got report=%v err=%v", report, err)
	}
	if inner.calls != 0 {
		t.Fatal("inner generator must not run without the lock")
	}
}

func TestLockedGeneratorCancelsRunWhenLockIsLost(t *testing.T) {
	lock := &fakeLock{lost: true}
	inner := &countingGenerator{}

	_, err := NewLocked(inner, lock, zerolog.Nop()).Generate(context.Background())
	if !errors.Is(err, leadership.ErrLockLost) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected lost-lock cancellation, got %v", err)
	}
	if lock.released != 1 {
		t.Fatalf("lock should still be released, released=%d", lock.released)
	}
}
