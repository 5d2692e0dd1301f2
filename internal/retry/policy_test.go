/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testPolicy(slept *[]time.Duration) Policy {
	return Policy{
		MaxAttempts: 4,
		Base:        time.Second,
		MaxDelay:    5 * time.Second,
		Jitter:      0.5,
		Rand:        func() float64 { return 0 },
		Sleep: func(_ context.Context, d time.Duration) error {
			*slept = append(*slept, d)
			return nil
		},
	}
}

func TestDoRetriesTransientUntilSuccess(t *testing.T) {
	var slept []time.Duration
	calls := 0
	err := testPolicy(&slept).Do(context.Background(), "read", func(context.Context) error {
		calls++
		if calls < 3 {
			return Transient(errors.New("503"))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
	want := []time.Duration{time.Second, 2 * time.Second}
	if len(slept) != len(want) {
		t.Fatalf("slept %v, want %v", slept, want)
	}
	for i := range want {
		if slept[i] != want[i] {
			t.Fatalf("slept[%d] = %s, want %s", i, slept[i], want[i])
		}
	}
}

func TestDoStopsOnFatalError(t *testing.T) {
	var slept []time.Duration
	fatal := errors.New("permission denied")
	calls := 0
	err := testPolicy(&slept).Do(context.Background(), "read", func(context.Context) error {
		calls++
		return fatal
	})
	if !errors.Is(err, fatal) {
		t.Fatalf("err = %v, want %v", err, fatal)
	}
	if calls != 1 || len(slept) != 0 {
		t.Fatalf("calls = %d slept = %v, want a single attempt", calls, slept)
	}
}

func TestDoReturnsLastErrorAfterBudget(t *testing.T) {
	var slept []time.Duration
	calls := 0
	var last error
	err := testPolicy(&slept).Do(context.Background(), "write", func(context.Context) error {
		calls++
		last = Transient(errors.New("429"))
		return last
	})
	if err != last {
		t.Fatalf("err = %v, want last attempt error unchanged", err)
	}
	if calls != 4 {
		t.Fatalf("calls = %d, want 4", calls)
	}
	if len(slept) != 3 {
		t.Fatalf("slept %d times, want 3", len(slept))
	}
}

func TestDelayIsCappedAndJittered(t *testing.T) {
	p := Policy{Base: time.Second, MaxDelay: 5 * time.Second, Jitter: 0.2, Rand: func() float64 { return 1 }}

	if got := p.Delay(1, nil); got != 1200*time.Millisecond {
		t.Fatalf("Delay(1) = %s", got)
	}
	if got := p.Delay(3, nil); got != 4800*time.Millisecond {
		t.Fatalf("Delay(3) = %s", got)
	}
	if got := p.Delay(10, nil); got != 6*time.Second {
		t.Fatalf("Delay(10) = %s, want cap plus jitter", got)
	}
}

func TestDelayHonorsRetryAfterHint(t *testing.T) {
	p := Policy{Base: time.Second, MaxDelay: 10 * time.Second, Rand: func() float64 { return 0 }}
	err := RetryAfter(errors.New("429"), 7*time.Second)

	if !IsTransient(err) {
		t.Fatal("RetryAfter error should be transient")
	}
	if got := p.Delay(1, err); got != 7*time.Second {
		t.Fatalf("Delay = %s, want 7s", got)
	}
	if got := p.Delay(1, RetryAfter(errors.New("429"), time.Minute)); got != 10*time.Second {
		t.Fatalf("Delay = %s, want hint capped at 10s", got)
	}
}

func TestDoStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := Policy{MaxAttempts: 3, Base: time.Hour, Jitter: 0}
	calls := 0
	cancel()
	err := p.Do(ctx, "read", func(context.Context) error {
		calls++
		return Transient(errors.New("unavailable"))
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestValueReturnsResult(t *testing.T) {
	var slept []time.Duration
	calls := 0
	got, err := Value(context.Background(), testPolicy(&slept), "read", func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, Transient(errors.New("502"))
		}
		return 42, nil
	})
	if err != nil || got != 42 {
		t.Fatalf("Value = %d, %v", got, err)
	}
}
