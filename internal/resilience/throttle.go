package resilience

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultSpacing is the minimum gap between two dispatch attempts.
const DefaultSpacing = time.Second

// Throttle enforces a minimum spacing between consecutive attempts.
//
// A caller holds the slot from Acquire until it calls release, and the next
// slot opens spacing after that release. Work done while holding the slot is
// therefore spaced by at least spacing from the previous holder's work, even
// when a goroutine is scheduled late. Waiters queue on a one-slot semaphore;
// the wait itself is a burst-1 limiter reset at each release.
type Throttle struct {
	spacing time.Duration
	slot    chan struct{}
	limiter *rate.Limiter // owned by the slot holder

	mu   sync.Mutex
	last time.Time // zero = no attempt yet
}

// NewThrottle creates a throttle. A non-positive spacing disables waiting.
func NewThrottle(spacing time.Duration) *Throttle {
	spacing = max(spacing, 0)
	t := &Throttle{spacing: spacing}
	if spacing > 0 {
		t.slot = make(chan struct{}, 1)
		t.limiter = rate.NewLimiter(rate.Every(spacing), 1)
	}
	return t
}

// Acquire blocks until the next slot is available and returns how long it
// waited. The caller must call release exactly once when its attempt has been
// issued; release records the attempt time.
//
// If ctx ends first, Acquire returns ctx.Err(). If ctx has a deadline that
// falls before the slot, Acquire fails immediately with an error wrapping
// context.DeadlineExceeded. A failed Acquire records nothing.
func (t *Throttle) Acquire(ctx context.Context) (release func(), waited time.Duration, err error) {
	start := time.Now()
	if t.slot == nil {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		return func() { t.record() }, time.Since(start), nil
	}

	select {
	case t.slot <- struct{}{}:
	case <-ctx.Done():
		return nil, time.Since(start), ctx.Err()
	}

	if err := t.limiter.Wait(ctx); err != nil {
		<-t.slot
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, time.Since(start), ctxErr
		}
		return nil, time.Since(start), fmt.Errorf("throttle: %w: %w", err, context.DeadlineExceeded)
	}

	// The limiter rounds to whole nanoseconds; never hand out a slot early.
	if gap := t.spacing - time.Since(t.Last()); gap > 0 {
		if err := sleep(ctx, gap); err != nil {
			<-t.slot
			return nil, time.Since(start), err
		}
	}

	var once sync.Once
	release = func() {
		once.Do(func() {
			now := t.record()
			t.limiter = rate.NewLimiter(rate.Every(t.spacing), 1)
			t.limiter.AllowN(now, 1)
			<-t.slot
		})
	}
	return release, time.Since(start), nil
}

// Wait acquires a slot and releases it at once, recording the current time
// as the last attempt.
func (t *Throttle) Wait(ctx context.Context) (time.Duration, error) {
	release, waited, err := t.Acquire(ctx)
	if err != nil {
		return waited, err
	}
	release()
	return waited, nil
}

func (t *Throttle) record() time.Time {
	now := time.Now()
	t.mu.Lock()
	t.last = now
	t.mu.Unlock()
	return now
}

// Last returns the time of the last released slot, or the zero time if
// no attempt has been made yet.
func (t *Throttle) Last() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

// Spacing returns the configured minimum spacing.
func (t *Throttle) Spacing() time.Duration {
	return t.spacing
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
