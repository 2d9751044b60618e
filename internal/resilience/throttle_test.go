package resilience_test

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/teleping/internal/resilience"
)

func TestThrottle_FirstWaitIsImmediate(t *testing.T) {
	th := resilience.NewThrottle(time.Second)
	assert.True(t, th.Last().IsZero(), "no attempt recorded yet")

	waited, err := th.Wait(context.Background())

	require.NoError(t, err)
	assert.Less(t, waited, 50*time.Millisecond)
	assert.False(t, th.Last().IsZero())
}

func TestThrottle_EnforcesSpacing(t *testing.T) {
	spacing := 150 * time.Millisecond
	th := resilience.NewThrottle(spacing)

	_, err := th.Wait(context.Background())
	require.NoError(t, err)
	first := th.Last()

	_, err = th.Wait(context.Background())
	require.NoError(t, err)
	second := th.Last()

	assert.GreaterOrEqual(t, second.Sub(first), spacing)
}

func TestThrottle_IdleCallerPassesImmediately(t *testing.T) {
	spacing := 50 * time.Millisecond
	th := resilience.NewThrottle(spacing)

	_, err := th.Wait(context.Background())
	require.NoError(t, err)

	time.Sleep(2 * spacing)

	waited, err := th.Wait(context.Background())
	require.NoError(t, err)
	assert.Less(t, waited, 20*time.Millisecond)
}

func TestThrottle_ZeroSpacingNeverWaits(t *testing.T) {
	th := resilience.NewThrottle(0)

	start := time.Now()
	for range 10 {
		_, err := th.Wait(context.Background())
		require.NoError(t, err)
	}

	assert.Less(t, time.Since(start), 50*time.Millisecond)
	assert.Equal(t, time.Duration(0), th.Spacing())
}

func TestThrottle_CancelledContext(t *testing.T) {
	th := resilience.NewThrottle(time.Second)
	_, err := th.Wait(context.Background())
	require.NoError(t, err)
	last := th.Last()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = th.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, last, th.Last(), "failed wait must not record a slot")
}

func TestThrottle_DeadlineBeforeSlot(t *testing.T) {
	th := resilience.NewThrottle(time.Second)
	_, err := th.Wait(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = th.Wait(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 40*time.Millisecond, "should fail fast instead of sleeping")
}

func TestThrottle_ConcurrentHoldersKeepSpacing(t *testing.T) {
	spacing := 20 * time.Millisecond
	th := resilience.NewThrottle(spacing)

	const callers = 20
	var (
		mu    sync.Mutex
		times []time.Time
		wg    sync.WaitGroup
	)
	for range callers {
		wg.Go(func() {
			release, _, err := th.Acquire(context.Background())
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			times = append(times, time.Now())
			mu.Unlock()
			release()
		})
	}
	wg.Wait()

	require.Len(t, times, callers)
	slices.SortFunc(times, func(a, b time.Time) int { return a.Compare(b) })
	for i := 1; i < len(times); i++ {
		assert.GreaterOrEqual(t, times[i].Sub(times[i-1]), spacing, "gap %d", i)
	}
}

func TestThrottle_SpacingCountsFromRelease(t *testing.T) {
	spacing := 40 * time.Millisecond
	th := resilience.NewThrottle(spacing)

	release, _, err := th.Acquire(context.Background())
	require.NoError(t, err)
	time.Sleep(2 * spacing) // slow attempt
	release()
	released := th.Last()

	_, err = th.Wait(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, th.Last().Sub(released), spacing)
}

func TestThrottle_HolderBlocksOthers(t *testing.T) {
	th := resilience.NewThrottle(10 * time.Millisecond)

	release, _, err := th.Acquire(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = th.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	release() // second call is a no-op
	_, err = th.Wait(context.Background())
	assert.NoError(t, err)
}
