package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cooperative blocks until asked to stop.
func cooperative(started *atomic.Int32) Activity {
	return func(ctx context.Context, stop <-chan struct{}) error {
		started.Add(1)
		select {
		case <-stop:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func TestTaskManager_StartDuplicateLeavesOne(t *testing.T) {
	m := NewTaskManager(time.Second, nil)
	defer m.Cleanup(time.Second)

	var firstStarted, secondStarted atomic.Int32
	firstDone := make(chan struct{})

	m.Start("pages", func(ctx context.Context, stop <-chan struct{}) error {
		defer close(firstDone)
		return cooperative(&firstStarted)(ctx, stop)
	})
	require.Eventually(t, func() bool { return firstStarted.Load() == 1 }, time.Second, 5*time.Millisecond)

	m.Start("pages", cooperative(&secondStarted))

	select {
	case <-firstDone:
	default:
		t.Fatal("first activity must have returned before Start returned")
	}
	require.Eventually(t, func() bool { return secondStarted.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, m.IsRunning("pages"))
	assert.Equal(t, []string{"pages"}, m.Running())
}

func TestTaskManager_IsRunningUntilNaturalCompletion(t *testing.T) {
	m := NewTaskManager(time.Second, nil)
	release := make(chan struct{})

	m.Start("once", func(context.Context, <-chan struct{}) error {
		<-release
		return nil
	})

	assert.True(t, m.IsRunning("once"))
	close(release)
	assert.Eventually(t, func() bool { return !m.IsRunning("once") }, time.Second, 5*time.Millisecond)
	assert.Empty(t, m.Running())
}

func TestTaskManager_StopUnknownIsNoop(t *testing.T) {
	m := NewTaskManager(time.Second, nil)
	assert.NotPanics(t, func() {
		m.Stop("missing", time.Second)
	})
	assert.False(t, m.IsRunning("missing"))
}

func TestTaskManager_StopCooperative(t *testing.T) {
	m := NewTaskManager(time.Second, nil)
	var started atomic.Int32
	m.Start("pages", cooperative(&started))
	require.Eventually(t, func() bool { return started.Load() == 1 }, time.Second, 5*time.Millisecond)

	begin := time.Now()
	m.Stop("pages", time.Second)
	assert.Less(t, time.Since(begin), 500*time.Millisecond)
	assert.False(t, m.IsRunning("pages"))
}

func TestTaskManager_StopForcesAfterTimeout(t *testing.T) {
	m := NewTaskManager(time.Second, nil)

	started := make(chan struct{})
	cancelled := make(chan struct{})
	m.Start("stubborn", func(ctx context.Context, _ <-chan struct{}) error {
		close(started)
		// Ignores the cooperative signal; only cancellation ends it.
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	})

	<-started
	begin := time.Now()
	m.Stop("stubborn", 50*time.Millisecond)
	elapsed := time.Since(begin)

	select {
	case <-cancelled:
	default:
		t.Fatal("activity was not cancelled")
	}
	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	assert.False(t, m.IsRunning("stubborn"))
}

func TestTaskManager_StopRightAfterStartStillRunsActivity(t *testing.T) {
	m := NewTaskManager(time.Second, nil)

	ran := make(chan struct{})
	m.Start("quick", func(_ context.Context, stop <-chan struct{}) error {
		close(ran)
		<-stop
		return nil
	})
	m.Stop("quick", time.Second)

	select {
	case <-ran:
	default:
		t.Fatal("activity never ran")
	}
	assert.False(t, m.IsRunning("quick"))
}

func TestTaskManager_StopAbandonsActivityIgnoringCancellation(t *testing.T) {
	m := NewTaskManager(time.Second, nil)
	release := make(chan struct{})
	defer close(release)

	m.Start("hung", func(context.Context, <-chan struct{}) error {
		<-release
		return nil
	})

	begin := time.Now()
	m.Stop("hung", 20*time.Millisecond)
	assert.Less(t, time.Since(begin), time.Second)
	assert.False(t, m.IsRunning("hung"), "bookkeeping is removed regardless of outcome")
}

func TestTaskManager_SlowStopDoesNotBlockOtherNames(t *testing.T) {
	m := NewTaskManager(time.Second, nil)
	defer m.Cleanup(time.Second)

	m.Start("slow", func(ctx context.Context, _ <-chan struct{}) error {
		<-ctx.Done()
		return nil
	})

	stopping := make(chan struct{})
	go func() {
		defer close(stopping)
		m.Stop("slow", 300*time.Millisecond)
	}()

	time.Sleep(20 * time.Millisecond)

	var started atomic.Int32
	begin := time.Now()
	m.Start("fast", cooperative(&started))
	assert.True(t, m.IsRunning("fast"))
	assert.Less(t, time.Since(begin), 100*time.Millisecond)

	<-stopping
}

func TestTaskManager_Cleanup(t *testing.T) {
	m := NewTaskManager(time.Second, nil)
	var started atomic.Int32
	m.Start("a", cooperative(&started))
	m.Start("b", cooperative(&started))
	m.Start("c", cooperative(&started))
	require.Eventually(t, func() bool { return started.Load() == 3 }, time.Second, 5*time.Millisecond)

	m.Cleanup(time.Second)

	assert.Empty(t, m.Running())
	for _, name := range []string{"a", "b", "c"} {
		assert.False(t, m.IsRunning(name))
	}
}

func TestTaskManager_PanickingActivity(t *testing.T) {
	m := NewTaskManager(time.Second, nil)
	m.Start("bad", func(context.Context, <-chan struct{}) error {
		panic("boom")
	})
	assert.Eventually(t, func() bool { return !m.IsRunning("bad") }, time.Second, 5*time.Millisecond)
}
