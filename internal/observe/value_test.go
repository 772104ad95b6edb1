package observe_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjod/go_storefront/internal/observe"
)

func TestGetReturnsLatest(t *testing.T) {
	v := observe.NewValue(1)
	assert.Equal(t, 1, v.Get())

	v.Set(2)
	assert.Equal(t, 2, v.Get())

	v.Update(func(cur int) int { return cur * 10 })
	assert.Equal(t, 20, v.Get())
}

func TestWatchYieldsCurrentValueFirst(t *testing.T) {
	v := observe.NewValue("initial")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := v.Watch(ctx)

	select {
	case got := <-ch:
		assert.Equal(t, "initial", got)
	case <-time.After(time.Second):
		t.Fatal("watcher never received the initial value")
	}
}

func TestWatchDeliversUpdates(t *testing.T) {
	v := observe.NewValue(0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := v.Watch(ctx)
	<-ch

	v.Set(7)

	select {
	case got := <-ch:
		assert.Equal(t, 7, got)
	case <-time.After(time.Second):
		t.Fatal("watcher never received the update")
	}
}

func TestSlowWatcherSeesNewestValue(t *testing.T) {
	v := observe.NewValue(0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := v.Watch(ctx)
	<-ch

	// The watcher is not draining, so intermediate values are conflated.
	v.Set(1)
	v.Set(2)
	v.Set(3)

	require.Eventually(t, func() bool {
		select {
		case got := <-ch:
			return got == 3
		default:
			return false
		}
	}, time.Second, time.Millisecond)
}

func TestWatchClosesOnCancel(t *testing.T) {
	v := observe.NewValue(0)

	ctx, cancel := context.WithCancel(context.Background())
	ch := v.Watch(ctx)
	<-ch

	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, open := <-ch:
			return !open
		default:
			return false
		}
	}, time.Second, time.Millisecond)
}

func TestIndependentWatchers(t *testing.T) {
	v := observe.NewValue(0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a := v.Watch(ctx)
	b := v.Watch(ctx)
	<-a
	<-b

	v.Set(5)

	assert.Equal(t, 5, <-a)
	assert.Equal(t, 5, <-b)
}
