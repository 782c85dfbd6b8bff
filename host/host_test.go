package host

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/particleforge/webmesh/geom"
	"github.com/particleforge/webmesh/mesh"
)

func TestStaticPoints(t *testing.T) {
	cloud := []geom.Point3{{1, 0, 0}, {0, 1, 0}}
	provider := StaticPoints(cloud)

	got, err := provider.Points(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cloud, got)

	// The provider hands out copies; mutating a result must not leak
	// into later calls.
	got[0] = geom.Point3{9, 9, 9}
	again, err := provider.Points(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cloud, again)
}

func TestNoopElaborator(t *testing.T) {
	buf := mesh.NewBuffer("web")
	var e NoopElaborator

	assert.True(t, e.Attached(buf))
	assert.NoError(t, e.Attach(buf))
}

func TestNewLoopValidation(t *testing.T) {
	update := func(_ context.Context, _ []geom.Point3) error { return nil }

	_, err := NewLoop(nil, update)
	assert.Error(t, err)

	_, err = NewLoop(StaticPoints(nil), nil)
	assert.Error(t, err)
}

func TestLoopRunsUpdatesSerially(t *testing.T) {
	cloud := []geom.Point3{{0, 0, 0}, {1, 0, 0}}

	var (
		mu      sync.Mutex
		active  int
		updates int
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	update := func(_ context.Context, points []geom.Point3) error {
		mu.Lock()
		active++
		assert.Equal(t, 1, active)
		assert.Equal(t, cloud, points)
		updates++
		done := updates >= 5
		active--
		mu.Unlock()

		if done {
			cancel()
		}
		return nil
	}

	loop, err := NewLoop(StaticPoints(cloud), update, func(o *LoopOptions) {
		o.Rate = 1000
	})
	require.NoError(t, err)

	require.NoError(t, loop.Run(ctx))

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, updates, 5)
}

func TestLoopStopsOnUpdateError(t *testing.T) {
	wantErr := errors.New("boom")
	update := func(_ context.Context, _ []geom.Point3) error { return wantErr }

	loop, err := NewLoop(StaticPoints(nil), update, func(o *LoopOptions) {
		o.Rate = 1000
	})
	require.NoError(t, err)

	err = loop.Run(context.Background())
	assert.ErrorIs(t, err, wantErr)
}

func TestLoopContinueOnError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu    sync.Mutex
		calls int
	)
	update := func(_ context.Context, _ []geom.Point3) error {
		mu.Lock()
		calls++
		done := calls >= 3
		mu.Unlock()

		if done {
			cancel()
		}
		return errors.New("boom")
	}

	loop, err := NewLoop(StaticPoints(nil), update, func(o *LoopOptions) {
		o.Rate = 1000
		o.ContinueOnError = true
	})
	require.NoError(t, err)

	require.NoError(t, loop.Run(ctx))

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, calls, 3)
}

func TestLoopStopsOnProviderError(t *testing.T) {
	wantErr := errors.New("source gone")
	provider := PointProviderFunc(func(_ context.Context) ([]geom.Point3, error) {
		return nil, wantErr
	})
	update := func(_ context.Context, _ []geom.Point3) error { return nil }

	loop, err := NewLoop(provider, update, func(o *LoopOptions) {
		o.Rate = 1000
	})
	require.NoError(t, err)

	err = loop.Run(context.Background())
	assert.ErrorIs(t, err, wantErr)
}

func TestLoopHonorsRate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu    sync.Mutex
		calls int
	)
	update := func(_ context.Context, _ []geom.Point3) error {
		mu.Lock()
		calls++
		done := calls >= 3
		mu.Unlock()

		if done {
			cancel()
		}
		return nil
	}

	loop, err := NewLoop(StaticPoints(nil), update, func(o *LoopOptions) {
		o.Rate = 50
	})
	require.NoError(t, err)

	start := time.Now()
	require.NoError(t, loop.Run(ctx))

	// Three updates at 50/s need at least two inter-update gaps.
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}
