package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/particleforge/webmesh/geom"
)

// UpdateFunc consumes one point cloud and applies it to a web. The loop
// never calls it concurrently with itself.
type UpdateFunc func(ctx context.Context, points []geom.Point3) error

// LoopOptions configures a Loop.
type LoopOptions struct {
	// Rate is the maximum update frequency in updates per second.
	Rate rate.Limit

	// Burst is the rate limiter burst size.
	Burst int

	// ContinueOnError keeps the loop running when an update fails;
	// the error is logged instead of returned.
	ContinueOnError bool

	// Logger receives per-tick diagnostics. Nil disables logging.
	Logger *slog.Logger
}

// DefaultLoopOptions are the default loop options: 30 updates per
// second, stop on the first error.
var DefaultLoopOptions = LoopOptions{
	Rate:  30,
	Burst: 1,
}

// Loop drives repeated updates from a PointProvider, one strictly after
// another. It is the library-side stand-in for a host application's
// frame-change callback.
type Loop struct {
	provider PointProvider
	update   UpdateFunc
	limiter  *rate.Limiter
	opts     LoopOptions
}

// NewLoop creates a loop pulling from provider and feeding update.
func NewLoop(provider PointProvider, update UpdateFunc, optFns ...func(o *LoopOptions)) (*Loop, error) {
	if provider == nil {
		return nil, errors.New("host: nil point provider")
	}
	if update == nil {
		return nil, errors.New("host: nil update func")
	}

	opts := DefaultLoopOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Burst < 1 {
		opts.Burst = 1
	}

	return &Loop{
		provider: provider,
		update:   update,
		limiter:  rate.NewLimiter(opts.Rate, opts.Burst),
		opts:     opts,
	}, nil
}

// Run pulls, updates, repeats until the context is canceled. The
// context's cause is returned, except context.Canceled, which is the
// normal shutdown path and maps to nil.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := l.limiter.Wait(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		if err := l.tick(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			if l.opts.ContinueOnError {
				if l.opts.Logger != nil {
					l.opts.Logger.Warn("update failed, continuing",
						"error", err,
					)
				}
				continue
			}
			return err
		}
	}
}

func (l *Loop) tick(ctx context.Context) error {
	points, err := l.provider.Points(ctx)
	if err != nil {
		return fmt.Errorf("point provider: %w", err)
	}
	return l.update(ctx, points)
}
