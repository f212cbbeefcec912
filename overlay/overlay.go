// Package overlay defines the synchronous region-selection API owned by the
// event loop.
package overlay

import (
	"context"

	"screensnip/screenshot"
)

// Selector blocks until the user picks a region over the frozen frame. It
// MUST be invoked only from the single event-loop goroutine. Returns
// (region, cancelled, error); when cancelled is true, region is undefined
// and err is nil.
type Selector interface {
	Select(ctx context.Context) (screenshot.Region, bool, error)
}

// Func adapts a plain function to Selector.
type Func func(ctx context.Context) (screenshot.Region, bool, error)

func (f Func) Select(ctx context.Context) (screenshot.Region, bool, error) { return f(ctx) }

// FullScreen returns a selector that picks the entire virtual screen without
// user interaction. Used by the run-once client path, where no interactive
// overlay exists.
func FullScreen() Selector {
	return Func(func(ctx context.Context) (screenshot.Region, bool, error) {
		select {
		case <-ctx.Done():
			return screenshot.Region{}, false, ctx.Err()
		default:
		}
		b := screenshot.VirtualBounds()
		return screenshot.Region{X: 0, Y: 0, Width: b.Dx(), Height: b.Dy()}, false, nil
	})
}
