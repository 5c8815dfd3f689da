package trimview

import (
	"context"
	"sync"
	"time"
)

// DefaultFrameInterval approximates a 60fps display refresh.
const DefaultFrameInterval = time.Second / 60

// RedrawLoop repeatedly invokes a frame function, typically clear + draw of
// the trim-bar overlay. It is an explicit cancellable task: Stop tears the
// loop down deterministically and guarantees that no frame fires after it
// returns, so the loop can never draw against a stale surface.
type RedrawLoop struct {
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// StartRedrawLoop begins invoking frame every interval until Stop is called
// or the parent context is cancelled.
func StartRedrawLoop(parent context.Context, interval time.Duration, frame func()) *RedrawLoop {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}

	ctx, cancel := context.WithCancel(parent)
	loop := &RedrawLoop{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(loop.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// A tick may already be pending when cancellation lands;
				// re-check so a cancelled loop never fires one more frame.
				select {
				case <-ctx.Done():
					return
				default:
				}
				frame()
			}
		}
	}()

	return loop
}

// Stop cancels the loop and blocks until the frame goroutine has exited.
// After Stop returns no further frame will fire. Safe to call repeatedly.
func (l *RedrawLoop) Stop() {
	l.stopOnce.Do(func() {
		l.cancel()
	})
	<-l.done
}
