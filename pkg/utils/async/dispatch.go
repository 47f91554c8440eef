package async

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/utils/errutil"
	"github.com/secmon-lab/safetydocs/pkg/utils/logging"
)

var pending sync.WaitGroup

// Dispatch runs task in its own goroutine, detached from the cancellation of
// ctx but keeping its logger. Failures and panics are logged under name and
// reported; they never reach the caller.
func Dispatch(ctx context.Context, name string, task func(ctx context.Context) error) {
	bgCtx := logging.With(context.WithoutCancel(ctx), logging.From(ctx).With("task", name))

	pending.Add(1)
	go func() {
		defer pending.Done()
		defer func() {
			if r := recover(); r != nil {
				err := goerr.New("panic in background task", goerr.V("panic", r))
				_ = errutil.Handle(bgCtx, err, "background task panicked")
			}
		}()

		if err := task(bgCtx); err != nil {
			_ = errutil.Handle(bgCtx, err, "background task failed")
		}
	}()
}

// Wait blocks until every dispatched task has returned or ctx is done.
func Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return goerr.Wrap(ctx.Err(), "background tasks still running")
	}
}
