package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/kottos/pkg/utils/async"
)

func TestDispatch(t *testing.T) {
	t.Run("runs handler in background", func(t *testing.T) {
		done := make(chan struct{})
		async.Dispatch(context.Background(), func(ctx context.Context) error {
			close(done)
			return nil
		})

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("handler was not executed")
		}
	})

	t.Run("handler context survives caller cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result := make(chan error, 1)
		async.Dispatch(ctx, func(ctx context.Context) error {
			result <- ctx.Err()
			return errors.New("ignored")
		})

		select {
		case err := <-result:
			gt.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("handler was not executed")
		}
	})

	t.Run("panic is recovered", func(t *testing.T) {
		done := make(chan struct{})
		async.Dispatch(context.Background(), func(ctx context.Context) error {
			defer close(done)
			panic("boom")
		})

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("handler was not executed")
		}
	})
}
