package service

import (
	"context"
	"log/slog"
)

// streamWatch runs a store watch and forwards every result set with send
// until the client goes away or a send or read fails.
func streamWatch[T any](
	ctx context.Context,
	watch func(ctx context.Context, fn func(T, error)) (stop func()),
	send func(T) error,
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	stop := watch(ctx, func(v T, err error) {
		if err == nil {
			err = send(v)
		}
		if err != nil {
			select {
			case errCh <- err:
			default:
			}
			cancel()
		}
	})
	defer stop()

	<-ctx.Done()
	select {
	case err := <-errCh:
		slog.Debug("Watch ended", "error", err)
		return toConnectError(err)
	default:
		return nil
	}
}
