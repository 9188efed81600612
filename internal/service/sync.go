package service

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/d60-Lab/vidsync/internal/result"
)

// syncStream runs the cache-then-network protocol for one subscriber:
//
//	Loading -> Success(cached, if non-empty and not skipped) -> Success(fresh) | Error
//
// The network leg (fetch + persist) is coalesced per key: concurrent
// subscribers of the same key share one upstream call and one persist pass.
// A subscriber detaching cancels only its own stream; the shared leg keeps
// running for the others, so the fetch closure receives a context detached
// from the initiating subscriber's cancellation.
func syncStream[T any](
	ctx context.Context,
	flight *singleflight.Group,
	key string,
	skipCache bool,
	cached func(context.Context) ([]T, error),
	fetch func(context.Context) ([]T, error),
) <-chan result.Result[[]T] {
	em, ch := result.NewEmitter[[]T](ctx, 3)
	go func() {
		defer em.Close()
		if !em.Emit(result.Loading[[]T]()) {
			return
		}

		if !skipCache {
			rows, err := cached(ctx)
			if err != nil {
				em.Emit(result.Failure[[]T](persistence(err)))
				return
			}
			// An empty cache emits nothing: the subscriber sees no
			// spurious empty Success before the network result.
			if len(rows) > 0 {
				if !em.Emit(result.Success(rows)) {
					return
				}
			}
		}

		detached := context.WithoutCancel(ctx)
		res := flight.DoChan(key, func() (any, error) {
			return fetch(detached)
		})
		select {
		case <-ctx.Done():
			return
		case r := <-res:
			if r.Err != nil {
				em.Emit(result.Failure[[]T](r.Err))
				return
			}
			em.Emit(result.Success(r.Val.([]T)))
		}
	}()
	return ch
}

// failedStream delivers a synchronous precondition failure as a single
// terminal Error without touching store or network.
func failedStream[T any](err error) <-chan result.Result[T] {
	ch := make(chan result.Result[T], 1)
	ch <- result.Failure[T](err)
	close(ch)
	return ch
}
