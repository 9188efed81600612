package result

import (
	"context"
	"errors"
)

// ErrNoValue reports a stream that closed without any Success or Error,
// which a conforming producer never does.
var ErrNoValue = errors.New("result: stream closed without a terminal value")

// Emitter produces one ordered stream for a single subscriber. The channel
// is buffered so a fixed number of emits never block the producer; the
// subscriber detaches by cancelling ctx, which makes every later Emit a
// no-op returning false.
type Emitter[T any] struct {
	ctx context.Context
	ch  chan Result[T]
}

// NewEmitter returns the producer handle and the subscriber's receive side.
// buf should cover the maximum number of values the protocol can emit
// (loading + cached + terminal = 3 for list queries).
func NewEmitter[T any](ctx context.Context, buf int) (*Emitter[T], <-chan Result[T]) {
	if buf < 1 {
		buf = 1
	}
	ch := make(chan Result[T], buf)
	return &Emitter[T]{ctx: ctx, ch: ch}, ch
}

// Emit delivers r unless the subscriber has detached.
func (e *Emitter[T]) Emit(r Result[T]) bool {
	select {
	case <-e.ctx.Done():
		return false
	case e.ch <- r:
		return true
	}
}

// Close terminates the stream. No Emit may follow.
func (e *Emitter[T]) Close() { close(e.ch) }

// Collect drains a stream to its terminal value. It returns the terminal
// Success payload, or, when the stream ends in an Error, the last
// non-terminal Success (stale=true) if one was seen, else the error.
func Collect[T any](ctx context.Context, ch <-chan Result[T]) (data T, stale bool, err error) {
	var last T
	var seen bool
	for {
		select {
		case <-ctx.Done():
			if seen {
				return last, true, nil
			}
			return data, false, ctx.Err()
		case r, ok := <-ch:
			if !ok {
				if seen {
					return last, false, nil
				}
				return data, false, ErrNoValue
			}
			switch r.State {
			case StateSuccess:
				last, seen = r.Data, true
			case StateError:
				if seen {
					return last, true, nil
				}
				return data, false, r.Err
			}
		}
	}
}
