// Package result models the three-state value emitted by sync queries:
// Loading, then zero or more non-terminal Success values, then exactly one
// terminal Success or Error.
package result

// State tags a Result. The zero value is invalid so an unset Result is
// detectable in tests.
type State int

const (
	StateLoading State = iota + 1
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is a tagged union: exactly one of Data (StateSuccess) or Err
// (StateError) is meaningful; StateLoading carries neither.
type Result[T any] struct {
	State State
	Data  T
	Err   error
}

func Loading[T any]() Result[T] { return Result[T]{State: StateLoading} }

func Success[T any](v T) Result[T] { return Result[T]{State: StateSuccess, Data: v} }

func Failure[T any](err error) Result[T] { return Result[T]{State: StateError, Err: err} }

// IsTerminal reports whether no further values may follow r on its stream.
// A Success is terminal only when the producer closes the stream after it,
// so stream consumers should rely on channel close; IsTerminal is for the
// Error case, which always terminates.
func (r Result[T]) IsTerminal() bool { return r.State == StateError }
