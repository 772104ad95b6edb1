package result

// UIState is the screen-local variant of Result: it additionally has an Idle
// state for "not yet requested", so a screen can tell a fresh holder from one
// with a request in flight.
type UIState[T any] interface {
	isUIState(T)
}

type Idle[T any] struct{}

type Pending[T any] struct{}

type Resolved[T any] struct {
	Data T
}

type Failed[T any] struct {
	Message string
}

func (Idle[T]) isUIState(T)     {}
func (Pending[T]) isUIState(T)  {}
func (Resolved[T]) isUIState(T) {}
func (Failed[T]) isUIState(T)   {}
