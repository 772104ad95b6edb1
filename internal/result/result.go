// Package result holds the tagged outcome types every repository and state
// holder operation is expressed in. Consumers type-switch over the variants.
package result

// Result is the outcome of a repository call: in flight, resolved with a
// payload, or failed with a human readable message.
type Result[T any] interface {
	isResult(T)
}

type Loading[T any] struct{}

type Success[T any] struct {
	Data T
}

type Error[T any] struct {
	Message string
}

func (Loading[T]) isResult(T) {}
func (Success[T]) isResult(T) {}
func (Error[T]) isResult(T)   {}
