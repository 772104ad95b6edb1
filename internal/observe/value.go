// Package observe provides the watchable latest-value cell that backs all
// view state and the cart change feed. Semantics follow last-value-wins: a
// subscriber that falls behind sees the newest value, never a backlog.
package observe

import (
	"context"
	"sync"
)

// Value holds a current value of T and fans it out to watchers. Writes are
// owned by a single holder; reads and watches are safe from anywhere.
type Value[T any] struct {
	mu   sync.Mutex
	cur  T
	subs map[int]chan T
	next int
}

func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		cur:  initial,
		subs: make(map[int]chan T),
	}
}

func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cur
}

// Set replaces the current value and notifies every watcher. A watcher that
// has not drained its previous notification is conflated to the new value.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cur = val
	for _, ch := range v.subs {
		select {
		case <-ch:
		default:
		}
		ch <- val
	}
}

// Update applies f to the current value under the lock and notifies watchers.
func (v *Value[T]) Update(f func(T) T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cur = f(v.cur)
	for _, ch := range v.subs {
		select {
		case <-ch:
		default:
		}
		ch <- v.cur
	}
}

// Watch returns a channel that immediately yields the current value and then
// the latest value after each Set. The channel closes when ctx is cancelled.
func (v *Value[T]) Watch(ctx context.Context) <-chan T {
	v.mu.Lock()
	id := v.next
	v.next++
	ch := make(chan T, 1)
	ch <- v.cur
	v.subs[id] = ch
	v.mu.Unlock()

	out := make(chan T)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				v.mu.Lock()
				delete(v.subs, id)
				v.mu.Unlock()
				return
			case val := <-ch:
				select {
				case out <- val:
				case <-ctx.Done():
					v.mu.Lock()
					delete(v.subs, id)
					v.mu.Unlock()
					return
				}
			}
		}
	}()
	return out
}
