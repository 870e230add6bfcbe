package session

import (
	"context"
	"sync"
)

// Latest holds the most recent value published on a stream. Publishing never
// blocks; values the consumer has not picked up yet are overwritten. It
// supports a single consumer.
type Latest[T any] struct {
	mu     sync.Mutex
	value  T
	seq    uint64
	notify chan struct{}
}

// NewLatest returns an empty stream.
func NewLatest[T any]() *Latest[T] {
	return &Latest[T]{notify: make(chan struct{}, 1)}
}

// Publish replaces the current value and wakes the consumer.
func (l *Latest[T]) Publish(v T) {
	l.mu.Lock()
	l.value = v
	l.seq++
	l.mu.Unlock()

	select {
	case l.notify <- struct{}{}:
	default:
		// A wake-up is already pending; it will read the new value.
	}
}

// Load returns the current value and how many values were ever published.
func (l *Latest[T]) Load() (T, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.seq
}

// Next blocks until a value is published after the previous Next returned,
// then returns the newest one.
func (l *Latest[T]) Next(ctx context.Context) (T, error) {
	select {
	case <-l.notify:
		v, _ := l.Load()
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
