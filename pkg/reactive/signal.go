package reactive

import (
	"reflect"
	"sync"
	"sync/atomic"
)

var lastID atomic.Uint64

func nextID() uint64 { return lastID.Add(1) }

// subscriber is one registered callback.
type subscriber struct {
	id uint64
	fn func(any)
}

// subscribers provides type-erased subscriber management.
// It is embedded in Signal[T] to keep the generic part small.
type subscribers struct {
	list []subscriber
	mu   sync.Mutex
}

// add registers fn and returns the function that removes it.
func (s *subscribers) add(fn func(any)) Unsubscribe {
	id := nextID()

	s.mu.Lock()
	s.list = append(s.list, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return once(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.list {
			if sub.id == id {
				// Keep order; subscribers are notified in registration order.
				s.list = append(s.list[:i:i], s.list[i+1:]...)
				return
			}
		}
	})
}

// notify calls every subscriber with v.
// Uses copy-before-notify so callbacks may unsubscribe or subscribe.
func (s *subscribers) notify(v any) {
	s.mu.Lock()
	subs := make([]subscriber, len(s.list))
	copy(subs, s.list)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(v)
	}
}

func (s *subscribers) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.list)
}

// Signal is a reactive value container that implements Observable.
type Signal[T any] struct {
	subs subscribers

	// value is the current signal value.
	value T

	// mu protects the value.
	mu sync.RWMutex

	// equal decides whether a Set changes the value.
	// If nil, uses default equality checking.
	equal func(T, T) bool
}

// NewSignal creates a new signal with the given initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Peek is an alias of Get kept for symmetry with Current.
func (s *Signal[T]) Peek() T { return s.Get() }

// Set updates the value and notifies subscribers if it changed.
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	changed := !s.equals(s.value, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	if changed {
		s.subs.notify(value)
	}
}

// Update atomically reads and updates the signal's value.
// The function receives the current value and returns the new value.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	oldValue := s.value
	newValue := fn(oldValue)
	changed := !s.equals(oldValue, newValue)
	if changed {
		s.value = newValue
	}
	s.mu.Unlock()

	if changed {
		s.subs.notify(newValue)
	}
}

// WithEquals returns the signal configured with a custom equality function.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// OnChange subscribes a typed callback.
func (s *Signal[T]) OnChange(fn func(T)) Unsubscribe {
	if fn == nil {
		return func() {}
	}
	return s.subs.add(func(v any) {
		// A nil interface value arrives as untyped nil.
		t, _ := v.(T)
		fn(t)
	})
}

// Current implements Observable.
func (s *Signal[T]) Current() any { return s.Get() }

// Subscribe implements Observable.
func (s *Signal[T]) Subscribe(fn func(any)) Unsubscribe {
	if fn == nil {
		return func() {}
	}
	return s.subs.add(fn)
}

// Subscribers returns the number of active subscriptions.
func (s *Signal[T]) Subscribers() int { return s.subs.len() }

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals compares with == when the dynamic values are comparable
// (pointers compare by identity) and falls back to reflect.DeepEqual for
// slices, maps and structs containing them.
func defaultEquals[T any](a, b T) bool {
	av, bv := any(a), any(b)
	ra, rb := reflect.ValueOf(av), reflect.ValueOf(bv)
	if !ra.IsValid() || !rb.IsValid() {
		return ra.IsValid() == rb.IsValid()
	}
	if ra.Type() != rb.Type() {
		return false
	}
	if ra.Comparable() {
		return av == bv
	}
	return reflect.DeepEqual(av, bv)
}
