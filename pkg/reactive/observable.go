package reactive

// Unsubscribe ends a subscription. Calling it more than once is a no-op.
type Unsubscribe func()

// Observable is a reactive value source.
type Observable interface {
	// Current returns the value at the time of the call.
	Current() any

	// Subscribe registers fn to receive every future value. Implementations
	// must not rely on fn being called with the current value.
	Subscribe(fn func(any)) Unsubscribe
}

// funcObservable adapts a pair of closures to Observable.
type funcObservable struct {
	read      func() any
	subscribe func(func(any)) func()
}

// Func builds an Observable from a read function and a subscribe function.
// A nil subscribe yields an observable that never emits.
func Func(read func() any, subscribe func(fn func(any)) func()) Observable {
	return &funcObservable{read: read, subscribe: subscribe}
}

func (f *funcObservable) Current() any {
	if f.read == nil {
		return nil
	}
	return f.read()
}

func (f *funcObservable) Subscribe(fn func(any)) Unsubscribe {
	if f.subscribe == nil || fn == nil {
		return func() {}
	}
	return once(f.subscribe(fn))
}

// mapped is a derived observable.
type mapped struct {
	src Observable
	fn  func(any) any
}

// Map returns an observable whose values are fn applied to src's values.
// Each subscriber holds its own subscription on src.
func Map(src Observable, fn func(any) any) Observable {
	return &mapped{src: src, fn: fn}
}

func (m *mapped) Current() any {
	return m.fn(m.src.Current())
}

func (m *mapped) Subscribe(fn func(any)) Unsubscribe {
	if fn == nil {
		return func() {}
	}
	return m.src.Subscribe(func(v any) {
		fn(m.fn(v))
	})
}

// once wraps an unsubscribe function so that it runs at most one time.
func once(fn func()) Unsubscribe {
	if fn == nil {
		return func() {}
	}
	done := false
	return func() {
		if done {
			return
		}
		done = true
		fn()
	}
}
