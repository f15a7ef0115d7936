package reactive

import (
	"fmt"
	"testing"
)

func TestSignalGetSet(t *testing.T) {
	s := NewSignal(1)
	if s.Get() != 1 || s.Current() != 1 {
		t.Fatalf("initial value = %v", s.Get())
	}

	var got []any
	unsub := s.Subscribe(func(v any) { got = append(got, v) })

	s.Set(2)
	s.Set(2) // no change, no notification
	s.Update(func(v int) int { return v + 1 })

	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Fatalf("notifications = %v, want [2 3]", got)
	}

	unsub()
	unsub()
	s.Set(10)
	if len(got) != 2 {
		t.Fatal("notified after unsubscribe")
	}
	if s.Subscribers() != 0 {
		t.Fatalf("Subscribers() = %d, want 0", s.Subscribers())
	}
}

func TestSignalNotifiesInOrder(t *testing.T) {
	s := NewSignal("a")
	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		s.Subscribe(func(any) { order = append(order, name) })
	}

	s.Set("b")

	if fmt.Sprint(order) != "[first second third]" {
		t.Fatalf("order = %v", order)
	}
}

func TestSignalUnsubscribeDuringNotify(t *testing.T) {
	s := NewSignal(0)
	calls := 0
	var unsub Unsubscribe
	unsub = s.Subscribe(func(any) {
		calls++
		unsub()
	})

	s.Set(1)
	s.Set(2)

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestSignalAnyMixedTypes(t *testing.T) {
	s := NewSignal[any](1)
	notified := 0
	s.Subscribe(func(any) { notified++ })

	s.Set("one")
	s.Set("one")
	s.Set([]int{1})
	s.Set([]int{1})
	s.Set(nil)

	if notified != 3 {
		t.Fatalf("notified = %d, want 3", notified)
	}
}

func TestOnChangeNilInterface(t *testing.T) {
	s := NewSignal[error](fmt.Errorf("boom"))
	var got []error
	s.OnChange(func(err error) { got = append(got, err) })

	s.Set(nil)

	if len(got) != 1 || got[0] != nil {
		t.Fatalf("OnChange saw %v, want [<nil>]", got)
	}

	a := NewSignal[any]("x")
	calls := 0
	a.OnChange(func(v any) {
		calls++
		if v != nil {
			t.Fatalf("OnChange value = %v, want nil", v)
		}
	})
	a.Set(nil)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestSignalPointerIdentity(t *testing.T) {
	type box struct{ n int }
	a, b := &box{1}, &box{1}
	s := NewSignal(a)
	notified := 0
	s.OnChange(func(*box) { notified++ })

	s.Set(b)

	if notified != 1 {
		t.Fatal("distinct pointers with equal contents must notify")
	}
}

func TestSignalWithEquals(t *testing.T) {
	s := NewSignal(1.0).WithEquals(func(a, b float64) bool {
		d := a - b
		return d < 0.5 && d > -0.5
	})
	notified := 0
	s.OnChange(func(float64) { notified++ })

	s.Set(1.2)
	s.Set(2.0)

	if notified != 1 || s.Get() != 2.0 {
		t.Fatalf("notified = %d value = %v", notified, s.Get())
	}
}

func TestMap(t *testing.T) {
	src := NewSignal(2)
	doubled := Map(src, func(v any) any { return v.(int) * 2 })

	if doubled.Current() != 4 {
		t.Fatalf("Current() = %v, want 4", doubled.Current())
	}

	var got any
	unsub := doubled.Subscribe(func(v any) { got = v })
	src.Set(5)
	if got != 10 {
		t.Fatalf("mapped emission = %v, want 10", got)
	}

	unsub()
	if src.Subscribers() != 0 {
		t.Fatal("Map subscription leaked on the source")
	}
}

func TestFunc(t *testing.T) {
	value := "x"
	var listeners []func(any)
	removed := 0

	obs := Func(
		func() any { return value },
		func(fn func(any)) func() {
			listeners = append(listeners, fn)
			return func() { removed++ }
		},
	)

	if obs.Current() != "x" {
		t.Fatalf("Current() = %v", obs.Current())
	}

	var got any
	unsub := obs.Subscribe(func(v any) { got = v })
	listeners[0]("y")
	if got != "y" {
		t.Fatalf("emission = %v", got)
	}

	unsub()
	unsub()
	if removed != 1 {
		t.Fatalf("underlying unsubscribe ran %d times, want 1", removed)
	}
}

func TestFuncWithoutSubscribe(t *testing.T) {
	obs := Func(func() any { return 1 }, nil)
	obs.Subscribe(func(any) {})() // must not panic
	if obs.Current() != 1 {
		t.Fatal("Current() mismatch")
	}
}
