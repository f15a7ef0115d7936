package h

import (
	"testing"

	"github.com/vango-dev/hyperdom/pkg/dom"
	"github.com/vango-dev/hyperdom/pkg/reactive"
)

// fakeObservable records subscriptions and unsubscriptions.
type fakeObservable struct {
	value   any
	subs    []fakeSub
	nextID  int
	unsubs  int
	onUnsub func()
}

type fakeSub struct {
	id int
	fn func(any)
}

func (f *fakeObservable) Current() any { return f.value }

func (f *fakeObservable) Subscribe(fn func(any)) reactive.Unsubscribe {
	f.nextID++
	id := f.nextID
	f.subs = append(f.subs, fakeSub{id: id, fn: fn})
	return func() {
		for i, s := range f.subs {
			if s.id == id {
				f.subs = append(f.subs[:i], f.subs[i+1:]...)
				f.unsubs++
				if f.onUnsub != nil {
					f.onUnsub()
				}
				return
			}
		}
	}
}

func (f *fakeObservable) emit(v any) {
	f.value = v
	subs := append([]fakeSub(nil), f.subs...)
	for _, s := range subs {
		s.fn(v)
	}
}

// recordingMetrics counts Metrics calls.
type recordingMetrics struct {
	built   int
	added   map[BindingKind]int
	updated map[BindingKind]int
	cleaned []int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		added:   make(map[BindingKind]int),
		updated: make(map[BindingKind]int),
	}
}

func (m *recordingMetrics) ElementBuilt() { m.built++ }
func (m *recordingMetrics) BindingAdded(k BindingKind) { m.added[k]++ }
func (m *recordingMetrics) BindingUpdated(k BindingKind) { m.updated[k]++ }
func (m *recordingMetrics) Cleaned(n int) { m.cleaned = append(m.cleaned, n) }

func newTestContext(t *testing.T) (*Context, *dom.Document) {
	t.Helper()
	doc := dom.NewDocument()
	return New(doc), doc
}

// childTexts returns the text content of each child of e.
func childTexts(e *dom.Element) []string {
	var out []string
	for _, c := range e.ChildNodes() {
		out = append(out, c.TextContent())
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
