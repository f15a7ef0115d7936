package script

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dop251/goja"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/hyperdom/internal/errors"
	"github.com/vango-dev/hyperdom/pkg/dom"
	"github.com/vango-dev/hyperdom/pkg/h"
	"github.com/vango-dev/hyperdom/pkg/reactive"
)

// DefaultTracerName is the tracer used when no tracer is configured.
const DefaultTracerName = "hyperdom/script"

// Runtime is a JavaScript runtime with the builder globals installed and a
// single goroutine that owns the VM and the document.
type Runtime struct {
	vm      *goja.Runtime
	doc     *dom.Document
	builder *h.Context
	logger  *slog.Logger
	metrics h.Metrics
	tracer  trace.Tracer
	timers  *timerManager

	// contexts holds every builder context handed to scripts, including
	// the one behind the global h.
	contexts []*h.Context

	// observables maps the JS functions returned by observable() to the
	// signal behind them.
	observables map[*goja.Object]reactive.Observable

	tasks     chan func()
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once

	hooksMu sync.Mutex
	hooks   []func()
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger. console output is written to it too.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder passed to every builder context.
func WithMetrics(m h.Metrics) Option {
	return func(r *Runtime) {
		r.metrics = m
	}
}

// WithTracer sets the tracer used for script runs.
func WithTracer(t trace.Tracer) Option {
	return func(r *Runtime) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithDocument builds into an existing document.
func WithDocument(doc *dom.Document) Option {
	return func(r *Runtime) {
		if doc != nil {
			r.doc = doc
		}
	}
}

// New creates a Runtime and starts its event loop. Call Close to stop it.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		vm:          goja.New(),
		logger:      slog.Default().With("component", "script"),
		tracer:      otel.Tracer(DefaultTracerName),
		timers:      newTimerManager(),
		observables: make(map[*goja.Object]reactive.Observable),
		tasks:       make(chan func()),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.doc == nil {
		r.doc = dom.NewDocument()
	}

	r.vm.SetFieldNameMapper(goja.UncapFieldNameMapper())
	r.builder = r.newContext()
	r.setupGlobals()

	go r.loop()
	return r
}

// Document returns the document scripts build into. Only touch it from
// inside Do or an OnTurn hook.
func (r *Runtime) Document() *dom.Document { return r.doc }

// Builder returns the context behind the global h.
func (r *Runtime) Builder() *h.Context { return r.builder }

// OnTurn registers fn to run on the loop goroutine after every task and
// every batch of timers.
func (r *Runtime) OnTurn(fn func()) {
	if fn == nil {
		return
	}
	r.hooksMu.Lock()
	r.hooks = append(r.hooks, fn)
	r.hooksMu.Unlock()
}

// Pending returns the number of scheduled timers.
func (r *Runtime) Pending() int { return r.timers.pending() }

// Do runs fn on the loop goroutine and waits for it. It must not be called
// from the loop goroutine itself (from a JS callback or an OnTurn hook).
func (r *Runtime) Do(ctx context.Context, fn func(vm *goja.Runtime) error) error {
	res := make(chan error, 1)
	task := func() {
		if err := ctx.Err(); err != nil {
			res <- err
			return
		}
		res <- r.safely(fn)
	}

	select {
	case r.tasks <- task:
	case <-r.done:
		return errors.New("E013")
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-res:
		return err
	case <-ctx.Done():
		r.vm.Interrupt(ctx.Err())
		return ctx.Err()
	}
}

// Wait lets timers fire until none is pending or ctx is done.
func (r *Runtime) Wait(ctx context.Context) error {
	tick := time.NewTicker(5 * time.Millisecond)
	defer tick.Stop()

	for r.timers.pending() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.done:
			return nil
		case <-tick.C:
		}
	}
	return nil
}

// Close stops the event loop, clears all timers and runs Cleanup on every
// builder context. It is safe to call more than once.
func (r *Runtime) Close() error {
	r.closeOnce.Do(func() {
		r.vm.Interrupt(errors.New("E013"))
		close(r.stop)
	})
	<-r.done
	return nil
}

func (r *Runtime) loop() {
	defer close(r.done)

	wake := time.NewTimer(time.Hour)
	wake.Stop()
	defer wake.Stop()

	for {
		if d, ok := r.timers.next(); ok {
			wake.Reset(d)
		} else {
			wake.Stop()
		}

		select {
		case <-r.stop:
			r.shutdown()
			return
		case task := <-r.tasks:
			task()
		case <-wake.C:
			r.timers.process(r.runTimer)
		}
		r.endTurn()
	}
}

func (r *Runtime) shutdown() {
	r.timers.clearAll()
	for _, c := range r.contexts {
		c.Cleanup()
	}
	r.logger.Debug("runtime stopped", "contexts", len(r.contexts))
}

func (r *Runtime) runTimer(t *timer) {
	err := r.safely(func(*goja.Runtime) error {
		_, err := t.callback(goja.Undefined(), t.args...)
		return err
	})
	if err != nil {
		r.logger.Error("timer callback failed", "timer", t.id, "error", err)
	}
}

func (r *Runtime) endTurn() {
	r.hooksMu.Lock()
	hooks := append([]func(){}, r.hooks...)
	r.hooksMu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

// safely runs fn with a clean interrupt flag and turns panics into errors.
func (r *Runtime) safely(fn func(vm *goja.Runtime) error) (err error) {
	r.vm.ClearInterrupt()
	defer func() {
		if p := recover(); p != nil {
			if e, ok := p.(error); ok {
				err = errors.FromError(e, "E011")
				return
			}
			err = errors.New("E011").WithDetail(fmt.Sprint(p))
		}
	}()
	return fn(r.vm)
}

func (r *Runtime) newContext() *h.Context {
	opts := []h.Option{h.WithLogger(r.logger.With("builder", len(r.contexts)))}
	if r.metrics != nil {
		opts = append(opts, h.WithMetrics(r.metrics))
	}
	c := h.New(r.doc, opts...)
	r.contexts = append(r.contexts, c)
	return c
}
