package h

import (
	"log/slog"
	"sync"

	"github.com/vango-dev/hyperdom/internal/errors"
	"github.com/vango-dev/hyperdom/pkg/dom"
	"github.com/vango-dev/hyperdom/pkg/reactive"
)

// ErrNoElement matches the panic raised when content is added before an
// element exists. Use errors.Is on the recovered value.
var ErrNoElement error = errors.New("E001")

// Context is an isolated builder with its own list of pending unsubscribe
// callbacks. A Context is not safe for concurrent use.
type Context struct {
	doc      *dom.Document
	cleanups []reactive.Unsubscribe
	logger   *slog.Logger
	metrics  Metrics
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m Metrics) Option {
	return func(c *Context) {
		if m != nil {
			c.metrics = m
		}
	}
}

// New creates a Context that builds into doc. A nil doc gets a fresh
// document.
func New(doc *dom.Document, opts ...Option) *Context {
	if doc == nil {
		doc = dom.NewDocument()
	}
	c := &Context{
		doc:     doc,
		logger:  slog.Default().With("component", "h"),
		metrics: nopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	defaultOnce sync.Once
	defaultCtx  *Context
)

// Default returns a package-level Context with its own document, created on
// first use. Everything that calls Default shares its cleanup list; code that
// needs independent cleanup should call New.
func Default() *Context {
	defaultOnce.Do(func() {
		defaultCtx = New(dom.NewDocument(),
			WithLogger(slog.Default().With("component", "h", "context", "default")))
	})
	return defaultCtx
}

// Document returns the document elements are created in.
func (c *Context) Document() *dom.Document { return c.doc }

// Pending returns the number of unsubscribe callbacks waiting for Cleanup.
func (c *Context) Pending() int { return len(c.cleanups) }

// Cleanup invokes every pending unsubscribe callback in registration order
// and empties the list. Nodes already in the tree are left in place. The
// Context stays usable afterwards.
func (c *Context) Cleanup() {
	fns := c.cleanups
	c.cleanups = nil
	if len(fns) == 0 {
		return
	}

	for _, fn := range fns {
		if fn != nil {
			fn()
		}
	}
	c.metrics.Cleaned(len(fns))
	c.logger.Debug("bindings cleaned up", "callbacks", len(fns))
}

// track queues an unsubscribe callback.
func (c *Context) track(unsub reactive.Unsubscribe, kind BindingKind) {
	if unsub == nil {
		unsub = func() {}
	}
	c.cleanups = append(c.cleanups, unsub)
	c.metrics.BindingAdded(kind)
}
