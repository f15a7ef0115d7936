package preview

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dop251/goja"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/hyperdom/internal/errors"
	"github.com/vango-dev/hyperdom/pkg/dom"
	"github.com/vango-dev/hyperdom/pkg/script"
)

// Config configures a preview Server.
type Config struct {
	// Title is the page title (default: "hyperdom").
	Title string

	// MetricsPath is the route serving Prometheus metrics (default: "/metrics").
	MetricsPath string

	// TracerName is the OpenTelemetry tracer name (default: "hyperdom").
	TracerName string

	// Gatherer is the Prometheus gatherer served on MetricsPath.
	// Default: prometheus.DefaultGatherer
	Gatherer prometheus.Gatherer

	// Logger receives request and broadcast logs.
	Logger *slog.Logger
}

func (c *Config) applyDefaults() {
	if c.Title == "" {
		c.Title = "hyperdom"
	}
	if c.MetricsPath == "" {
		c.MetricsPath = "/metrics"
	}
	if c.TracerName == "" {
		c.TracerName = "hyperdom"
	}
	if c.Gatherer == nil {
		c.Gatherer = prometheus.DefaultGatherer
	}
	if c.Logger == nil {
		c.Logger = slog.Default().With("component", "preview")
	}
}

// Server serves one root element of a script runtime.
type Server struct {
	rt     *script.Runtime
	root   *dom.Element
	config Config
	logger *slog.Logger
	tracer trace.Tracer
	router chi.Router
	hub    *hub

	// fragment is the latest rendering of root.
	mu       sync.RWMutex
	fragment string

	dirty      atomic.Bool
	notify     chan struct{}
	quit       chan struct{}
	closeOnce  sync.Once
	stopObserv func()
}

// New renders root, subscribes to document mutations and starts the
// broadcaster. Call Close to release it.
func New(ctx context.Context, rt *script.Runtime, root *dom.Element, config Config) (*Server, error) {
	config.applyDefaults()
	s := &Server{
		rt:     rt,
		root:   root,
		config: config,
		logger: config.Logger,
		tracer: otel.Tracer(config.TracerName),
		notify: make(chan struct{}, 1),
		quit:   make(chan struct{}),
	}
	s.hub = newHub(func() Message {
		return Message{Type: MessageUpdate, HTML: s.Fragment()}
	})

	err := rt.Do(ctx, func(*goja.Runtime) error {
		html, err := dom.OuterHTML(root)
		if err != nil {
			return err
		}
		s.fragment = html
		s.stopObserv = rt.Document().Observe(func(dom.Mutation) {
			s.dirty.Store(true)
		})
		return nil
	})
	if err != nil {
		return nil, errors.New("E041").Wrap(err)
	}
	rt.OnTurn(s.flush)

	s.router = s.routes()
	go s.broadcaster()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(s.traceRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/snapshot", s.handleSnapshot)
	r.Get("/ws", s.hub.handleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, s.config.MetricsPath,
		promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Fragment returns the latest rendering of the root element.
func (s *Server) Fragment() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fragment
}

// Clients returns the number of connected WebSocket clients.
func (s *Server) Clients() int { return s.hub.count() }

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			return errors.New("E040").WithDetail(addr).Wrap(err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.hub.close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.New("E040").Wrap(err)
	}
	return nil
}

// Close stops the broadcaster, disconnects clients and stops observing the
// document.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		close(s.quit)
		s.hub.close()
		if s.stopObserv != nil {
			_ = s.rt.Do(context.Background(), func(*goja.Runtime) error {
				s.stopObserv()
				return nil
			})
		}
	})
	return nil
}

// flush runs on the runtime's loop after every turn. Mutations made during
// the turn result in a single rendering.
func (s *Server) flush() {
	if !s.dirty.Swap(false) {
		return
	}
	html, err := dom.OuterHTML(s.root)
	if err != nil {
		s.logger.Error("render failed", "error", err)
		go s.hub.broadcast(Message{Type: MessageError, Error: err.Error()})
		return
	}

	s.mu.Lock()
	changed := html != s.fragment
	s.fragment = html
	s.mu.Unlock()

	if !changed {
		return
	}
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// broadcaster sends the latest fragment whenever flush signals a change.
// Signals that arrive while a broadcast is in flight collapse into one.
func (s *Server) broadcaster() {
	for {
		select {
		case <-s.quit:
			return
		case <-s.notify:
			s.hub.broadcast(Message{Type: MessageUpdate, HTML: s.Fragment()})
			s.logger.Debug("update broadcast", "clients", s.hub.count())
		}
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := pageTemplate.Execute(w, pageData{
		Title:    s.config.Title,
		Fragment: template.HTML(s.Fragment()),
	})
	if err != nil {
		s.logger.Error("page render failed", "error", err)
	}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(s.Fragment()))
}

// logRequests logs one record per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// traceRequests wraps each request in a server span.
func (s *Server) traceRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := s.tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
				attribute.String("hyperdom.request_id", middleware.GetReqID(r.Context())),
			),
		)
		defer span.End()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				span.SetAttributes(attribute.String("http.route", pattern))
			}
		}
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		} else {
			span.SetStatus(codes.Ok, "")
		}
	})
}
