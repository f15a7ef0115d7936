package preview

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dop251/goja"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/hyperdom/pkg/metrics"
	"github.com/vango-dev/hyperdom/pkg/script"
)

const counterScript = `
var count = observable(0);
h("div#app", "count: ", count);
`

func newTestServer(t *testing.T) (*Server, *script.Runtime) {
	t.Helper()
	reg := prometheus.NewRegistry()
	rt := script.New(script.WithMetrics(metrics.New(metrics.WithRegistry(reg))))
	t.Cleanup(func() { _ = rt.Close() })

	root, err := rt.Run(context.Background(), "counter.js", counterScript)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	s, err := New(context.Background(), rt, root, Config{Title: "Counter", Gatherer: reg})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, rt
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		path        string
		status      int
		contentType string
		contains    []string
	}{
		{"/", 200, "text/html", []string{"<title>Counter</title>", `<div id="app">count: 0</div>`, "new WebSocket"}},
		{"/snapshot", 200, "text/html", []string{`<div id="app">count: 0</div>`}},
		{"/healthz", 200, "text/plain", []string{"ok"}},
		{"/metrics", 200, "text/plain", []string{"hyperdom_elements_built_total 1", `hyperdom_bindings_total{kind="child"} 1`}},
		{"/missing", 404, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, s, tt.path)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
				t.Fatalf("Content-Type = %q, want prefix %q", ct, tt.contentType)
			}
			body := rec.Body.String()
			for _, want := range tt.contains {
				if !strings.Contains(body, want) {
					t.Fatalf("body missing %q:\n%s", want, body)
				}
			}
		})
	}
}

func TestSnapshotFollowsMutations(t *testing.T) {
	s, rt := newTestServer(t)

	err := rt.Do(context.Background(), func(vm *goja.Runtime) error {
		_, err := vm.RunString("count.set(5)")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}

	// flush runs after the turn, before the next task is accepted.
	_ = rt.Do(context.Background(), func(*goja.Runtime) error { return nil })

	if got := get(t, s, "/snapshot").Body.String(); got != `<div id="app">count: 5</div>` {
		t.Fatalf("snapshot = %s", got)
	}
}

func TestWebSocketUpdates(t *testing.T) {
	s, rt := newTestServer(t)
	ts := httptest.NewServer(s)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error: %v", err)
	}
	defer conn.Close()
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	read := func() Message {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("ReadJSON() error: %v", err)
		}
		return msg
	}

	if msg := read(); msg.Type != MessageUpdate || msg.HTML != `<div id="app">count: 0</div>` {
		t.Fatalf("hello message = %+v", msg)
	}

	err = rt.Do(context.Background(), func(vm *goja.Runtime) error {
		_, err := vm.RunString("count.set(1); count.set(2)")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}

	if msg := read(); msg.HTML != `<div id="app">count: 2</div>` {
		t.Fatalf("update message = %+v", msg)
	}
}

func TestListenAndServeShutsDown(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ListenAndServe() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestPageEscapesTitle(t *testing.T) {
	s, _ := newTestServer(t)
	s.config.Title = "<b>"

	body, _ := io.ReadAll(get(t, s, "/").Body)
	if !strings.Contains(string(body), "<title>&lt;b&gt;</title>") {
		t.Fatalf("title not escaped:\n%s", body)
	}
}
