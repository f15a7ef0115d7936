// Package preview serves a rendered tree over HTTP and pushes a fresh
// rendering to connected browsers whenever the tree changes.
//
// Routes:
//
//	GET /          full page with the live-update client
//	GET /snapshot  the current HTML fragment
//	GET /ws        WebSocket stream of update messages
//	GET /metrics   Prometheus metrics (path is configurable)
//	GET /healthz   liveness check
package preview
