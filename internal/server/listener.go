package server

import (
	"context"
	"net/http"
	"time"
)

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 15 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second

// httpServer is the part of *http.Server the run loop needs; tests swap in stubs.
type httpServer interface {
	ListenAndServe() error
	Shutdown(context.Context) error
	Addr() string
	Handler() http.Handler
}

type listener struct {
	srv *http.Server
}

// newListener serves h on port with the service's timeouts.
func newListener(port string, h http.Handler) listener {
	return listener{srv: &http.Server{
		Addr:              ":" + port,
		Handler:           h,
		ReadHeaderTimeout: readTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}}
}

func (l listener) ListenAndServe() error              { return l.srv.ListenAndServe() }
func (l listener) Shutdown(ctx context.Context) error { return l.srv.Shutdown(ctx) }
func (l listener) Addr() string                       { return l.srv.Addr }
func (l listener) Handler() http.Handler              { return l.srv.Handler }
