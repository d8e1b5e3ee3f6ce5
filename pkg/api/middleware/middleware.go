package middleware

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/ballisto/ballisto/pkg/log"
	"github.com/google/uuid"
)

type ContextKey int

const (
	// RequestIDContextKey is the key used to store the request ID in the request context
	RequestIDContextKey ContextKey = iota
)

// RequestID returns the ID assigned to the request, or an empty string if
// the request never passed through NewRequestIDMiddleware.
func RequestID(r *http.Request) string {
	id, _ := r.Context().Value(RequestIDContextKey).(string)
	return id
}

// NewRequestIDMiddleware assigns a unique ID to every request and echoes
// it back in the X-Request-ID response header.
func NewRequestIDMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.New().String()
			w.Header().Set("X-Request-ID", id)
			ctx := context.WithValue(r.Context(), RequestIDContextKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NewRequestLoggingMiddleware logs every request with its method, path,
// status, and duration.
func NewRequestLoggingMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)
			log.Info("%s %s %d %s request_id=%s", r.Method, r.URL.Path, recorder.status, time.Since(start), RequestID(r))
		})
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Hijack lets websocket upgrades pass through the recorder.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hj.Hijack()
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
