package middleware

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

// RequestRecorder receives the figures of every served request
type RequestRecorder interface {
	Connection()
	Disconnection()
	CountRequest(method string, async bool)
	ObserveTransfer(sent, received int64)
	ObserveTimes(queue, request, total time.Duration)
}

type timingKeyType struct{}

var timingKey timingKeyType = struct{}{}

type timing struct {
	begin time.Time
	start time.Time
}

// Statistics records connection, verb, size and timing figures for every
// request. It must be the outermost middleware so that the total time covers
// the whole chain. Requests carrying "Prefer: respond-async" count as async.
func Statistics(recorder RequestRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t := &timing{begin: time.Now()}
			recorder.Connection()
			defer recorder.Disconnection()

			recorder.CountRequest(r.Method, isAsync(r))

			body := &countingReader{ReadCloser: r.Body}
			if r.Body != nil {
				r.Body = body
			}
			rw := &responseWriter{ResponseWriter: w}

			next.ServeHTTP(rw, r.WithContext(context.WithValue(r.Context(), timingKey, t)))

			end := time.Now()
			if t.start.IsZero() {
				t.start = t.begin
			}

			recorder.ObserveTransfer(rw.size, body.n)
			recorder.ObserveTimes(t.start.Sub(t.begin), end.Sub(t.start), end.Sub(t.begin))
		})
	}
}

// HandlerStart marks the end of the queue time. Mount it last, right in front
// of the handlers.
func HandlerStart(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if t, ok := r.Context().Value(timingKey).(*timing); ok {
			t.start = time.Now()
		}
		next.ServeHTTP(w, r)
	})
}

func isAsync(r *http.Request) bool {
	for _, value := range r.Header.Values("Prefer") {
		for _, pref := range strings.Split(value, ",") {
			if strings.EqualFold(strings.TrimSpace(pref), "respond-async") {
				return true
			}
		}
	}
	return false
}

type countingReader struct {
	io.ReadCloser
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.ReadCloser.Read(p)
	c.n += int64(n)
	return n, err
}

type responseWriter struct {
	http.ResponseWriter
	size int64
}

// Write implements the http.ResponseWriter interface
func (w *responseWriter) Write(data []byte) (int, error) {
	n, err := w.ResponseWriter.Write(data)
	w.size += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
