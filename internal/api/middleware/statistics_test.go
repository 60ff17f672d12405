package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type call struct {
	method string
	async  bool
}

type recordingRecorder struct {
	mu            sync.Mutex
	open          int
	maxOpen       int
	calls         []call
	sent          []int64
	received      []int64
	queue         []time.Duration
	request       []time.Duration
	total         []time.Duration
	disconnection int
}

func (r *recordingRecorder) Connection() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.open++
	if r.open > r.maxOpen {
		r.maxOpen = r.open
	}
}

func (r *recordingRecorder) Disconnection() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.open--
	r.disconnection++
}

func (r *recordingRecorder) CountRequest(method string, async bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call{method, async})
}

func (r *recordingRecorder) ObserveTransfer(sent, received int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sent)
	r.received = append(r.received, received)
}

func (r *recordingRecorder) ObserveTimes(queue, request, total time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue = append(r.queue, queue)
	r.request = append(r.request, request)
	r.total = append(r.total, total)
}

func TestStatistics_CountsRequest(t *testing.T) {
	recorder := &recordingRecorder{}

	handler := Statistics(recorder)(HandlerStart(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Write([]byte("echo:"))
		w.Write(body)
	})))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("hello"))
	req.Header.Set("Prefer", "wait=10, respond-async")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if len(recorder.calls) != 1 || recorder.calls[0] != (call{http.MethodPost, true}) {
		t.Errorf("expected one async POST, got %+v", recorder.calls)
	}
	if recorder.open != 0 || recorder.maxOpen != 1 || recorder.disconnection != 1 {
		t.Errorf("expected balanced connection gauge, got open=%d max=%d", recorder.open, recorder.maxOpen)
	}
	if len(recorder.sent) != 1 || recorder.sent[0] != 10 {
		t.Errorf("expected 10 bytes sent, got %v", recorder.sent)
	}
	if recorder.received[0] != 5 {
		t.Errorf("expected 5 bytes received, got %v", recorder.received)
	}
}

func TestStatistics_Times(t *testing.T) {
	recorder := &recordingRecorder{}

	slow := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(20 * time.Millisecond)
			next.ServeHTTP(w, r)
		})
	}
	handler := Statistics(recorder)(slow(HandlerStart(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(10 * time.Millisecond)
	}))))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if len(recorder.total) != 1 {
		t.Fatalf("expected one timing, got %d", len(recorder.total))
	}
	queue, request, total := recorder.queue[0], recorder.request[0], recorder.total[0]
	if queue < 20*time.Millisecond {
		t.Errorf("expected queue time to cover the middleware chain, got %s", queue)
	}
	if request < 10*time.Millisecond {
		t.Errorf("expected request time to cover the handler, got %s", request)
	}
	if total != queue+request {
		t.Errorf("expected total %s to equal queue %s + request %s", total, queue, request)
	}
}

func TestStatistics_WithoutHandlerStart(t *testing.T) {
	recorder := &recordingRecorder{}
	handler := Statistics(recorder)(http.NotFoundHandler())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/missing", nil))

	if recorder.queue[0] != 0 {
		t.Errorf("expected zero queue time, got %s", recorder.queue[0])
	}
	if recorder.calls[0].async {
		t.Error("expected synchronous request")
	}
}

func TestIsAsync(t *testing.T) {
	tests := []struct {
		header   string
		expected bool
	}{
		{"", false},
		{"respond-async", true},
		{"Respond-Async", true},
		{"return=minimal", false},
		{"return=minimal, respond-async", true},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Prefer", tt.header)
		}
		if got := isAsync(req); got != tt.expected {
			t.Errorf("isAsync(%q) = %v, expected %v", tt.header, got, tt.expected)
		}
	}
}
