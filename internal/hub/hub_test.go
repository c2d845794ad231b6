package hub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"tooldir/internal/events"
	"tooldir/internal/metrics"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// streamWriter hands every write to the test through a channel
type streamWriter struct {
	header http.Header
	chunks chan string
}

func newStreamWriter() *streamWriter {
	return &streamWriter{header: http.Header{}, chunks: make(chan string, 16)}
}

func (s *streamWriter) Header() http.Header { return s.header }
func (s *streamWriter) WriteHeader(int)     {}
func (s *streamWriter) Flush()              {}
func (s *streamWriter) Write(p []byte) (int, error) {
	s.chunks <- string(p)
	return len(p), nil
}

func next(t *testing.T, s *streamWriter) string {
	t.Helper()
	select {
	case chunk := <-s.chunks:
		return chunk
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for stream output")
		return ""
	}
}

type harness struct {
	hub     *Hub
	bus     *events.Bus
	metrics *metrics.Metrics
	stop    context.CancelFunc
	stopped chan struct{}
}

func start(t *testing.T) *harness {
	t.Helper()
	m := metrics.New()
	h := &harness{hub: New(nil, m), bus: events.NewBus(), metrics: m, stopped: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	h.stop = cancel
	go func() {
		h.hub.Run(ctx, h.bus)
		close(h.stopped)
	}()
	require.Eventually(t, func() bool { return h.bus.SubscriberCount() == 1 }, time.Second, 5*time.Millisecond)
	t.Cleanup(func() {
		cancel()
		<-h.stopped
	})
	return h
}

func connect(t *testing.T, h *Hub) (*streamWriter, context.CancelFunc, chan struct{}) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	w := newStreamWriter()
	done := make(chan struct{})
	go func() {
		h.ServeHTTP(w, req)
		close(done)
	}()
	assert.Equal(t, ": connected\n\n", next(t, w))
	return w, cancel, done
}

func TestRelaysBusEvents(t *testing.T) {
	h := start(t)
	w, disconnect, done := connect(t, h.hub)
	defer func() {
		disconnect()
		<-done
	}()

	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	require.Eventually(t, func() bool { return h.hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return testutil.ToFloat64(h.metrics.SSEClients) == 1 }, time.Second, 5*time.Millisecond)

	h.bus.Publish(events.Event{Collection: "messages", Operation: events.OpCreated, ID: "msg_1"})
	msg := next(t, w)
	assert.True(t, strings.HasPrefix(msg, "data: "))
	assert.True(t, strings.HasSuffix(msg, "\n\n"))
	assert.JSONEq(t, `{"collection":"messages","operation":"created","id":"msg_1"}`,
		strings.TrimSuffix(strings.TrimPrefix(msg, "data: "), "\n\n"))
}

func TestDisconnectUnregisters(t *testing.T) {
	h := start(t)
	_, disconnect, done := connect(t, h.hub)

	disconnect()
	<-done
	require.Eventually(t, func() bool { return h.hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0.0, testutil.ToFloat64(h.metrics.SSEClients))
}

func TestStopClosesClients(t *testing.T) {
	h := start(t)
	_, disconnect, done := connect(t, h.hub)
	defer disconnect()

	h.stop()
	<-h.stopped
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("client still connected after hub stopped")
	}
	assert.Equal(t, 0, h.bus.SubscriberCount())

	// New connections are refused once the hub is gone
	rec := httptest.NewRecorder()
	h.hub.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestKeepAlive(t *testing.T) {
	h := start(t)
	h.hub.keepAlive = 10 * time.Millisecond
	w, disconnect, done := connect(t, h.hub)
	defer func() {
		disconnect()
		<-done
	}()

	assert.Equal(t, ": keepalive\n\n", next(t, w))
}
