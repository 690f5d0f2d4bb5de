package logger

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMiddleware_LogsRequest(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	m := NewMiddleware(zap.New(core))

	var seen string
	h := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		seen = string(b)
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/send", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, `{"message":"hi"}`, seen, "body must be restored for the handler")
	require.Equal(t, 1, logs.Len())

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "POST", fields["httpMethod"])
	assert.Equal(t, "/send", fields["uri"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
	assert.EqualValues(t, len("short and stout"), fields["responseSize"])
	assert.Equal(t, `{"message":"hi"}`, fields["requestData"])
}

func TestMiddleware_RedactsBodyOffAllowlist(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	h := NewMiddleware(zap.New(core)).Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/elsewhere", strings.NewReader(`{"secret":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, logs.Len())
	_, ok := logs.All()[0].ContextMap()["requestData"]
	assert.False(t, ok)
}

type failingBody struct {
	data []byte
	err  error
}

func (f *failingBody) Read(p []byte) (int, error) {
	if len(f.data) == 0 {
		return 0, f.err
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

type countingBody struct {
	remaining int
	read      int
}

func (c *countingBody) Read(p []byte) (int, error) {
	if c.remaining == 0 {
		return 0, io.EOF
	}
	n := min(len(p), c.remaining)
	for i := range p[:n] {
		p[i] = 'x'
	}
	c.remaining -= n
	c.read += n
	return n, nil
}

func TestMiddleware_ReplaysReadError(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	reset := errors.New("connection reset by peer")

	var (
		seen    string
		readErr error
	)
	h := NewMiddleware(zap.New(core)).Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		seen, readErr = string(b), err
		w.WriteHeader(http.StatusBadRequest)
	}))

	req := httptest.NewRequest(http.MethodPost, "/send", &failingBody{data: []byte(`{"message":"important"}`), err: reset})
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.ErrorIs(t, readErr, reset)
	assert.Equal(t, `{"message":"important"}`, seen)
	require.Equal(t, 1, logs.Len())
	_, ok := logs.All()[0].ContextMap()["requestData"]
	assert.False(t, ok)
}

func TestMiddleware_BuffersOnlyLogCap(t *testing.T) {
	t.Parallel()

	h := NewMiddleware(zap.NewNop()).Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
	}))

	body := &countingBody{remaining: 8 << 20}
	req := httptest.NewRequest(http.MethodPost, "/send", body)
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, maxLoggedBody+1, body.read)
}

func TestMiddleware_SkipsBodyOffAllowlist(t *testing.T) {
	t.Parallel()

	h := NewMiddleware(zap.NewNop()).Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	body := &countingBody{remaining: 1 << 10}
	req := httptest.NewRequest(http.MethodPost, "/elsewhere", body)
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Zero(t, body.read)
}

func TestShouldLogBody(t *testing.T) {
	t.Parallel()

	mk := func(method, path, ct string) *http.Request {
		r := httptest.NewRequest(method, path, nil)
		r.Header.Set("Content-Type", ct)
		return r
	}
	body := []byte(`{}`)

	assert.True(t, shouldLogBody(mk(http.MethodPost, "/send", "application/json; charset=utf-8"), body))
	assert.False(t, shouldLogBody(mk(http.MethodGet, "/send", "application/json"), body))
	assert.False(t, shouldLogBody(mk(http.MethodPost, "/send", "text/plain"), body))
	assert.False(t, shouldLogBody(mk(http.MethodPost, "/send", "application/json"), nil))
	assert.False(t, shouldLogBody(mk(http.MethodPost, "/send", "application/json"), make([]byte, 1<<16+1)))
}

func TestNewLog_WritesFile(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "logs")
	l := NewLog(dir, "system.log", zapcore.InfoLevel)
	l.Info("relay started", zap.String("addr", ":3000"))
	_ = l.Sync()

	b, err := os.ReadFile(filepath.Join(dir, "system.log"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"relay started"`)
	assert.Contains(t, string(b), `"addr":":3000"`)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("loud"))
}
