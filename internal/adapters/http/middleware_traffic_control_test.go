package httpadapter

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirillkom/talentoplus/internal/config"
)

func TestRateLimitMiddlewareReturns429(t *testing.T) {
	tr := newTestRouter(config.Config{
		APIRateLimitRPS:   1,
		APIRateLimitBurst: 1,
	})

	res1 := serve(tr.handler, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))
	require.Equal(t, http.StatusOK, res1.Code)

	res2 := serve(tr.handler, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))
	require.Equal(t, http.StatusTooManyRequests, res2.Code)
	assert.Equal(t, "1", res2.Header().Get("Retry-After"))
}

func TestBackpressureMiddlewareReturns503WhenSaturated(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan int, 1)

	base := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-release
		w.WriteHeader(http.StatusNoContent)
	})
	handler := backpressureMiddleware(base, 1, 20*time.Millisecond)

	go func() {
		res := serve(handler, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))
		done <- res.Code
	}()
	<-started

	res2 := serve(handler, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))
	require.Equal(t, http.StatusServiceUnavailable, res2.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(bytes.NewReader(res2.Body.Bytes())).Decode(&resp))
	assert.NotEmpty(t, resp["error"])

	close(release)
	select {
	case code := <-done:
		assert.Equal(t, http.StatusNoContent, code)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for first request completion")
	}
}

func TestBearerAuth(t *testing.T) {
	tr := newTestRouter(config.Config{APIKey: "secret"})

	assert.Equal(t, http.StatusOK, serve(tr.handler, httptest.NewRequest(http.MethodGet, "/healthz", nil)).Code)

	res := serve(tr.handler, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.NotEmpty(t, res.Header().Get("WWW-Authenticate"))

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	req.Header.Set("Authorization", "Bearer secret")
	assert.Equal(t, http.StatusOK, serve(tr.handler, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	assert.Equal(t, http.StatusUnauthorized, serve(tr.handler, req).Code)
}

func TestIsAuthorizedBearerHeader(t *testing.T) {
	assert.True(t, isAuthorizedBearerHeader("Bearer  k ", "k"))
	assert.False(t, isAuthorizedBearerHeader("Basic k", "k"))
	assert.False(t, isAuthorizedBearerHeader("Bearer k", ""))
	assert.False(t, isAuthorizedBearerHeader("", "k"))
}

func TestRequestIDIsPropagated(t *testing.T) {
	tr := newTestRouter(config.Config{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "req-42")
	assert.Equal(t, "req-42", serve(tr.handler, req).Header().Get(requestIDHeader))
}
