package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/IvanChernomyrdin/go-places/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-places/internal/shared/logger"
)

func TestRequestID(t *testing.T) {
	var fromCtx string
	h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = middleware.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := ulid.ParseStrict(fromCtx)
	require.NoError(t, err)
	require.Equal(t, fromCtx, rec.Header().Get(middleware.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "abc-123", fromCtx)
	require.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))
}

func TestLoggerMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := &logger.HTTPLogger{Logger: zap.New(core)}

	var written bool
	h := middleware.RequestID(middleware.LoggerMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("hello"))
		written = w.(*middleware.ResponseWriter).Written()
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/places?x=1", nil)
	req.Header.Set(middleware.RequestIDHeader, "rid-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, written)
	entries := logs.FilterMessage("HTTP request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "POST", fields["method"])
	require.Equal(t, "/api/places?x=1", fields["uri"])
	require.Equal(t, "rid-1", fields["request_id"])
	require.EqualValues(t, http.StatusCreated, fields["status"])
	require.EqualValues(t, 5, fields["response_size"])
}
